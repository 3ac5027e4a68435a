package report

import (
	"context"
	"time"

	"bond-monitor/internal/logger"
	"bond-monitor/internal/types"
)

// filterRMHF keeps trades whose RMHF flag equals the caller-supplied value
// exactly. Both sides are the raw textual form, so a mismatched spelling
// filters everything out rather than erroring.
func filterRMHF(trades []types.Trade, filter string) []types.Trade {
	out := make([]types.Trade, 0, len(trades))
	for _, tr := range trades {
		if tr.RMHF == filter {
			out = append(out, tr)
		}
	}
	return out
}

// filterFromDate keeps trades dated on or after the caller's lower bound.
// The bound must be YYYY-MM-DD; anything else is a caller error.
func filterFromDate(ctx context.Context, trades []types.Trade, fromDate string) ([]types.Trade, error) {
	bound, err := time.Parse("2006-01-02", fromDate)
	if err != nil {
		return nil, types.NewValueError("could not parse from date %q, expected YYYY-MM-DD", fromDate)
	}
	logger.Debug(ctx, "Applying from-date filter", "from_date", fromDate)

	out := make([]types.Trade, 0, len(trades))
	for _, tr := range trades {
		if !tr.TradeDate.Before(bound) {
			out = append(out, tr)
		}
	}
	return out, nil
}
