package reportobs

import (
	"context"
	"time"

	"bond-monitor/internal/interfaces"
	"bond-monitor/internal/logger"
	"bond-monitor/internal/trace"
	"bond-monitor/internal/types"
)

type observableReporter struct {
	reporter interfaces.Reporter
}

var _ interfaces.Reporter = (*observableReporter)(nil)

func Wrap(r interfaces.Reporter) interfaces.Reporter {
	return &observableReporter{
		reporter: r,
	}
}

func (or *observableReporter) Run(ctx context.Context, username, filter, fromDate string) ([]types.BucketRecord, error) {
	ctx, span := trace.StartSpan(ctx, "report.Run")
	defer span.End()

	start := time.Now()

	logger.Request(ctx, username, filter, fromDate)

	records, err := or.reporter.Run(ctx, username, filter, fromDate)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Report pipeline failed", err,
			"username", username,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Report pipeline completed",
		"username", username,
		"bands", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return records, nil
}
