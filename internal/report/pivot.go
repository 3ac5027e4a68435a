package report

import (
	"context"
	"sort"
	"time"

	"bond-monitor/internal/logger"
	"bond-monitor/internal/types"
)

// daysPerYear converts a day count between trade and maturity into a tenor.
const daysPerYear = 365.25

// pivot is summed dv01 keyed by tenor then country code. The country list
// is data-dependent: only countries present in the filtered trades appear.
type pivot struct {
	cells     map[float64]map[string]float64
	countries []string
}

// pivotTenors projects each trade to (country, tradeDate, maturityDate,
// dv01), computes its tenor in years and sums dv01 per (tenor, country)
// group. A maturity date that cannot parse here fails loudly; silent drops
// would corrupt the sums.
func pivotTenors(ctx context.Context, trades []types.Trade) (*pivot, error) {
	p := &pivot{cells: make(map[float64]map[string]float64)}
	countrySet := make(map[string]bool)

	for _, tr := range trades {
		maturity, err := time.Parse("2006-01-02", tr.MaturityDate)
		if err != nil {
			return nil, types.NewValueError("could not parse maturityDate value %q", tr.MaturityDate)
		}
		tradeDay := truncateToDay(tr.TradeDate)
		tenor := maturity.Sub(tradeDay).Hours() / 24 / daysPerYear
		if tenor < 0 {
			// Falls outside every band and so outside every sum. Kept as a
			// diagnostic only; see the bucketer's band table.
			logger.Warn(ctx, "Trade with negative tenor", "tenor", tenor, "country", tr.CountryCode)
		}

		row := p.cells[tenor]
		if row == nil {
			row = make(map[string]float64)
			p.cells[tenor] = row
		}
		row[tr.CountryCode] += tr.DV01
		countrySet[tr.CountryCode] = true
	}

	p.countries = make([]string, 0, len(countrySet))
	for c := range countrySet {
		p.countries = append(p.countries, c)
	}
	sort.Strings(p.countries)
	return p, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// bucketTenors folds the pivot into the fixed band sequence. Every band is
// emitted in order, a band with no matching tenors summing to zero for each
// country rather than going missing.
func bucketTenors(p *pivot) []types.BucketRecord {
	records := make([]types.BucketRecord, 0, len(types.TenorBands))
	for _, band := range types.TenorBands {
		risk := make(map[string]float64, len(p.countries))
		for _, c := range p.countries {
			risk[c] = 0
		}
		for tenor, row := range p.cells {
			if !band.Contains(tenor) {
				continue
			}
			for c, v := range row {
				risk[c] += v
			}
		}
		records = append(records, types.BucketRecord{Tenor: band.Label(), Risk: risk})
	}
	return records
}
