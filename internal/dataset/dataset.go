package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"bond-monitor/internal/types"
)

// Table is a raw parsed trade file: the header row plus data rows, every
// value still textual. Cleaning turns it into []types.Trade.
type Table struct {
	Header []string
	Rows   [][]string
}

// Load reads a comma-delimited trade file. The first record is the header;
// ragged rows are rejected by the csv reader itself.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trade file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read trade file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("trade file %s has no header row", path)
	}
	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// ValidateSchema checks that the header set equals the expected columns
// exactly. Column order is free; extras or gaps are rejected.
func ValidateSchema(t *Table) error {
	if len(t.Header) > len(types.Columns) {
		return types.NewSchemaError("The file you have provided has too many columns")
	}
	if len(t.Header) < len(types.Columns) {
		return types.NewSchemaError("The file you have provided does not have enough columns")
	}
	have := make(map[string]bool, len(t.Header))
	for _, col := range t.Header {
		have[col] = true
	}
	for _, col := range types.Columns {
		if !have[col] {
			return types.NewSchemaError("Could not find column %s", col)
		}
	}
	return nil
}

// tradeDateLayouts are tried in order when parsing the tradeDate column.
var tradeDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
}

const maturityDateLayout = "02/01/2006"

// Clean applies the row filters and type coercions: recognized currencies
// and classifications only, no [NULL] in any field, dv01 as float64,
// tradeDate as a calendar date and maturityDate re-emitted as ISO.
func Clean(t *Table) ([]types.Trade, error) {
	idx := make(map[string]int, len(t.Header))
	for i, col := range t.Header {
		idx[col] = i
	}

	out := make([]types.Trade, 0, len(t.Rows))
	for _, row := range t.Rows {
		if !slices.Contains(types.ValidCurrencies, row[idx["currency"]]) {
			continue
		}
		if !slices.Contains(types.ValidBondTypes, row[idx["classification"]]) {
			continue
		}
		if slices.Contains(row, types.NullSentinel) {
			continue
		}

		dv01, err := strconv.ParseFloat(row[idx["dv01"]], 64)
		if err != nil {
			return nil, types.NewValueError("could not parse dv01 value %q", row[idx["dv01"]])
		}
		tradeDate, err := parseTradeDate(row[idx["tradeDate"]])
		if err != nil {
			return nil, err
		}
		maturity, err := time.Parse(maturityDateLayout, row[idx["maturityDate"]])
		if err != nil {
			return nil, types.NewValueError("could not parse maturityDate value %q", row[idx["maturityDate"]])
		}

		out = append(out, types.Trade{
			Time:           row[idx["time"]],
			TradeDate:      tradeDate,
			Nominal:        row[idx["nominal"]],
			DV01:           dv01,
			RecTrader:      row[idx["recTrader"]],
			RecEndState:    row[idx["recEndState"]],
			Security:       row[idx["security"]],
			Platform:       row[idx["platform"]],
			BuySell:        row[idx["buySell"]],
			CName:          row[idx["cName"]],
			IsVoice:        row[idx["isVoice"]],
			Won:            row[idx["won"]],
			TradedAway:     row[idx["tradedAway"]],
			TiedAway:       row[idx["tiedAway"]],
			Rejected:       row[idx["rejected"]],
			Sign:           row[idx["sign"]],
			CountryCode:    row[idx["countryCode"]],
			BondType:       row[idx["bondType"]],
			Currency:       row[idx["currency"]],
			SecurityClass:  row[idx["securityClass"]],
			Desk:           row[idx["desk"]],
			Sector:         row[idx["sector"]],
			MaturityDate:   maturity.Format("2006-01-02"),
			Classification: row[idx["classification"]],
			Salesperson:    row[idx["Salesperson"]],
			RMHF:           row[idx["RMHF"]],
		})
	}
	return out, nil
}

func parseTradeDate(v string) (time.Time, error) {
	for _, layout := range tradeDateLayouts {
		if d, err := time.Parse(layout, v); err == nil {
			return d, nil
		}
	}
	return time.Time{}, types.NewValueError("could not parse tradeDate value %q", v)
}
