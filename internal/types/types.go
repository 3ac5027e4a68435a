package types

import (
	"encoding/json"
	"strconv"
	"time"
)

// Columns is the exact header set a trade file must carry. Validation is
// set-equality against this list; column order in the file is free.
var Columns = []string{
	"time", "tradeDate", "nominal", "dv01", "recTrader",
	"recEndState", "security", "platform", "buySell",
	"cName", "isVoice", "won", "tradedAway", "tiedAway",
	"rejected", "sign", "countryCode", "bondType", "currency",
	"securityClass", "desk", "sector", "maturityDate",
	"classification", "Salesperson", "RMHF",
}

// NullSentinel marks a missing value in the trade file. Any row carrying it
// in any field is dropped during cleaning.
const NullSentinel = "[NULL]"

var (
	ValidCurrencies = []string{"GBP", "EUR", "JPY"}
	ValidBondTypes  = []string{"Nominal", "Floating", "InfLinked"}
)

// Trade is one cleaned row of the trade file. Flag-like fields keep their
// raw textual form; only dv01 and the dates are coerced.
type Trade struct {
	Time           string
	TradeDate      time.Time
	Nominal        string
	DV01           float64
	RecTrader      string
	RecEndState    string
	Security       string
	Platform       string
	BuySell        string
	CName          string
	IsVoice        string
	Won            string
	TradedAway     string
	TiedAway       string
	Rejected       string
	Sign           string
	CountryCode    string
	BondType       string
	Currency       string
	SecurityClass  string
	Desk           string
	Sector         string
	MaturityDate   string // ISO 2006-01-02 after cleaning
	Classification string
	Salesperson    string
	RMHF           string
}

// TenorBand is a half-open interval [Low, High) of tenor years. The terminal
// band sets Open and matches everything at or above Low.
type TenorBand struct {
	Low, High float64
	Open      bool
}

func (b TenorBand) Contains(tenor float64) bool {
	if b.Open {
		return tenor >= b.Low
	}
	return tenor >= b.Low && tenor < b.High
}

func (b TenorBand) Label() string {
	if b.Open {
		return formatEdge(b.Low) + "+"
	}
	return formatEdge(b.Low) + "-" + formatEdge(b.High)
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TenorBands is the fixed reporting sequence: quarter-year bands below one
// year, yearly bands to ten, then 10-15, 15-20, 20-30 and the open 30+ band.
var TenorBands = []TenorBand{
	{Low: 0, High: 0.25},
	{Low: 0.25, High: 0.5},
	{Low: 0.5, High: 0.75},
	{Low: 0.75, High: 1},
	{Low: 1, High: 2},
	{Low: 2, High: 3},
	{Low: 3, High: 4},
	{Low: 4, High: 5},
	{Low: 5, High: 6},
	{Low: 6, High: 7},
	{Low: 7, High: 8},
	{Low: 8, High: 9},
	{Low: 9, High: 10},
	{Low: 10, High: 15},
	{Low: 15, High: 20},
	{Low: 20, High: 30},
	{Low: 30, Open: true},
}

// BucketRecord is one output row: a band label plus summed dv01 per country.
// It marshals flat, the label alongside the country columns.
type BucketRecord struct {
	Tenor string
	Risk  map[string]float64
}

func (b BucketRecord) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(b.Risk)+1)
	m["tenor"] = b.Tenor
	for country, v := range b.Risk {
		m[country] = v
	}
	return json.Marshal(m)
}
