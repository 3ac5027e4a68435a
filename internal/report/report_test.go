package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"bond-monitor/internal/permission"
	"bond-monitor/internal/types"
)

type stubGraphs struct {
	graph *permission.Graph
}

func (s stubGraphs) Load() (*permission.Graph, error) { return s.graph, nil }

func grantingGraph() *permission.Graph {
	return &permission.Graph{
		Permissions: map[string][]string{
			"jsmith": {"gilts"},
			"apatel": {"euro-govt"},
		},
		Teams: map[string][]string{
			"gilts":     {"Alice"},
			"euro-govt": {"Carol"},
		},
	}
}

func newTestService(t *testing.T, file string) *Service {
	t.Helper()
	return New(filepath.Join("testdata", file), stubGraphs{graph: grantingGraph()})
}

func findBand(t *testing.T, records []types.BucketRecord, label string) types.BucketRecord {
	t.Helper()
	for _, rec := range records {
		if rec.Tenor == label {
			return rec
		}
	}
	t.Fatalf("Band %q not in output", label)
	return types.BucketRecord{}
}

func TestRunSingleTradeLandsInNineTenBand(t *testing.T) {
	svc := newTestService(t, "trades.csv")
	records, err := svc.Run(context.Background(), "jsmith", "RM", "2019-01-01")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != len(types.TenorBands) {
		t.Fatalf("Expected %d bands, got %d", len(types.TenorBands), len(records))
	}
	for i, rec := range records {
		if rec.Tenor != types.TenorBands[i].Label() {
			t.Fatalf("Band %d out of order: got %q, want %q", i, rec.Tenor, types.TenorBands[i].Label())
		}
		want := 0.0
		if rec.Tenor == "9-10" {
			want = 100.0
		}
		if rec.Risk["GB"] != want {
			t.Errorf("Band %s GB = %v, want %v", rec.Tenor, rec.Risk["GB"], want)
		}
	}
}

func TestRunUnknownUsername(t *testing.T) {
	svc := newTestService(t, "trades.csv")
	_, err := svc.Run(context.Background(), "nobody", "RM", "2019-01-01")
	if err == nil {
		t.Fatal("Expected permission failure")
	}
	if !errors.Is(err, types.ErrInvalidFormat) {
		t.Errorf("Expected invalid-format envelope, got %v", err)
	}
	var pe *types.PermissionError
	if !errors.As(err, &pe) {
		t.Errorf("Expected inner PermissionError, got %v", err)
	}
}

func TestRunCallerWithoutTradesTeamGetsZeroes(t *testing.T) {
	// apatel resolves fine but cannot see Alice's trades
	svc := newTestService(t, "trades.csv")
	records, err := svc.Run(context.Background(), "apatel", "RM", "2019-01-01")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, rec := range records {
		for country, v := range rec.Risk {
			if v != 0 {
				t.Errorf("Band %s %s = %v, want 0", rec.Tenor, country, v)
			}
		}
	}
}

func TestRunFromDateAfterTradeExcludesIt(t *testing.T) {
	svc := newTestService(t, "trades.csv")
	records, err := svc.Run(context.Background(), "jsmith", "RM", "2020-06-01")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != len(types.TenorBands) {
		t.Fatalf("Expected all %d bands even with no trades, got %d", len(types.TenorBands), len(records))
	}
	for _, rec := range records {
		for country, v := range rec.Risk {
			if v != 0 {
				t.Errorf("Band %s %s = %v, want 0", rec.Tenor, country, v)
			}
		}
	}
}

func TestRunFromDateOnTradeDateIsInclusive(t *testing.T) {
	svc := newTestService(t, "trades.csv")
	records, err := svc.Run(context.Background(), "jsmith", "RM", "2020-01-01")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := findBand(t, records, "9-10").Risk["GB"]; got != 100.0 {
		t.Errorf("Expected inclusive bound to keep the trade, GB = %v", got)
	}
}

func TestRunRMHFMismatchFiltersAllRows(t *testing.T) {
	svc := newTestService(t, "trades.csv")
	records, err := svc.Run(context.Background(), "jsmith", "HF", "2019-01-01")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, rec := range records {
		if v := rec.Risk["GB"]; v != 0 {
			t.Errorf("Band %s GB = %v, want 0 after RMHF mismatch", rec.Tenor, v)
		}
	}
}

func TestRunBadFromDate(t *testing.T) {
	svc := newTestService(t, "trades.csv")
	_, err := svc.Run(context.Background(), "jsmith", "RM", "01/06/2020")
	if err == nil {
		t.Fatal("Expected error for malformed from date")
	}
	var ve *types.ValueError
	if !errors.As(err, &ve) {
		t.Errorf("Expected inner ValueError, got %v", err)
	}
}

func TestRunSchemaFailureWrapsEnvelope(t *testing.T) {
	svc := newTestService(t, "bad_schema.csv")
	_, err := svc.Run(context.Background(), "jsmith", "RM", "2019-01-01")
	if err == nil {
		t.Fatal("Expected schema failure")
	}
	if !strings.HasPrefix(err.Error(), "Data has invalid format: ") {
		t.Errorf("Expected envelope prefix, got %q", err.Error())
	}
	var se *types.SchemaError
	if !errors.As(err, &se) {
		t.Errorf("Expected inner SchemaError, got %v", err)
	}
}

func TestRunIsByteIdenticallyIdempotent(t *testing.T) {
	svc := newTestService(t, "trades.csv")
	ctx := context.Background()

	first, err := svc.Run(ctx, "jsmith", "RM", "2019-01-01")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Run(ctx, "jsmith", "RM", "2019-01-01")
	if err != nil {
		t.Fatal(err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("Outputs differ:\n%s\n%s", a, b)
	}
}
