package permission

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"bond-monitor/internal/types"
)

func testGraph() *Graph {
	return &Graph{
		Permissions: map[string][]string{
			"jsmith": {"gilts", "euro-govt"},
			"apatel": {"euro-govt"},
			"broken": {"gilts", "no-such-team"},
		},
		Teams: map[string][]string{
			"gilts":     {"Alice", "Bob"},
			"euro-govt": {"Carol"},
		},
	}
}

func TestResolveUnionsTeams(t *testing.T) {
	access, err := testGraph().Resolve("jsmith")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	got := make([]string, 0, len(access))
	for p := range access {
		got = append(got, p)
	}
	sort.Strings(got)
	want := []string{"Alice", "Bob", "Carol"}
	if len(got) != len(want) {
		t.Fatalf("Expected access set %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected access set %v, got %v", want, got)
		}
	}
}

func TestResolveUnknownUsername(t *testing.T) {
	_, err := testGraph().Resolve("nobody")
	if err == nil {
		t.Fatal("Expected error for unknown username")
	}
	var pe *types.PermissionError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected PermissionError, got %T", err)
	}
	if pe.Msg != "Username nobody not found" {
		t.Errorf("Unexpected message %q", pe.Msg)
	}
}

func TestResolveUnknownTeamIsHardFailure(t *testing.T) {
	// "broken" has one resolvable team; the unknown one must still fail
	access, err := testGraph().Resolve("broken")
	if err == nil {
		t.Fatalf("Expected error for unknown team, got access %v", access)
	}
	var pe *types.PermissionError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected PermissionError, got %T", err)
	}
	if pe.Msg != "Team no-such-team not found" {
		t.Errorf("Unexpected message %q", pe.Msg)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	g := testGraph()
	a, err := g.Resolve("jsmith")
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Resolve("jsmith")
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("Access sets differ: %v vs %v", a, b)
	}
	for p := range a {
		if !b[p] {
			t.Errorf("Second resolution missing %s", p)
		}
	}
}

func TestFilterKeepsPermissionedSalespeople(t *testing.T) {
	trades := []types.Trade{
		{Salesperson: "Alice", CountryCode: "GB"},
		{Salesperson: "Mallory", CountryCode: "US"},
		{Salesperson: "Carol", CountryCode: "DE"},
	}
	out := Filter(trades, map[string]bool{"Alice": true, "Carol": true})
	if len(out) != 2 {
		t.Fatalf("Expected 2 trades, got %d", len(out))
	}
	if out[0].Salesperson != "Alice" || out[1].Salesperson != "Carol" {
		t.Errorf("Unexpected rows after filter: %+v", out)
	}
}

func TestFileSourceLoadsBothMappings(t *testing.T) {
	src := FileSource{
		PermissionsPath: filepath.Join("testdata", "permissions.json"),
		TeamsPath:       filepath.Join("testdata", "teams.json"),
	}
	g, err := src.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(g.Permissions["jsmith"]) != 2 {
		t.Errorf("Expected jsmith in 2 teams, got %v", g.Permissions["jsmith"])
	}
	if len(g.Teams["gilts"]) != 2 {
		t.Errorf("Expected 2 salespeople in gilts, got %v", g.Teams["gilts"])
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	src := FileSource{
		PermissionsPath: filepath.Join("testdata", "missing.json"),
		TeamsPath:       filepath.Join("testdata", "teams.json"),
	}
	if _, err := src.Load(); err == nil {
		t.Fatal("Expected error for missing permissions file")
	}
}
