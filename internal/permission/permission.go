package permission

import (
	"encoding/json"
	"fmt"
	"os"

	"bond-monitor/internal/types"
)

// Graph is the two-level access mapping: usernames to teams, teams to
// salespeople. It is loaded fresh per resolution and never mutated.
type Graph struct {
	Permissions map[string][]string
	Teams       map[string][]string
}

// FileSource loads the graph from two JSON documents on disk.
type FileSource struct {
	PermissionsPath string
	TeamsPath       string
}

func (s FileSource) Load() (*Graph, error) {
	permissions, err := readMapping(s.PermissionsPath)
	if err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}
	teams, err := readMapping(s.TeamsPath)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	return &Graph{Permissions: permissions, Teams: teams}, nil
}

func readMapping(path string) (map[string][]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m map[string][]string
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Resolve expands a username into its salesperson access set. An unknown
// username or an unknown team is a hard failure, never empty access.
func (g *Graph) Resolve(username string) (map[string]bool, error) {
	teams, ok := g.Permissions[username]
	if !ok {
		return nil, types.NewPermissionError("Username %s not found", username)
	}
	access := make(map[string]bool)
	for _, team := range teams {
		people, ok := g.Teams[team]
		if !ok {
			return nil, types.NewPermissionError("Team %s not found", team)
		}
		for _, p := range people {
			access[p] = true
		}
	}
	return access, nil
}

// Filter keeps the trades whose Salesperson is in the access set.
func Filter(trades []types.Trade, access map[string]bool) []types.Trade {
	out := make([]types.Trade, 0, len(trades))
	for _, tr := range trades {
		if access[tr.Salesperson] {
			out = append(out, tr)
		}
	}
	return out
}
