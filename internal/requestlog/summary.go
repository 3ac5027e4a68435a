package requestlog

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

type aggRow struct {
	Username string
	Requests int
	Failures int
	TotalMs  int64
}

func summaryCSVPath(t time.Time) string {
	d := t.UTC().Format("2006-01-02")
	return filepath.Join(logDir(), "summary", d+".csv")
}

// SummarizeDay aggregates a day's request log into a per-username CSV:
// request count, failure count, average duration. Returns the written path,
// or "" when no log exists for that day.
func SummarizeDay(t time.Time) (string, error) {
	inPath := dailyFilepath(t)
	if _, err := os.Stat(inPath); err != nil {
		return "", nil
	}
	f, err := os.Open(inPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	aggs := map[string]*aggRow{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			continue
		}
		row := aggs[e.Username]
		if row == nil {
			row = &aggRow{Username: e.Username}
			aggs[e.Username] = row
		}
		row.Requests++
		if e.Status >= 400 {
			row.Failures++
		}
		row.TotalMs += e.DurationMs
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if len(aggs) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := summaryCSVPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	if err := w.Write([]string{"username", "requests", "failures", "avg_ms"}); err != nil {
		return "", err
	}
	var totalReq, totalFail int
	for _, k := range keys {
		r := aggs[k]
		avg := float64(r.TotalMs) / float64(r.Requests)
		rec := []string{r.Username, strconv.Itoa(r.Requests), strconv.Itoa(r.Failures), fmt.Sprintf("%.1f", avg)}
		if err := w.Write(rec); err != nil {
			return "", err
		}
		totalReq += r.Requests
		totalFail += r.Failures
	}
	_ = w.Write([]string{"TOTAL", strconv.Itoa(totalReq), strconv.Itoa(totalFail), ""})
	return outPath, nil
}

func SummarizeToday() (string, error) { return SummarizeDay(time.Now().UTC()) }
