package merge

import (
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Report is the merge diagnostics contract: how many seasons were seen and
// kept, and which keys were dropped and why, bucketed for the human review
// workflow.
type Report struct {
	SeasonsSeen     int      `json:"seasonsSeen"`
	SeasonsKept     int      `json:"seasonsKept"`
	TierConflicts   int      `json:"tierConflicts"`
	GoalDiffRepairs int      `json:"goalDiffRepairs"`
	ExcludedWWI     []string `json:"excludedWWI"`
	ExcludedWWII    []string `json:"excludedWWII"`
	ExcludedEmpty   []string `json:"needsAttention"`
	NonNumericKeys  []string `json:"nonNumericKeys"`
}

// NewReport returns a report with initialized buckets.
func NewReport() *Report {
	return &Report{
		ExcludedWWI:    []string{},
		ExcludedWWII:   []string{},
		ExcludedEmpty:  []string{},
		NonNumericKeys: []string{},
	}
}

// SeasonsExcluded is the total number of dropped season keys.
func (r *Report) SeasonsExcluded() int {
	return len(r.ExcludedWWI) + len(r.ExcludedWWII) + len(r.ExcludedEmpty)
}

func (r *Report) sortBuckets() {
	sort.Strings(r.ExcludedWWI)
	sort.Strings(r.ExcludedWWII)
	sort.Strings(r.ExcludedEmpty)
	sort.Strings(r.NonNumericKeys)
}

// Render writes the report as a human-readable table.
func (r *Report) Render(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRows([]table.Row{
		{"Seasons seen", r.SeasonsSeen},
		{"Seasons kept", r.SeasonsKept},
		{"Seasons excluded", r.SeasonsExcluded()},
		{"Tier conflicts (first-with-data kept)", r.TierConflicts},
		{"Goal-difference repairs", r.GoalDiffRepairs},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"Excluded: WWI suspension", joinKeys(r.ExcludedWWI)},
		{"Excluded: WWII suspension", joinKeys(r.ExcludedWWII)},
		{"Excluded: needs attention (empty)", joinKeys(r.ExcludedEmpty)},
		{"Non-numeric season keys", joinKeys(r.NonNumericKeys)},
	})
	tw.Render()
}

func joinKeys(keys []string) string {
	if len(keys) == 0 {
		return "-"
	}
	return strings.Join(keys, ", ")
}
