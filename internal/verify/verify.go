package verify

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tgreenwood/leaguetables/internal/model"
)

// Kind classifies a violation.
type Kind string

const (
	KindGoalDifference Kind = "goal-difference"
	KindDuplicatePos   Kind = "duplicate-position"
	KindDuplicateTeam  Kind = "duplicate-team"
	KindListDivergence Kind = "list-divergence"
)

// Violation is one detected inconsistency.
type Violation struct {
	Kind   Kind   `json:"kind"`
	Season string `json:"season"`
	TierKey string `json:"tier"`
	Team   string `json:"team,omitempty"`
	Detail string `json:"detail"`
}

// Report lists every violation found in one pass.
type Report struct {
	Violations []Violation `json:"violations"`
}

// Clean reports whether no violations were found.
func (r *Report) Clean() bool { return len(r.Violations) == 0 }

// Check runs every invariant check over the dataset. The dataset is never
// mutated.
func Check(ds *model.Dataset) *Report {
	report := &Report{Violations: []Violation{}}
	for _, seasonKey := range ds.SortedSeasonKeys() {
		sd := ds.Seasons[seasonKey]
		tierKeys := make([]string, 0, len(sd))
		for k := range sd {
			tierKeys = append(tierKeys, k)
		}
		sort.Strings(tierKeys)
		for _, tierKey := range tierKeys {
			checkTier(report, seasonKey, tierKey, sd[tierKey])
		}
	}
	return report
}

func checkTier(report *Report, seasonKey, tierKey string, tier model.Tier) {
	entries := tier.Table()

	seenPos := make(map[int]string, len(entries))
	seenTeam := make(map[string]bool, len(entries))
	for _, e := range entries {
		if want := e.GoalsFor - e.GoalsAgainst; e.GoalDifference != nil && *e.GoalDifference != want {
			report.add(KindGoalDifference, seasonKey, tierKey, e.Team,
				fmt.Sprintf("goalDifference %d != %d-%d", *e.GoalDifference, e.GoalsFor, e.GoalsAgainst))
		}
		if other, ok := seenPos[e.Pos]; ok {
			report.add(KindDuplicatePos, seasonKey, tierKey, e.Team,
				fmt.Sprintf("position %d already held by %s", e.Pos, other))
		} else {
			seenPos[e.Pos] = e.Team
		}
		if seenTeam[e.Team] {
			report.add(KindDuplicateTeam, seasonKey, tierKey, e.Team, "team appears twice")
		}
		seenTeam[e.Team] = true
	}

	// The final lists must contain at least every row-flagged team;
	// extra explicit names are legitimate, missing flagged ones are not.
	checkListCoverage(report, seasonKey, tierKey, entries, tier.Promoted(), "promoted",
		func(e model.TableEntry) bool { return e.WasPromoted })
	checkListCoverage(report, seasonKey, tierKey, entries, tier.Relegated(), "relegated",
		func(e model.TableEntry) bool { return e.WasRelegated })
}

func checkListCoverage(report *Report, seasonKey, tierKey string, entries []model.TableEntry,
	list []string, listName string, flagged func(model.TableEntry) bool) {
	if list == nil {
		// Compact tiers carry no lists; nothing to diverge from.
		return
	}
	inList := make(map[string]bool, len(list))
	for _, name := range list {
		inList[name] = true
	}
	for _, e := range entries {
		if flagged(e) && !inList[e.Team] {
			report.add(KindListDivergence, seasonKey, tierKey, e.Team,
				fmt.Sprintf("row flag set but missing from %s list", listName))
		}
	}
}

func (r *Report) add(kind Kind, seasonKey, tierKey, team, detail string) {
	r.Violations = append(r.Violations, Violation{
		Kind: kind, Season: seasonKey, TierKey: tierKey, Team: team, Detail: detail,
	})
}

// Render writes the violations as a human-readable table.
func (r *Report) Render(w io.Writer) {
	if r.Clean() {
		fmt.Fprintln(w, "No violations found.")
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Season", "Tier", "Kind", "Team", "Detail"})
	for _, v := range r.Violations {
		tw.AppendRow(table.Row{v.Season, v.TierKey, string(v.Kind), v.Team, v.Detail})
	}
	tw.Render()
	fmt.Fprintf(w, "%d violation(s) found.\n", len(r.Violations))
}
