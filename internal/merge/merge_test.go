package merge

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tgreenwood/leaguetables/internal/model"
)

func entry(pos int, team string, gf, ga int) model.TableEntry {
	return model.TableEntry{Pos: pos, Team: team, GoalsFor: gf, GoalsAgainst: ga}
}

func datasetWithTier(key, tierKey string, entries []model.TableEntry) *model.Dataset {
	ds := model.NewDataset()
	ds.SetTier(key, tierKey, model.FullTier(model.TierData{Table: entries}))
	return ds
}

func TestMergePriorityFirstWithDataWins(t *testing.T) {
	a := datasetWithTier("2000", "tier1", []model.TableEntry{entry(1, "Arsenal", 70, 30)})
	b := datasetWithTier("2000", "tier1", []model.TableEntry{entry(1, "Chelsea", 60, 40)})

	merged, report := Merge([]*model.Dataset{a, b}, Options{})
	got := merged.Seasons["2000"]["tier1"].Table()
	if len(got) != 1 || got[0].Team != "Arsenal" {
		t.Errorf("priority order should keep A's row, got %v", got)
	}
	if report.TierConflicts != 1 {
		t.Errorf("TierConflicts = %d, want 1", report.TierConflicts)
	}

	// Reversed order with A's tier emptied: B's row wins.
	empty := datasetWithTier("2000", "tier1", nil)
	merged, _ = Merge([]*model.Dataset{empty, b}, Options{})
	got = merged.Seasons["2000"]["tier1"].Table()
	if len(got) != 1 || got[0].Team != "Chelsea" {
		t.Errorf("empty incumbent should be replaced, got %v", got)
	}
}

func TestMergeIdempotence(t *testing.T) {
	ds := model.NewDataset()
	ds.SetTier("1950", "tier1", model.FullTier(model.TierData{
		Season:    1950,
		Table:     []model.TableEntry{entry(1, "Tottenham Hotspur", 82, 44)},
		Relegated: []string{"Everton"},
	}))
	ds.SetTier("1950", "tier2", model.CompactTier([]model.TableEntry{entry(1, "Preston North End", 91, 49)}))

	once, _ := Merge([]*model.Dataset{ds}, Options{})
	twice, _ := Merge([]*model.Dataset{once, once}, Options{})

	if diff := cmp.Diff(once, twice, cmp.AllowUnexported(model.Tier{})); diff != "" {
		t.Errorf("merging a dataset with itself changed it (-once +twice):\n%s", diff)
	}
}

func TestMergeDropsWarYears(t *testing.T) {
	ds := model.NewDataset()
	for _, key := range []string{"1914", "1915", "1918", "1919", "1939", "1940", "1945", "1946"} {
		ds.SetTier(key, "tier1", model.CompactTier([]model.TableEntry{entry(1, "Placeholder FC", 1, 0)}))
	}

	merged, report := Merge([]*model.Dataset{ds}, Options{})

	for _, key := range []string{"1915", "1918", "1940", "1945"} {
		if _, ok := merged.Seasons[key]; ok {
			t.Errorf("war season %s should be dropped", key)
		}
	}
	for _, key := range []string{"1914", "1919", "1939", "1946"} {
		if _, ok := merged.Seasons[key]; !ok {
			t.Errorf("season %s should survive", key)
		}
	}
	if len(report.ExcludedWWI) != 2 || len(report.ExcludedWWII) != 2 {
		t.Errorf("report buckets = %v / %v", report.ExcludedWWI, report.ExcludedWWII)
	}

	// KeepWarYears retains them.
	merged, _ = Merge([]*model.Dataset{ds}, Options{KeepWarYears: true})
	if _, ok := merged.Seasons["1940"]; !ok {
		t.Error("KeepWarYears should retain 1940")
	}
}

func TestMergeDropsEmptySeasons(t *testing.T) {
	ds := model.NewDataset()
	ds.SetTier("1950", "tier1", model.CompactTier([]model.TableEntry{entry(1, "Arsenal", 1, 0)}))
	ds.SetTier("1951", "tier1", model.CompactTier(nil))

	merged, report := Merge([]*model.Dataset{ds}, Options{})
	if _, ok := merged.Seasons["1951"]; ok {
		t.Error("empty season should be dropped by default")
	}
	if len(report.ExcludedEmpty) != 1 || report.ExcludedEmpty[0] != "1951" {
		t.Errorf("ExcludedEmpty = %v", report.ExcludedEmpty)
	}

	merged, _ = Merge([]*model.Dataset{ds}, Options{IncludeEmpty: true})
	if _, ok := merged.Seasons["1951"]; !ok {
		t.Error("IncludeEmpty should keep the empty season")
	}
}

func TestMergeRepairsGoalDifference(t *testing.T) {
	wrong := 99
	ds := model.NewDataset()
	ds.SetTier("1960", "tier1", model.FullTier(model.TierData{
		Table: []model.TableEntry{
			{Pos: 1, Team: "Burnley", GoalsFor: 85, GoalsAgainst: 61, GoalDifference: &wrong},
			{Pos: 2, Team: "Wolves", GoalsFor: 106, GoalsAgainst: 67}, // nil GD
		},
	}))

	merged, report := Merge([]*model.Dataset{ds}, Options{})
	rows := merged.Seasons["1960"]["tier1"].Table()

	for _, row := range rows {
		if row.GoalDifference == nil {
			t.Fatalf("%s: GD should be filled", row.Team)
		}
		if want := row.GoalsFor - row.GoalsAgainst; *row.GoalDifference != want {
			t.Errorf("%s: GD = %d, want %d", row.Team, *row.GoalDifference, want)
		}
	}
	if report.GoalDiffRepairs != 2 {
		t.Errorf("GoalDiffRepairs = %d, want 2", report.GoalDiffRepairs)
	}
}

func TestMergeFillsSeasonInfoFields(t *testing.T) {
	a := model.NewDataset()
	a.SetTier("1950", model.SeasonInfoKey, model.FullTier(model.TierData{
		Season:   1950,
		Promoted: []string{"Preston North End"},
	}))
	b := model.NewDataset()
	b.SetTier("1950", model.SeasonInfoKey, model.FullTier(model.TierData{
		Season:     1950,
		Promoted:   []string{"Should Not Win"},
		SeasonSlug: "1950-51",
		SourceURL:  "https://example.org/1950",
	}))
	// Both seasons need real tier data to survive the empty-season pass.
	a.SetTier("1950", "tier1", model.CompactTier([]model.TableEntry{entry(1, "Arsenal", 1, 0)}))

	merged, _ := Merge([]*model.Dataset{a, b}, Options{})
	info := merged.Seasons["1950"][model.SeasonInfoKey].Data()
	if info == nil {
		t.Fatal("seasonInfo missing")
	}
	if len(info.Promoted) != 1 || info.Promoted[0] != "Preston North End" {
		t.Errorf("populated incumbent field should win: %v", info.Promoted)
	}
	if info.SeasonSlug != "1950-51" || info.SourceURL == "" {
		t.Errorf("absent fields should fill from the later source: %+v", info)
	}
}

func TestMergeNonNumericKeysReported(t *testing.T) {
	ds := model.NewDataset()
	ds.SetTier("unknown-era", "tier1", model.CompactTier([]model.TableEntry{entry(1, "Corinthians", 3, 1)}))

	merged, report := Merge([]*model.Dataset{ds}, Options{})
	if _, ok := merged.Seasons["unknown-era"]; !ok {
		t.Error("non-numeric keys are tolerated, not dropped")
	}
	if len(report.NonNumericKeys) != 1 {
		t.Errorf("NonNumericKeys = %v", report.NonNumericKeys)
	}
}

func TestReportRender(t *testing.T) {
	ds := datasetWithTier("1915", "tier1", []model.TableEntry{entry(1, "Wartime XI", 1, 0)})
	_, report := Merge([]*model.Dataset{ds}, Options{})

	var buf bytes.Buffer
	report.Render(&buf)
	out := buf.String()
	for _, want := range []string{"Seasons seen", "WWI", "1915"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output should mention %q:\n%s", want, out)
		}
	}
}
