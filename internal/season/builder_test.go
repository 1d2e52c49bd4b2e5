package season

import (
	"testing"

	"github.com/tgreenwood/leaguetables/internal/model"
)

func strptr(s string) *string { return &s }

func TestBuildTierDerivesOutcomeLists(t *testing.T) {
	entries := []model.TableEntry{
		{Pos: 1, Team: "Tottenham Hotspur"},
		{Pos: 21, Team: "Sheffield Wednesday", WasRelegated: true,
			Notes: strptr("Relegated to the Second Division")},
		{Pos: 22, Team: "Everton", WasRelegated: true,
			Notes: strptr("Relegated to the Second Division")},
	}

	td := BuildTier(entries, BuildOptions{
		Season:    1950,
		Slug:      "1950-51",
		TierLabel: "tier1",
		Title:     "First Division",
	})

	if td.Season != 1950 {
		t.Errorf("Season = %d", td.Season)
	}
	if len(td.Relegated) != 2 {
		t.Fatalf("Relegated = %v, want 2 names", td.Relegated)
	}
	for _, want := range []string{"Sheffield Wednesday", "Everton"} {
		found := false
		for _, name := range td.Relegated {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Relegated should contain %q", want)
		}
	}
	if len(td.Promoted) != 0 {
		t.Errorf("Promoted = %v, want empty", td.Promoted)
	}
}

func TestBuildTierUnionsExplicitAndRowFlags(t *testing.T) {
	entries := []model.TableEntry{
		{Pos: 1, Team: "Preston North End", WasPromoted: true},
		{Pos: 2, Team: "Manchester City", WasPromoted: true},
	}

	// Explicit list overlaps one row flag and adds a play-off winner the
	// rows don't flag.
	td := BuildTier(entries, BuildOptions{
		Season:   1950,
		Promoted: []string{"Manchester City", "Birmingham City"},
	})

	if len(td.Promoted) != 3 {
		t.Fatalf("Promoted = %v, want 3 unique names", td.Promoted)
	}
	// Every row-flagged team must be in the final list.
	for _, want := range []string{"Preston North End", "Manchester City", "Birmingham City"} {
		found := false
		for _, name := range td.Promoted {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Promoted should contain %q", want)
		}
	}
}

func TestBuildTierEmptyRows(t *testing.T) {
	td := BuildTier(nil, BuildOptions{Season: 1916})
	if td.Table == nil || len(td.Table) != 0 {
		t.Error("empty tier should carry an empty, non-nil table")
	}
	if len(td.Promoted) != 0 || len(td.Relegated) != 0 {
		t.Error("empty tier should have empty outcome lists")
	}
}

func TestAddSeasonShapesDataset(t *testing.T) {
	ds := model.NewDataset()

	tier1 := BuildTier([]model.TableEntry{{Pos: 1, Team: "Liverpool"}}, BuildOptions{Season: 1900})
	tier2 := BuildTier([]model.TableEntry{{Pos: 1, Team: "Grimsby Town", WasPromoted: true}}, BuildOptions{Season: 1900})
	info := BuildSeasonInfo(1900, []string{"Grimsby Town"}, []string{"Preston North End"}, "1900-01", "https://example.org/1900")

	AddSeason(ds, 1900, []model.TierData{tier1, tier2}, &info)

	sd, ok := ds.Seasons["1900"]
	if !ok {
		t.Fatal("season 1900 missing")
	}
	for _, key := range []string{"tier1", "tier2", model.SeasonInfoKey} {
		if _, ok := sd[key]; !ok {
			t.Errorf("missing %s", key)
		}
	}

	infoTier := sd[model.SeasonInfoKey]
	if len(infoTier.Table()) != 0 {
		t.Error("seasonInfo must carry no table rows")
	}
	if got := infoTier.Promoted(); len(got) != 1 || got[0] != "Grimsby Town" {
		t.Errorf("seasonInfo promoted = %v", got)
	}
}

func TestBuildSeasonInfoDeduplicates(t *testing.T) {
	info := BuildSeasonInfo(1930, []string{"Chelsea", "Chelsea", "Oldham Athletic"}, nil, "", "")
	if len(info.Promoted) != 2 {
		t.Errorf("Promoted = %v, want deduplicated pair", info.Promoted)
	}
}
