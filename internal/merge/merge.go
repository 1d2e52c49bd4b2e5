package merge

import (
	"dario.cat/mergo"

	"github.com/tgreenwood/leaguetables/internal/model"
)

// Options control the post-merge passes.
type Options struct {
	// IncludeEmpty keeps seasons with no tier carrying any data.
	IncludeEmpty bool
	// KeepWarYears keeps the WWI/WWII suspension seasons instead of
	// dropping them.
	KeepWarYears bool
}

// Merge combines datasets in priority order (first listed wins ties) into
// one dataset, then drops war-suspension seasons, drops empty seasons
// (unless opts.IncludeEmpty) and repairs the goal-difference invariant.
// Inputs are never mutated.
func Merge(datasets []*model.Dataset, opts Options) (*model.Dataset, *Report) {
	merged := model.NewDataset()
	report := NewReport()

	for _, ds := range datasets {
		if ds == nil {
			continue
		}
		for key, sd := range ds.Seasons {
			mergeSeason(merged.Season(key), sd, report)
		}
	}

	report.SeasonsSeen = len(merged.Seasons)
	if !opts.KeepWarYears {
		dropWarSeasons(merged, report)
	}
	if !opts.IncludeEmpty {
		dropEmptySeasons(merged, report)
	}
	repairGoalDifference(merged, report)

	for key := range merged.Seasons {
		if _, ok := model.SeasonYear(key); !ok {
			report.NonNumericKeys = append(report.NonNumericKeys, key)
		}
	}
	report.SeasonsKept = len(merged.Seasons)
	report.sortBuckets()
	return merged, report
}

// mergeSeason merges one incoming season into the incumbent, tier by tier.
func mergeSeason(incumbent model.SeasonData, incoming model.SeasonData, report *Report) {
	for tierKey, tier := range incoming {
		current, exists := incumbent[tierKey]
		switch {
		case !exists:
			incumbent[tierKey] = tier
		case !current.HasData() && tier.HasData():
			incumbent[tierKey] = tier
		case current.HasData() && tier.HasData():
			// First-with-data wins. For the seasonInfo pseudo-tier the
			// incumbent still absorbs any fields it lacks.
			if tierKey == model.SeasonInfoKey {
				incumbent[tierKey] = fillSeasonInfo(current, tier)
			}
			report.TierConflicts++
		}
	}
}

// fillSeasonInfo fills absent non-tier season fields of the incumbent
// seasonInfo from the incoming one. Populated fields are never overwritten.
func fillSeasonInfo(current, incoming model.Tier) model.Tier {
	dst, src := current.Data(), incoming.Data()
	if dst == nil || src == nil {
		return current
	}
	filled := *dst
	if err := mergo.Merge(&filled, *src); err != nil {
		return current
	}
	return model.FullTier(filled)
}

func dropWarSeasons(ds *model.Dataset, report *Report) {
	for key := range ds.Seasons {
		year, ok := model.SeasonYear(key)
		if !ok {
			continue
		}
		switch {
		case model.IsWWISeason(year):
			report.ExcludedWWI = append(report.ExcludedWWI, key)
			delete(ds.Seasons, key)
		case model.IsWWIISeason(year):
			report.ExcludedWWII = append(report.ExcludedWWII, key)
			delete(ds.Seasons, key)
		}
	}
}

func dropEmptySeasons(ds *model.Dataset, report *Report) {
	for key, sd := range ds.Seasons {
		hasData := false
		for _, tier := range sd {
			if tier.HasData() {
				hasData = true
				break
			}
		}
		if !hasData {
			report.ExcludedEmpty = append(report.ExcludedEmpty, key)
			delete(ds.Seasons, key)
		}
	}
}

// repairGoalDifference enforces GD = GF - GA on every row, regardless of
// what the sources recorded.
func repairGoalDifference(ds *model.Dataset, report *Report) {
	for _, sd := range ds.Seasons {
		for tierKey, tier := range sd {
			entries := tier.Table()
			changed := false
			repaired := make([]model.TableEntry, len(entries))
			for i, e := range entries {
				want := e.GoalsFor - e.GoalsAgainst
				if e.GoalDifference == nil || *e.GoalDifference != want {
					gd := want
					e.GoalDifference = &gd
					changed = true
					report.GoalDiffRepairs++
				}
				repaired[i] = e
			}
			if changed {
				sd[tierKey] = tier.WithTable(repaired)
			}
		}
	}
}
