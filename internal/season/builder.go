package season

import (
	"strconv"

	"github.com/tgreenwood/leaguetables/internal/model"
)

// BuildOptions carry the season year, any explicitly supplied outcome
// lists, and provenance metadata to attach verbatim.
type BuildOptions struct {
	Season    int
	Promoted  []string // explicit season-wide list; may be nil
	Relegated []string
	Slug      string
	SourceURL string
	TierLabel string
	Title     string
	Meta      *model.SeasonMeta
}

// BuildTier produces one TierData from normalized rows. The promoted and
// relegated sets are the deduplicated union of the explicit input lists and
// the names of rows whose outcome flag is true; explicit lists and row flags
// may legitimately diverge, which the verify pass reports rather than this
// builder rejecting.
func BuildTier(entries []model.TableEntry, opts BuildOptions) model.TierData {
	if entries == nil {
		entries = []model.TableEntry{}
	}
	td := model.TierData{
		Season:     opts.Season,
		Table:      entries,
		Promoted:   unionNames(opts.Promoted, entries, func(e model.TableEntry) bool { return e.WasPromoted }),
		Relegated:  unionNames(opts.Relegated, entries, func(e model.TableEntry) bool { return e.WasRelegated }),
		SeasonSlug: opts.Slug,
		SourceURL:  opts.SourceURL,
		TierLabel:  opts.TierLabel,
		Title:      opts.Title,
		Meta:       opts.Meta,
	}
	return td
}

// BuildSeasonInfo builds the seasonInfo pseudo-tier: season-wide promoted
// and relegated lists plus slug/URL metadata, with an always-empty table.
func BuildSeasonInfo(seasonYear int, promoted, relegated []string, slug, sourceURL string) model.TierData {
	return model.TierData{
		Season:     seasonYear,
		Table:      []model.TableEntry{},
		Promoted:   dedupe(promoted),
		Relegated:  dedupe(relegated),
		SeasonSlug: slug,
		SourceURL:  sourceURL,
	}
}

// AddSeason writes a season's tiers plus its seasonInfo pseudo-tier into a
// dataset, replacing whole tiers. Later writes for the same season key in
// one run supersede earlier ones.
func AddSeason(ds *model.Dataset, seasonYear int, tiers []model.TierData, info *model.TierData) {
	key := strconv.Itoa(seasonYear)
	for i, td := range tiers {
		ds.SetTier(key, model.TierKey(i+1), model.FullTier(td))
	}
	if info != nil {
		ds.SetTier(key, model.SeasonInfoKey, model.FullTier(*info))
	}
}

// unionNames merges an explicit name list with the flagged row names,
// preserving first-seen order and dropping duplicates.
func unionNames(explicit []string, entries []model.TableEntry, flagged func(model.TableEntry) bool) []string {
	names := make([]string, 0, len(explicit))
	seen := make(map[string]bool, len(explicit))
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, name := range explicit {
		add(name)
	}
	for _, e := range entries {
		if flagged(e) {
			add(e.Team)
		}
	}
	return names
}

func dedupe(names []string) []string {
	return unionNames(names, nil, nil)
}
