package model

import (
	"fmt"
	"sort"
	"strconv"
)

// TableEntry is one team's result row for one tier and season.
//
// GoalDifference is nullable because many sources omit it; the merger
// recomputes it as GoalsFor-GoalsAgainst across the whole dataset, so after a
// merge it is always present and consistent. GoalAverage is the legacy
// pre-1976 tie-break metric and is never validated.
type TableEntry struct {
	Pos             int      `json:"pos"`
	Team            string   `json:"team"`
	Played          int      `json:"played"`
	Won             int      `json:"won"`
	Drawn           int      `json:"drawn"`
	Lost            int      `json:"lost"`
	GoalsFor        int      `json:"goalsFor"`
	GoalsAgainst    int      `json:"goalsAgainst"`
	Points          int      `json:"points"`
	GoalDifference  *int     `json:"goalDifference"`
	GoalAverage     *float64 `json:"goalAverage,omitempty"`
	Notes           *string  `json:"notes"`
	WasPromoted     bool     `json:"wasPromoted"`
	WasRelegated    bool     `json:"wasRelegated"`
	IsExpansionTeam bool     `json:"isExpansionTeam"`
	WasReElected    bool     `json:"wasReElected"`
	WasReprieved    bool     `json:"wasReprieved"`
}

// SeasonMeta holds provenance details recorded during extraction.
type SeasonMeta struct {
	TableIndex int    `json:"tableIndex,omitempty"`
	TableCount int    `json:"tableCount,omitempty"`
	LeagueID   string `json:"leagueId,omitempty"`
}

// TierData is one tier (division) within one season, with its table in
// position order plus season-level promoted/relegated name sets and
// provenance metadata.
type TierData struct {
	Season     int          `json:"season"`
	Table      []TableEntry `json:"table"`
	Promoted   []string     `json:"promoted"`
	Relegated  []string     `json:"relegated"`
	SeasonSlug string       `json:"seasonSlug,omitempty"`
	SourceURL  string       `json:"sourceUrl,omitempty"`
	TierLabel  string       `json:"tier,omitempty"`
	Title      string       `json:"title,omitempty"`
	Meta       *SeasonMeta  `json:"seasonMetadata,omitempty"`
}

// HasData reports whether the tier carries any table rows, outcome lists or
// descriptive metadata. Richness drives merge precedence.
func (td *TierData) HasData() bool {
	if td == nil {
		return false
	}
	if len(td.Table) > 0 || len(td.Promoted) > 0 || len(td.Relegated) > 0 {
		return true
	}
	return td.SeasonSlug != "" || td.SourceURL != "" || td.TierLabel != "" ||
		td.Title != "" || td.Meta != nil
}

// SeasonData maps tier keys ("tier1", "tier2", ..., "seasonInfo") to tiers.
type SeasonData map[string]Tier

// Dataset is the root document: season key (stringified start year) to
// SeasonData. Non-numeric keys are tolerated but excluded from year-range
// operations.
type Dataset struct {
	Seasons map[string]SeasonData `json:"seasons"`
}

// NewDataset returns an empty dataset ready for incremental assembly.
func NewDataset() *Dataset {
	return &Dataset{Seasons: make(map[string]SeasonData)}
}

// Season returns the SeasonData for a key, creating it if absent.
func (d *Dataset) Season(key string) SeasonData {
	sd, ok := d.Seasons[key]
	if !ok {
		sd = make(SeasonData)
		d.Seasons[key] = sd
	}
	return sd
}

// SetTier stores a tier under a season key, replacing any previous value.
// Tiers are always replaced whole, never partially edited.
func (d *Dataset) SetTier(seasonKey, tierKey string, t Tier) {
	d.Season(seasonKey)[tierKey] = t
}

// SortedSeasonKeys returns all season keys, numeric keys first in ascending
// year order, then any non-numeric keys in lexical order.
func (d *Dataset) SortedSeasonKeys() []string {
	numeric := make([]int, 0, len(d.Seasons))
	other := make([]string, 0)
	for k := range d.Seasons {
		if y, ok := SeasonYear(k); ok {
			numeric = append(numeric, y)
		} else {
			other = append(other, k)
		}
	}
	sort.Ints(numeric)
	sort.Strings(other)
	keys := make([]string, 0, len(d.Seasons))
	for _, y := range numeric {
		keys = append(keys, strconv.Itoa(y))
	}
	return append(keys, other...)
}

// SeasonInfoKey is the pseudo-tier holding season-wide promoted/relegated
// lists and slug/URL metadata, kept separate from the numbered tiers.
const SeasonInfoKey = "seasonInfo"

// TierKey returns the canonical key for tier n (1-based, tier1 = top flight).
func TierKey(n int) string {
	return fmt.Sprintf("tier%d", n)
}

// SeasonYear parses a season key into its start year. Returns false for
// non-numeric keys.
func SeasonYear(key string) (int, bool) {
	y, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return y, true
}

// War-suspension spans. League competition was suspended during both world
// wars; any season key falling in these ranges is a placeholder, never data.
const (
	WWIFirstSeason  = 1915
	WWILastSeason   = 1918
	WWIIFirstSeason = 1940
	WWIILastSeason  = 1945
)

// IsWWISeason reports whether year falls in the WWI suspension span.
func IsWWISeason(year int) bool {
	return year >= WWIFirstSeason && year <= WWILastSeason
}

// IsWWIISeason reports whether year falls in the WWII suspension span.
func IsWWIISeason(year int) bool {
	return year >= WWIIFirstSeason && year <= WWIILastSeason
}

// IsWarSeason reports whether year falls in either suspension span.
func IsWarSeason(year int) bool {
	return IsWWISeason(year) || IsWWIISeason(year)
}
