package htmltable

import (
	"regexp"
	"strings"
)

// Canonical field names used in the column map.
const (
	fieldPos            = "pos"
	fieldTeam           = "team"
	fieldPlayed         = "played"
	fieldWon            = "won"
	fieldDrawn          = "drawn"
	fieldLost           = "lost"
	fieldGoalsFor       = "goalsFor"
	fieldGoalsAgainst   = "goalsAgainst"
	fieldGoalDifference = "goalDifference"
	fieldGoalAverage    = "goalAverage"
	fieldPoints         = "points"
	fieldNotes          = "notes"
)

// columnAliases maps normalized header text to canonical fields. Sources
// vary wildly by era: "Pld"/"P"/"Played", "F"/"GF"/"For", etc.
var columnAliases = map[string]string{
	"pos": fieldPos, "position": fieldPos, "no": fieldPos, "#": fieldPos,

	"team": fieldTeam, "club": fieldTeam, "team name": fieldTeam, "club name": fieldTeam,

	"pld": fieldPlayed, "p": fieldPlayed, "pl": fieldPlayed,
	"played": fieldPlayed, "games": fieldPlayed, "games played": fieldPlayed,

	"w": fieldWon, "won": fieldWon, "win": fieldWon, "wins": fieldWon,
	"d": fieldDrawn, "drawn": fieldDrawn, "draw": fieldDrawn, "draws": fieldDrawn,
	"l": fieldLost, "lost": fieldLost, "loss": fieldLost, "losses": fieldLost,

	"gf": fieldGoalsFor, "f": fieldGoalsFor, "for": fieldGoalsFor,
	"goals for": fieldGoalsFor,
	"ga": fieldGoalsAgainst, "a": fieldGoalsAgainst, "against": fieldGoalsAgainst,
	"goals against": fieldGoalsAgainst,

	"gd": fieldGoalDifference, "diff": fieldGoalDifference, "+/-": fieldGoalDifference,
	"goal difference": fieldGoalDifference, "goal diff": fieldGoalDifference,

	"gavg": fieldGoalAverage, "gav": fieldGoalAverage, "gr": fieldGoalAverage,
	"goal average": fieldGoalAverage, "goal ratio": fieldGoalAverage,

	"pts": fieldPoints, "points": fieldPoints, "pt": fieldPoints,

	"notes": fieldNotes, "remarks": fieldNotes, "comments": fieldNotes,
}

var headerPeriods = regexp.MustCompile(`\.`)
var innerWhitespace = regexp.MustCompile(`\s+`)

// normalizeHeader trims, lowercases, collapses whitespace and strips periods
// so "Pld." and " pld " map identically.
func normalizeHeader(cell string) string {
	s := strings.ToLower(strings.TrimSpace(cell))
	s = headerPeriods.ReplaceAllString(s, "")
	return innerWhitespace.ReplaceAllString(s, " ")
}

// columnMap is the resolved header layout for one table.
type columnMap struct {
	fields map[string]int // canonical field -> column index
}

// mapHeaders resolves a header row into a columnMap. A header cell whose
// text mentions relegation or qualification is a notes column even without a
// "Notes" label. If no notes column is identified and the header row is
// non-empty, the last unmapped column defaults to notes; when the last
// column is itself a mapped stat, the notes index still points there but
// purely numeric cell values are not treated as notes text.
func mapHeaders(cells []string) columnMap {
	cm := columnMap{fields: make(map[string]int)}

	for i, cell := range cells {
		norm := normalizeHeader(cell)
		if norm == "" {
			continue
		}
		if field, ok := columnAliases[norm]; ok {
			if _, taken := cm.fields[field]; !taken {
				cm.fields[field] = i
			}
			continue
		}
		if strings.Contains(norm, "relegation") || strings.Contains(norm, "qualification") ||
			strings.Contains(norm, "notes") {
			if _, taken := cm.fields[fieldNotes]; !taken {
				cm.fields[fieldNotes] = i
			}
		}
	}

	if _, ok := cm.fields[fieldNotes]; !ok && len(cells) > 0 {
		cm.fields[fieldNotes] = len(cells) - 1
	}
	return cm
}

// index returns the column index for a field, or -1.
func (cm columnMap) index(field string) int {
	if i, ok := cm.fields[field]; ok {
		return i
	}
	return -1
}
