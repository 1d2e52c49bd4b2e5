package htmltable

import (
	"strings"

	"github.com/tgreenwood/leaguetables/internal/model"
	"github.com/tgreenwood/leaguetables/internal/outcome"
)

// Config carries the classification context for one table.
type Config struct {
	Rules *outcome.Rules
	// Legend maps symbols attached to team cells to outcome flags; nil when
	// the table has no legend block.
	Legend outcome.Legend
	// TopFlight suppresses promotion derivation from notes text.
	TopFlight bool
}

// RowParser converts data rows of one table, carrying rowspan'd notes state
// between consecutive rows. One RowParser per table; rows must be fed in
// document order.
type RowParser struct {
	cols   columnMap
	cfg    Config
	carry  string
	remain int
}

// NewRowParser resolves the header row and prepares a parser for the
// table's data rows.
func NewRowParser(headerCells []string, cfg Config) *RowParser {
	if cfg.Rules == nil {
		cfg.Rules = outcome.Default()
	}
	return &RowParser{
		cols: mapHeaders(headerCells),
		cfg:  cfg,
	}
}

// ParseRow converts one data row into a TableEntry, or nil when the row is
// not a genuine data row: repeated header, too few cells, or missing team
// name or position. Numeric coercion failures on accepted rows fall back to
// zero (or nil for the nullable fields) rather than dropping the row.
func (p *RowParser) ParseRow(cells []Cell) *model.TableEntry {
	if len(cells) < 3 {
		return nil
	}
	if p.looksLikeHeader(cells) {
		return nil
	}

	teamIdx := p.cols.index(fieldTeam)
	if teamIdx < 0 {
		// Era layouts without a "Team" header put the name in the second
		// column, right after the position.
		teamIdx = 1
	}
	if teamIdx >= len(cells) {
		return nil
	}
	team := cleanTeamName(cells[teamIdx].Text)
	if team == "" {
		return nil
	}

	pos, ok := p.intField(cells, fieldPos, 0)
	if !ok {
		return nil
	}

	entry := model.TableEntry{Pos: pos, Team: team}
	entry.Played, _ = p.intField(cells, fieldPlayed, -1)
	entry.Won, _ = p.intField(cells, fieldWon, -1)
	entry.Drawn, _ = p.intField(cells, fieldDrawn, -1)
	entry.Lost, _ = p.intField(cells, fieldLost, -1)
	entry.GoalsFor, _ = p.intField(cells, fieldGoalsFor, -1)
	entry.GoalsAgainst, _ = p.intField(cells, fieldGoalsAgainst, -1)
	entry.Points, _ = p.intField(cells, fieldPoints, -1)

	if gd, ok := p.intField(cells, fieldGoalDifference, -1); ok {
		entry.GoalDifference = &gd
	}
	if idx := p.cols.index(fieldGoalAverage); idx >= 0 && idx < len(cells) {
		if avg, ok := coerceNumber(cells[idx].Text); ok {
			entry.GoalAverage = &avg
		}
	}

	if notes := p.resolveNotes(cells); notes != "" {
		entry.Notes = &notes
	}

	p.applyFlags(&entry, cells[teamIdx])
	return &entry
}

// intField coerces a mapped numeric cell; defaultIdx is used when the field
// has no mapped column (-1 disables the fallback).
func (p *RowParser) intField(cells []Cell, field string, defaultIdx int) (int, bool) {
	idx := p.cols.index(field)
	if idx < 0 {
		idx = defaultIdx
	}
	if idx < 0 || idx >= len(cells) {
		return 0, false
	}
	return coerceInt(cells[idx].Text)
}

// resolveNotes returns the row's notes text, consuming or refreshing the
// rowspan carry.
func (p *RowParser) resolveNotes(cells []Cell) string {
	idx := p.cols.index(fieldNotes)
	if idx >= 0 && idx < len(cells) {
		cell := cells[idx]
		text := strings.TrimSpace(cell.Text)
		// A defaulted notes index can land on a stat column; a bare number
		// there is data, not notes.
		if text != "" && containsLetter(text) {
			if cell.RowSpan > 1 {
				p.carry = text
				p.remain = cell.RowSpan - 1
			}
			return text
		}
	}
	// Row lacks its own notes cell (or it is empty): inherit the carried
	// merged-cell text, if any remains.
	if p.remain > 0 {
		p.remain--
		return p.carry
	}
	return ""
}

// applyFlags derives the five outcome booleans: notes-derived flags first,
// then legend symbols from the team cell applied additively on top.
func (p *RowParser) applyFlags(entry *model.TableEntry, teamCell Cell) {
	notes := ""
	if entry.Notes != nil {
		notes = *entry.Notes
	}
	flags := p.cfg.Rules.Classify(notes, p.cfg.TopFlight)
	if p.cfg.Legend != nil {
		flags = flags.Or(p.cfg.Legend.Flags(outcome.SymbolsFromText(teamCell.Text)))
	}
	entry.WasPromoted = flags.Promoted
	entry.WasRelegated = flags.Relegated
	entry.IsExpansionTeam = flags.Expansion
	entry.WasReElected = flags.ReElected
	entry.WasReprieved = flags.Reprieved
}

// headerKeywords flag a row as a repeated header when combined with a total
// absence of numeric cells.
var headerKeywords = []string{"team", "club", "pos", "pld", "played", "points", "pts"}

func containsLetter(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
}

func (p *RowParser) looksLikeHeader(cells []Cell) bool {
	sawKeyword := false
	for _, c := range cells {
		if _, ok := coerceNumber(c.Text); ok {
			return false
		}
		lower := strings.ToLower(c.Text)
		for _, kw := range headerKeywords {
			if strings.Contains(lower, kw) {
				sawKeyword = true
			}
		}
	}
	return sawKeyword
}
