package rsssf

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tgreenwood/leaguetables/internal/model"
	"github.com/tgreenwood/leaguetables/internal/outcome"
)

// statHeader identifies the fixed statistics header line once whitespace is
// collapsed: position, home split, away split.
const statHeader = "P W D L F A W D L F A"

// Stat window widths: full layout carries goal difference, the short one
// omits it and GD is recomputed from the goal splits.
const (
	fullWindow  = 13
	shortWindow = 12
)

// markerChars lead a footnote line and trail a data row.
const markerChars = "+*#@^"

// SplitStats is one half (home or away) of a row's statistics.
type SplitStats struct {
	Won, Drawn, Lost, For, Against int
}

// Row is one parsed team line with both the home/away splits and the
// aggregate view.
type Row struct {
	Pos            int
	Team           string
	Home, Away     SplitStats
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	Markers        []string
	Notes          string
	Flags          outcome.Flags
	allCaps        bool
}

// Competition is one parsed table block: heading metadata plus rows in
// table order.
type Competition struct {
	Heading    string
	League     string
	SeasonSlug string
	Year       int
	Rows       []Row
}

// Parser parses RSSSF-dialect text blocks.
type Parser struct {
	rules *outcome.Rules
}

// New returns a parser using the given rule tables (nil for defaults).
func New(rules *outcome.Rules) *Parser {
	if rules == nil {
		rules = outcome.Default()
	}
	return &Parser{rules: rules}
}

var collapseSpace = regexp.MustCompile(`\s+`)

// Parse scans a text block for competitions: each is a heading line, the
// statistics header, then data and footnote lines. Malformed rows are
// discarded individually; a block with no parseable rows yields a
// competition with an empty row list.
func (p *Parser) Parse(text string) []Competition {
	lines := strings.Split(text, "\n")

	var comps []Competition
	lastHeading := ""
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if !isStatHeader(line) {
			lastHeading = line
			continue
		}

		comp := newCompetition(lastHeading)
		next := p.parseTable(&comp, lines, i+1)
		comps = append(comps, comp)
		i = next - 1
	}
	return comps
}

// parseTable consumes data and footnote lines starting at index start, and
// returns the index of the first line it did not consume.
func (p *Parser) parseTable(comp *Competition, lines []string, start int) int {
	footnotes := make(map[string]string)

	i := start
scan:
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case line == "":
			continue
		case strings.Contains(strings.ToLower(line), "<hr"):
			i++
			break scan
		case strings.ContainsRune(markerChars, rune(line[0])):
			symbol, text := splitFootnote(line)
			if footnotes[symbol] != "" {
				footnotes[symbol] += " " + text
			} else {
				footnotes[symbol] = text
			}
		case leadingNumber(line):
			if row, ok := parseRow(line); ok {
				comp.Rows = append(comp.Rows, row)
			}
		default:
			// Neither footnote nor position-led: the table is over.
			break scan
		}
	}

	p.finishRows(comp, footnotes)
	return i
}

// finishRows attaches footnote text to marker-carrying rows and derives the
// outcome flags: footnote-text-derived signals unioned with the structural
// all-caps + table-half heuristic.
func (p *Parser) finishRows(comp *Competition, footnotes map[string]string) {
	total := len(comp.Rows)
	for idx := range comp.Rows {
		row := &comp.Rows[idx]

		var notes []string
		for _, m := range row.Markers {
			if text := footnotes[m]; text != "" {
				notes = append(notes, text)
			}
		}
		row.Notes = strings.Join(notes, "; ")

		row.Flags = p.rules.Classify(row.Notes, false)
		if row.allCaps {
			if idx*2 < total {
				row.Flags.Promoted = true
			} else {
				row.Flags.Relegated = true
			}
		}
	}
}

// parseRow tokenizes one data line and slides a window over the tokens for
// the first run of 13 (then 12) consecutive numeric columns. Everything
// before the run is the team name; trailing marker tokens key into the
// footnote lookup.
func parseRow(line string) (Row, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < shortWindow+2 {
		return Row{}, false
	}

	pos, ok := parseInt(strings.TrimSuffix(tokens[0], "."))
	if !ok {
		return Row{}, false
	}
	rest := tokens[1:]

	for _, width := range []int{fullWindow, shortWindow} {
		for begin := 1; begin+width <= len(rest); begin++ {
			window, ok := numericRun(rest[begin : begin+width])
			if !ok {
				continue
			}
			team := strings.Join(rest[:begin], " ")
			if team == "" {
				return Row{}, false
			}

			row := Row{
				Pos:     pos,
				Team:    team,
				Markers: markerTokens(rest[begin+width:]),
				allCaps: isAllCaps(team),
			}
			fillStats(&row, window, width)
			return row, true
		}
	}
	return Row{}, false
}

func fillStats(row *Row, n []int, width int) {
	row.Played = n[0]
	row.Home = SplitStats{Won: n[1], Drawn: n[2], Lost: n[3], For: n[4], Against: n[5]}
	row.Away = SplitStats{Won: n[6], Drawn: n[7], Lost: n[8], For: n[9], Against: n[10]}

	row.Won = row.Home.Won + row.Away.Won
	row.Drawn = row.Home.Drawn + row.Away.Drawn
	row.Lost = row.Home.Lost + row.Away.Lost
	row.GoalsFor = row.Home.For + row.Away.For
	row.GoalsAgainst = row.Home.Against + row.Away.Against

	if width == fullWindow {
		row.GoalDifference = n[11]
		row.Points = n[12]
	} else {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		row.Points = n[11]
	}
}

// Entries converts the competition's rows into canonical table entries.
func (c *Competition) Entries() []model.TableEntry {
	entries := make([]model.TableEntry, 0, len(c.Rows))
	for _, row := range c.Rows {
		gd := row.GoalDifference
		entry := model.TableEntry{
			Pos:             row.Pos,
			Team:            canonicalTeamName(row.Team),
			Played:          row.Played,
			Won:             row.Won,
			Drawn:           row.Drawn,
			Lost:            row.Lost,
			GoalsFor:        row.GoalsFor,
			GoalsAgainst:    row.GoalsAgainst,
			Points:          row.Points,
			GoalDifference:  &gd,
			WasPromoted:     row.Flags.Promoted,
			WasRelegated:    row.Flags.Relegated,
			IsExpansionTeam: row.Flags.Expansion,
			WasReElected:    row.Flags.ReElected,
			WasReprieved:    row.Flags.Reprieved,
		}
		if row.Notes != "" {
			notes := row.Notes
			entry.Notes = &notes
		}
		entries = append(entries, entry)
	}
	return entries
}

var seasonInHeading = regexp.MustCompile(`(\d{4})\s*[-/]\s*(\d{2,4})`)

func newCompetition(heading string) Competition {
	comp := Competition{Heading: heading}
	if m := seasonInHeading.FindStringSubmatch(heading); m != nil {
		year, _ := strconv.Atoi(m[1])
		comp.Year = year
		comp.SeasonSlug = m[1] + "-" + m[2][len(m[2])-2:]
		comp.League = strings.Trim(strings.TrimSpace(strings.Replace(heading, m[0], "", 1)), "-–, ")
	} else {
		comp.League = heading
	}
	return comp
}

func isStatHeader(line string) bool {
	collapsed := collapseSpace.ReplaceAllString(strings.TrimSpace(line), " ")
	return strings.Contains(collapsed, statHeader)
}

// splitFootnote separates the leading marker-symbol run from the note text.
func splitFootnote(line string) (symbol, text string) {
	i := 0
	for i < len(line) && strings.ContainsRune(markerChars, rune(line[i])) {
		i++
	}
	symbol = line[:i]
	text = strings.TrimSpace(strings.TrimLeft(line[i:], "): ="))
	return symbol, text
}

func markerTokens(tokens []string) []string {
	var markers []string
	for _, tok := range tokens {
		if tok != "" && strings.Trim(tok, markerChars) == "" {
			markers = append(markers, tok)
		}
	}
	return markers
}

func leadingNumber(line string) bool {
	return line[0] >= '0' && line[0] <= '9'
}

func numericRun(tokens []string) ([]int, bool) {
	values := make([]int, len(tokens))
	for i, tok := range tokens {
		n, ok := parseInt(tok)
		if !ok {
			return nil, false
		}
		values[i] = n
	}
	return values, true
}

func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isAllCaps(team string) bool {
	hasLetter := false
	for _, r := range team {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// canonicalTeamName title-cases the all-caps names so entries merge cleanly
// with the HTML-sourced tables.
func canonicalTeamName(team string) string {
	if !isAllCaps(team) {
		return team
	}
	words := strings.Fields(strings.ToLower(team))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
