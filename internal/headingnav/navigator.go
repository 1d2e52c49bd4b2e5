package headingnav

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"

	"github.com/tgreenwood/leaguetables/internal/outcome"
)

// Section is one qualifying sub-section table: its (possibly inherited)
// title, the heading id it was found under, and the table element. When a
// heading is followed by several tables they are indexed 0..Count-1; a lone
// table has Index 0, Count 1.
type Section struct {
	Title string
	ID    string
	Table *goquery.Selection
	Index int
	Count int
}

// Navigator walks a parsed document for league-table sections.
type Navigator struct {
	rules *outcome.Rules
}

// New returns a Navigator using the given rule tables (nil for defaults).
func New(rules *outcome.Rules) *Navigator {
	if rules == nil {
		rules = outcome.Default()
	}
	return &Navigator{rules: rules}
}

// sectionIDs are known heading-id conventions, in rank order. Checked before
// any text scoring.
var sectionIDs = []string{
	"league tables", "league table", "final standings",
	"final league tables", "final league table", "league season",
}

// scoreThreshold is the minimum Jaro-Winkler similarity for a heading text
// to count as the league-tables section.
const scoreThreshold = 0.88

// FindLeagueTables returns every qualifying (title, id, table) triple inside
// the league-tables section, or — when no such section exists — from the
// generic heading-keyword fallback scan. An empty result is normal.
func (n *Navigator) FindLeagueTables(doc *goquery.Document) []Section {
	nodes := flatten(doc)

	if idx := n.matchSectionHeading(nodes); idx >= 0 {
		return collectSection(nodes, idx)
	}
	return n.keywordScan(nodes)
}

// matchSectionHeading finds the top-level league-tables heading: explicit
// ids first, then scored heading-text matching.
func (n *Navigator) matchSectionHeading(nodes []node) int {
	for _, want := range sectionIDs {
		for i, nd := range nodes {
			if nd.isHeading() && normalizeID(nd.id) == want {
				return i
			}
		}
	}

	best, bestScore := -1, 0.0
	for i, nd := range nodes {
		if !nd.isHeading() {
			continue
		}
		title := strings.ToLower(nd.title)
		for _, phrase := range n.rules.SectionPhrases {
			score := matchr.JaroWinkler(title, phrase, false)
			if strings.Contains(title, phrase) {
				score = 1
			}
			if score > bestScore {
				best, bestScore = i, score
			}
		}
	}
	if bestScore >= scoreThreshold {
		return best
	}
	return -1
}

// collectSection gathers every table between the matched heading and the
// next heading of equal-or-higher level. Deeper sub-headings start new
// groups; the deepest ones do not terminate the walk.
func collectSection(nodes []node, headingIdx int) []Section {
	section := nodes[headingIdx]
	level := section.level

	type group struct {
		title  string
		id     string
		tables []*goquery.Selection
	}
	groups := []*group{{title: section.title, id: section.id}}
	current := groups[0]

	// Ancestor titles within the section, for generic sub-heading names.
	ancestors := []node{section}

	for _, nd := range nodes[headingIdx+1:] {
		if nd.isHeading() {
			if nd.level <= level {
				break
			}
			for len(ancestors) > 1 && ancestors[len(ancestors)-1].level >= nd.level {
				ancestors = ancestors[:len(ancestors)-1]
			}
			title := nd.title
			if isGenericTitle(title) {
				title = ancestors[len(ancestors)-1].title
			}
			ancestors = append(ancestors, node{level: nd.level, title: title})
			current = &group{title: title, id: nd.id}
			groups = append(groups, current)
			continue
		}
		current.tables = append(current.tables, nd.table)
	}

	var sections []Section
	for _, g := range groups {
		for i, table := range g.tables {
			sections = append(sections, Section{
				Title: g.title,
				ID:    g.id,
				Table: table,
				Index: i,
				Count: len(g.tables),
			})
		}
	}
	return sections
}

// keywordScan is the fallback when no league-tables section heading exists:
// any heading naming a competition keyword claims the tables that follow it,
// with generic headings inheriting the nearest ancestor's title.
func (n *Navigator) keywordScan(nodes []node) []Section {
	var sections []Section
	var ancestors []node

	for i, nd := range nodes {
		if !nd.isHeading() {
			continue
		}
		for len(ancestors) > 0 && ancestors[len(ancestors)-1].level >= nd.level {
			ancestors = ancestors[:len(ancestors)-1]
		}

		title := nd.title
		generic := isGenericTitle(title)
		if generic && len(ancestors) > 0 {
			title = ancestors[len(ancestors)-1].title
		}
		ancestors = append(ancestors, node{level: nd.level, title: title})

		if !generic && !n.mentionsCompetition(nd.title) {
			continue
		}
		if generic && len(ancestors) == 1 {
			// A bare "League table" heading with no ancestor context still
			// qualifies on its own keywords.
			if !n.mentionsCompetition(nd.title) {
				continue
			}
		}

		tables := tablesUntilSibling(nodes, i)
		for j, table := range tables {
			sections = append(sections, Section{
				Title: title,
				ID:    nd.id,
				Table: table,
				Index: j,
				Count: len(tables),
			})
		}
	}
	return sections
}

func (n *Navigator) mentionsCompetition(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range n.rules.SectionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// tablesUntilSibling returns the tables directly under heading i, stopping
// at the next heading of any level (a deeper heading claims its own tables).
func tablesUntilSibling(nodes []node, headingIdx int) []*goquery.Selection {
	var tables []*goquery.Selection
	for _, nd := range nodes[headingIdx+1:] {
		if nd.isHeading() {
			break
		}
		tables = append(tables, nd.table)
	}
	return tables
}

var genericTitles = regexp.MustCompile(`^(final\s+)?(league\s+)?tables?$`)

// isGenericTitle reports whether a heading names no league of its own
// ("League table", "Table", "Final table") and should inherit context.
func isGenericTitle(title string) bool {
	return genericTitles.MatchString(strings.ToLower(strings.TrimSpace(title)))
}

func normalizeID(id string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(id), "_", " "))
}
