package headingnav

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// node is one entry in the document-order flattening of the elements the
// navigator cares about: headings (levels 2-5) and tables.
type node struct {
	level int // 2..5 for headings, 0 for tables
	title string
	id    string
	table *goquery.Selection
}

func (n node) isHeading() bool { return n.level > 0 }

// flatten walks the document once and returns headings and tables in
// document order. Working over this list instead of sibling pointers keeps
// the traversal immune to the wrapper divs some page generations insert
// between a heading and its table.
func flatten(doc *goquery.Document) []node {
	var nodes []node
	doc.Find("h2, h3, h4, h5, table").Each(func(_ int, sel *goquery.Selection) {
		name := goquery.NodeName(sel)
		if name == "table" {
			// Layout tables nested inside a data table belong to the parent.
			if sel.ParentsFiltered("table").Length() > 0 {
				return
			}
			nodes = append(nodes, node{table: sel})
			return
		}
		nodes = append(nodes, node{
			level: int(name[1] - '0'),
			title: headingText(sel),
			id:    headingID(sel),
		})
	})
	return nodes
}

var editSuffix = regexp.MustCompile(`\[[^\]]*\]`)
var headingWhitespace = regexp.MustCompile(`\s+`)

// headingText returns a heading's visible text with "[edit]"-style bracketed
// affordances removed.
func headingText(sel *goquery.Selection) string {
	text := editSuffix.ReplaceAllString(sel.Text(), "")
	return strings.TrimSpace(headingWhitespace.ReplaceAllString(text, " "))
}

// headingID returns the heading's own id, or the id of an inner headline
// span (the convention on older page generations).
func headingID(sel *goquery.Selection) string {
	if id, ok := sel.Attr("id"); ok && id != "" {
		return id
	}
	if span := sel.Find("span.mw-headline").First(); span.Length() > 0 {
		if id, ok := span.Attr("id"); ok {
			return id
		}
	}
	return ""
}

// FindDivisionTable locates a single-division table: the first heading or
// named anchor matching one of names ("First Division", "Second Division",
// or the legacy "Final league table"), then the nearest subsequent table.
// Returns nil when no name matches — an expected outcome on layouts that
// predate or postdate the convention.
func (n *Navigator) FindDivisionTable(doc *goquery.Document, names ...string) *Section {
	nodes := flatten(doc)

	// Named anchors don't appear in the flattening; resolve them to the
	// table that follows in document order via their parent heading instead.
	matches := func(nd node) bool {
		for _, name := range names {
			want := strings.ToLower(name)
			if strings.Contains(strings.ToLower(nd.title), want) ||
				normalizeID(nd.id) == want ||
				strings.Contains(normalizeID(nd.id), want) {
				return true
			}
		}
		return false
	}

	for i, nd := range nodes {
		if !nd.isHeading() || !matches(nd) {
			continue
		}
		for _, next := range nodes[i+1:] {
			if !next.isHeading() {
				return &Section{Title: nd.title, ID: nd.id, Table: next.table, Index: 0, Count: 1}
			}
			// Any intervening heading of equal-or-higher level means the
			// division section has no table.
			if next.level <= nd.level {
				break
			}
		}
	}
	return nil
}
