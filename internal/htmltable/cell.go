package htmltable

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Cell is one table cell's flattened view: its text (descendant nodes
// included), its rowspan, and the legend symbols attached to it.
type Cell struct {
	Text    string
	RowSpan int
}

// CellsFromRow flattens the th/td cells of a table row.
func CellsFromRow(row *goquery.Selection) []Cell {
	var cells []Cell
	row.Find("th, td").Each(func(_ int, sel *goquery.Selection) {
		span := 1
		if v, ok := sel.Attr("rowspan"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 1 {
				span = n
			}
		}
		cells = append(cells, Cell{
			Text:    nodeText(sel),
			RowSpan: span,
		})
	})
	return cells
}

// HeaderCells returns the trimmed text of a header row's cells.
func HeaderCells(row *goquery.Selection) []string {
	cells := CellsFromRow(row)
	texts := make([]string, len(cells))
	for i, c := range cells {
		texts[i] = c.Text
	}
	return texts
}

// nodeText flattens a selection's text nodes, collapsing runs of whitespace.
// Walking the nodes directly rather than using Selection.Text keeps
// non-breaking spaces and soft hyphens out of team names.
func nodeText(sel *goquery.Selection) string {
	var buf bytes.Buffer
	for _, n := range sel.Nodes {
		writeText(n, &buf)
	}
	s := strings.Map(func(r rune) rune {
		switch r {
		case '\u00a0': // non-breaking space
			return ' '
		case '\u00ad': // soft hyphen
			return -1
		}
		return r
	}, buf.String())
	return strings.TrimSpace(innerWhitespace.ReplaceAllString(s, " "))
}

func writeText(n *html.Node, buf *bytes.Buffer) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		writeText(child, buf)
	}
}

var (
	citationRef = regexp.MustCompile(`\[[a-z0-9 ]{1,4}\]`)
	symbolRef   = regexp.MustCompile(`\(\s*[A-Za-z0-9]{1,3}\s*\)`)
)

// cleanTeamName strips citation references ("[1]", "[a]") and legend symbol
// tokens ("(C)") from a team cell's text.
func cleanTeamName(text string) string {
	s := citationRef.ReplaceAllString(text, "")
	s = symbolRef.ReplaceAllString(s, "")
	return strings.TrimSpace(innerWhitespace.ReplaceAllString(s, " "))
}

var nonNumericChars = regexp.MustCompile(`[^0-9.\-]`)

// coerceNumber strips everything outside [-0-9.] and parses what remains.
// Returns false when the cell yields no finite number.
func coerceNumber(text string) (float64, bool) {
	s := nonNumericChars.ReplaceAllString(text, "")
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// coerceInt is coerceNumber truncated to an int.
func coerceInt(text string) (int, bool) {
	f, ok := coerceNumber(text)
	if !ok {
		return 0, false
	}
	return int(f), true
}
