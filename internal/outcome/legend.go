package outcome

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LegendEntry is the outcome meaning of one legend symbol.
type LegendEntry struct {
	Promoted  bool
	Relegated bool
}

// Legend maps a case-normalized symbol to its meaning.
type Legend map[string]LegendEntry

// Flags returns the additive flag set for a list of symbols found on a team
// cell. Unknown symbols contribute nothing.
func (l Legend) Flags(symbols []string) Flags {
	var f Flags
	for _, sym := range symbols {
		entry, ok := l[normalizeSymbol(sym)]
		if !ok {
			continue
		}
		f.Promoted = f.Promoted || entry.Promoted
		f.Relegated = f.Relegated || entry.Relegated
	}
	return f
}

var (
	legendGroup = regexp.MustCompile(`\(([^)]{1,24})\)`)
	codeSplit   = regexp.MustCompile(`\s*(?:,|/|\band\b)\s*`)
	symbolToken = regexp.MustCompile(`\(([A-Za-z0-9]{1,3})\)`)
)

// ParseLegend parses a free-text legend block such as
//
//	(C) Champions; (P) Promoted; (R) Relegated
//
// into a symbol map, or nil if no legend entries are found. The descriptor
// for each symbol group runs to the next "(" and is cut at the first ";" or
// ",". Multi-code groups like "(P1, P2) Promoted" are split into individual
// codes sharing one descriptor.
func (r *Rules) ParseLegend(text string) Legend {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	legend := make(Legend)
	groups := legendGroup.FindAllStringSubmatchIndex(text, -1)
	for i, g := range groups {
		codes := splitCodes(text[g[2]:g[3]])
		if len(codes) == 0 {
			continue
		}

		// Descriptor: after the closing paren, up to the next group.
		end := len(text)
		if i+1 < len(groups) {
			end = groups[i+1][0]
		}
		descriptor := text[g[1]:end]
		if cut := strings.IndexAny(descriptor, ";,"); cut >= 0 {
			descriptor = descriptor[:cut]
		}
		descriptor = strings.ToLower(strings.TrimSpace(descriptor))
		if descriptor == "" {
			continue
		}

		entry := LegendEntry{
			Promoted:  containsAny(descriptor, r.LegendPromotedTerms),
			Relegated: containsAny(descriptor, r.LegendRelegatedTerms),
		}
		for _, code := range codes {
			legend[code] = entry
		}
	}

	if len(legend) == 0 {
		return nil
	}
	return legend
}

// SymbolsFromCell extracts the legend symbols attached to a team cell:
// parenthesized short alphanumeric tokens in the cell's text, including text
// inside descendant nodes such as <sup> footnote wrappers.
func SymbolsFromCell(sel *goquery.Selection) []string {
	return SymbolsFromText(sel.Text())
}

// SymbolsFromText extracts legend symbols from already-flattened cell text.
func SymbolsFromText(text string) []string {
	matches := symbolToken.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	symbols := make([]string, 0, len(matches))
	for _, m := range matches {
		symbols = append(symbols, normalizeSymbol(m[1]))
	}
	return symbols
}

func splitCodes(group string) []string {
	parts := codeSplit.Split(group, -1)
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || len(p) > 3 || !alphanumeric(p) {
			continue
		}
		codes = append(codes, normalizeSymbol(p))
	}
	return codes
}

func alphanumeric(s string) bool {
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
