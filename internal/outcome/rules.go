package outcome

import (
	"fmt"
	"os"
	"regexp"

	"github.com/titanous/json5"
)

// Rules holds every keyword and pattern table used by the classifier, the
// legend resolver and the heading navigator. Loadable from JSON5 so the
// heuristics can be corrected without a code change.
type Rules struct {
	// Notes-text substrings (matched case-insensitively).
	RelegatedTerms []string `json:"relegatedTerms"`
	PromotedTerms  []string `json:"promotedTerms"`
	ExpansionTerms []string `json:"expansionTerms"`
	ReElectedTerms []string `json:"reElectedTerms"`

	// ReprievedPattern is a regular expression matched against notes text.
	ReprievedPattern string `json:"reprievedPattern"`

	// Legend descriptor substrings.
	LegendPromotedTerms  []string `json:"legendPromotedTerms"`
	LegendRelegatedTerms []string `json:"legendRelegatedTerms"`

	// TopFlightTitles identify sections where a "promoted" note is noise:
	// a top-flight team cannot be promoted.
	TopFlightTitles []string `json:"topFlightTitles"`

	// SectionPhrases are scored against heading text when locating the
	// league-tables section; SectionKeywords drive the generic fallback scan.
	SectionPhrases  []string `json:"sectionPhrases"`
	SectionKeywords []string `json:"sectionKeywords"`

	reprieved *regexp.Regexp
}

// Default returns the built-in rule tables.
func Default() *Rules {
	r := &Rules{
		RelegatedTerms: []string{"relegat", "demoted to the"},
		PromotedTerms:  []string{"promot"},
		ExpansionTerms: []string{"expansion", "new club", "admitted", "joined league", "joined the league"},
		ReElectedTerms: []string{"re-elected", "reelected"},

		ReprievedPattern: `reprieved(\s+from\s+re-?election)?`,

		LegendPromotedTerms:  []string{"promot", "play-off", "playoff"},
		LegendRelegatedTerms: []string{"relegat", "demot"},

		TopFlightTitles: []string{
			"premier league", "first division", "division one", "top flight",
		},

		SectionPhrases: []string{
			"league tables", "final standings", "league season",
			"final league table", "final league tables",
		},
		SectionKeywords: []string{
			"league", "division", "championship", "premier", "conference",
			"national league", "football league",
		},
	}
	if err := r.compile(); err != nil {
		// The built-in pattern is a constant; a failure here is a bug.
		panic(err)
	}
	return r
}

// Load reads a JSON5 rules file, filling any omitted table from the
// defaults.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	r := Default()
	if err := json5.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}
	if err := r.compile(); err != nil {
		return nil, fmt.Errorf("invalid rules file: %w", err)
	}
	return r, nil
}

func (r *Rules) compile() error {
	re, err := regexp.Compile(`(?i)` + r.ReprievedPattern)
	if err != nil {
		return fmt.Errorf("compiling reprieved pattern: %w", err)
	}
	r.reprieved = re
	return nil
}
