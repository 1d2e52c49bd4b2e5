package outcome

import "strings"

// Flags are the five derivable outcome booleans for one table row.
type Flags struct {
	Promoted  bool
	Relegated bool
	Expansion bool
	ReElected bool
	Reprieved bool
}

// Or returns the additive union of two flag sets. Used to apply
// legend-derived flags on top of notes-derived ones: a true is never
// cleared.
func (f Flags) Or(other Flags) Flags {
	return Flags{
		Promoted:  f.Promoted || other.Promoted,
		Relegated: f.Relegated || other.Relegated,
		Expansion: f.Expansion || other.Expansion,
		ReElected: f.ReElected || other.ReElected,
		Reprieved: f.Reprieved || other.Reprieved,
	}
}

// Classify derives outcome flags from free-text notes. topFlight suppresses
// the promotion check: a top-flight team cannot be promoted, so "promot"
// text in such a section is noise (e.g. "failed to gain promotion" quotes in
// prose cells). Empty notes yield zero flags.
func (r *Rules) Classify(notes string, topFlight bool) Flags {
	if strings.TrimSpace(notes) == "" {
		return Flags{}
	}
	lower := strings.ToLower(notes)

	var f Flags
	f.Relegated = containsAny(lower, r.RelegatedTerms)
	if !topFlight {
		f.Promoted = containsAny(lower, r.PromotedTerms)
	}
	f.Expansion = containsAny(lower, r.ExpansionTerms)
	f.ReElected = containsAny(lower, r.ReElectedTerms)
	f.Reprieved = r.reprieved.MatchString(lower)
	return f
}

// IsTopFlight reports whether a section title names the top division.
// Deliberately a loose keyword test; callers needing different behavior
// override TopFlightTitles rather than this logic.
func (r *Rules) IsTopFlight(title string) bool {
	lower := strings.ToLower(title)
	return containsAny(lower, r.TopFlightTitles)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
