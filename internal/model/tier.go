package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Tier is the tagged variant over the two tier representations found in
// persisted datasets: a full TierData object, or a compact bare entry array
// (a legacy shape lacking promoted/relegated lists and metadata). The
// accessors give every call site one normalized view, so nothing outside
// this type inspects the representation.
type Tier struct {
	full    *TierData
	entries []TableEntry
}

// FullTier wraps a TierData.
func FullTier(td TierData) Tier {
	return Tier{full: &td}
}

// CompactTier wraps a bare entry list.
func CompactTier(entries []TableEntry) Tier {
	if entries == nil {
		entries = []TableEntry{}
	}
	return Tier{entries: entries}
}

// IsFull reports whether the tier carries the full TierData representation.
func (t Tier) IsFull() bool { return t.full != nil }

// Data returns the underlying TierData for a full tier, or nil for compact.
func (t Tier) Data() *TierData { return t.full }

// Table returns the ordered entry list for either representation.
func (t Tier) Table() []TableEntry {
	if t.full != nil {
		return t.full.Table
	}
	return t.entries
}

// Promoted returns the promoted team names; always empty for compact tiers.
func (t Tier) Promoted() []string {
	if t.full != nil {
		return t.full.Promoted
	}
	return nil
}

// Relegated returns the relegated team names; always empty for compact tiers.
func (t Tier) Relegated() []string {
	if t.full != nil {
		return t.full.Relegated
	}
	return nil
}

// HasData reports tier richness for either representation.
func (t Tier) HasData() bool {
	if t.full != nil {
		return t.full.HasData()
	}
	return len(t.entries) > 0
}

// WithTable returns a copy of the tier with its table replaced. Used by the
// merger's goal-difference repair, which rewrites rows but must preserve the
// original representation.
func (t Tier) WithTable(entries []TableEntry) Tier {
	if t.full != nil {
		td := *t.full
		td.Table = entries
		return FullTier(td)
	}
	return CompactTier(entries)
}

// MarshalJSON encodes compact tiers as a bare array and full tiers as an
// object, preserving the wire shapes consumers already depend on.
func (t Tier) MarshalJSON() ([]byte, error) {
	if t.full != nil {
		return json.Marshal(t.full)
	}
	return json.Marshal(t.entries)
}

// UnmarshalJSON sniffs the first byte to pick the representation.
func (t *Tier) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return fmt.Errorf("empty tier value")
	}
	switch trimmed[0] {
	case '[':
		var entries []TableEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("decoding compact tier: %w", err)
		}
		*t = CompactTier(entries)
	case '{':
		var td TierData
		if err := json.Unmarshal(data, &td); err != nil {
			return fmt.Errorf("decoding tier object: %w", err)
		}
		*t = FullTier(td)
	default:
		return fmt.Errorf("tier value must be an object or array, got %q", trimmed[0])
	}
	return nil
}
