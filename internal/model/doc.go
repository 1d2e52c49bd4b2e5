// Package model defines the canonical per-season league-table schema shared
// by every extraction dialect and by the merger.
//
// The root Dataset maps stringified season start years ("1950" for 1950-51)
// to SeasonData, which maps tier keys ("tier1", "tier2", ..., plus the
// "seasonInfo" pseudo-tier) to a Tier. A Tier is a tagged variant: either a
// bare ordered entry list (the compact legacy representation) or a full
// TierData carrying promoted/relegated lists and provenance metadata. Both
// encode to the JSON shapes downstream consumers expect.
package model
