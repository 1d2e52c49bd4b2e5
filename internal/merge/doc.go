// Package merge combines independently-extracted datasets season-by-season
// and tier-by-tier.
//
// Caller-supplied input order establishes priority: the first dataset with
// real data for a tier wins, and two non-empty tiers are never reconciled
// field-by-field; sources must be supplied best-first.
// War-suspension seasons are dropped, empty seasons
// are dropped unless asked for, and the goal-difference invariant
// (GD = GF - GA) is repaired dataset-wide. Every decision is counted in a
// Report; the diagnostics are part of the contract, not incidental logging.
package merge
