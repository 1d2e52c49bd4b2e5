// Package verify runs post-extraction invariant checks over a dataset.
//
// It detects what the extraction core tolerates: goal-difference mismatches,
// duplicate positions or team names within a tier, and promoted/relegated
// lists that disagree with the row-level flags. Violations are reported,
// never auto-corrected — repair is the merger's job, and only for goal
// difference.
package verify
