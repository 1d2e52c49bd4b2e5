// Package headingnav locates league-table regions inside a document's
// heading hierarchy.
//
// Season pages have no stable structure: the league-tables section may carry
// an explicit heading id, a close-but-not-exact heading text, or nothing
// identifiable at all, in which case a generic keyword scan over every
// heading takes over. Traversal respects heading levels, so a deeper
// subsection never terminates the scan for siblings, and a nested heading
// named just "League table" inherits its nearest ancestor's league title.
//
// Not finding a section is a normal outcome (layouts vary by era) and yields
// an empty result, never an error.
package headingnav
