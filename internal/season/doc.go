// Package season assembles normalized per-season tier records from parsed
// rows, deriving the promoted/relegated name lists and building the
// seasonInfo pseudo-tier that separates season-wide outcome summaries from
// individual tier tables.
package season
