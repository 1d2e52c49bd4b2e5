// Package extract composes the document navigators and row parsers into
// season-level extraction: fetch a season's document, locate its tables,
// normalize the rows and assemble tiers plus the seasonInfo summary.
//
// Three source dialects are supported: season-overview pages (heading
// hierarchy with a league-tables section), single-division season pages
// (named division heading, nearest following table), and fixed-width text
// archives. Structural misses and fetch failures never abort a run; they
// yield empty placeholder seasons and a warning.
package extract
