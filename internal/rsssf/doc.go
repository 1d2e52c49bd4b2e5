// Package rsssf parses the monospace preformatted league tables published in
// the RSSSF archive dialect.
//
// Rows are whitespace-tokenized; the team name boundary is recovered by
// sliding a window over the tokens for the first run of 13 (or 12, when goal
// difference is omitted) consecutive numeric columns, since team names of
// any word count precede the stats. Footnote lines keyed by marker symbols
// are re-attached to the rows carrying those markers, and all-caps team
// names are treated as structural promotion/relegation candidates
// independent of the footnote text.
package rsssf
