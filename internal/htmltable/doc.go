// Package htmltable converts raw HTML table rows into typed league-table
// entries.
//
// Column positions are never assumed: the header row is mapped through an
// alias table first, numeric cells are coerced leniently, and a notes cell
// spanning multiple rows is carried down to the rows it covers, reproducing
// the merged-cell semantics of the source tables. A row that looks like a
// repeated header is dropped rather than half-parsed.
package htmltable
