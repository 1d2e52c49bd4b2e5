// Package cli implements the command-line interface for leaguetables.
//
// The cli package provides the Cobra-based CLI with commands for extracting
// season tables from the supported sources, merging datasets in priority
// order, and verifying dataset invariants. It coordinates the extract,
// merge, verify and storage packages and formats results as text or JSON.
package cli
