// Package fetch provides the document-fetching capability consumed by the
// extraction layer.
//
// The extractor never reaches for a process-wide client: a DocumentFetcher
// is passed in explicitly, so tests substitute a map-backed Static fetcher
// and the CLI wires the retrying HTTP client. A fetch failure is not fatal
// to a run; the extraction layer records the season as an empty placeholder
// instead.
package fetch
