package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ExtractResult summarizes a completed extraction run.
type ExtractResult struct {
	ExtractedAt time.Time `json:"extracted_at"`
	Source      string    `json:"source"`
	From        int       `json:"from"`
	To          int       `json:"to"`
	Seasons     int       `json:"seasons"`
	Dataset     string    `json:"dataset"`
}

// WriteExtractResult writes the run summary in the specified format.
func WriteExtractResult(w io.Writer, result *ExtractResult, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}
	fmt.Fprintf(w, "Extracted seasons %d-%d from %s.\n", result.From, result.To, result.Source)
	fmt.Fprintf(w, "Dataset now holds %d seasons: %s\n", result.Seasons, result.Dataset)
	return nil
}

// Renderer is any report that can draw itself as human-readable text. Both
// the merge and verify reports satisfy it and are also JSON-encodable.
type Renderer interface {
	Render(w io.Writer)
}

// WriteReport writes a diagnostics report in the specified format.
func WriteReport(w io.Writer, report Renderer, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, report)
	}
	report.Render(w)
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
