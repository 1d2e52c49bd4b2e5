package htmltable

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/tgreenwood/leaguetables/internal/outcome"
)

func cells(texts ...string) []Cell {
	out := make([]Cell, len(texts))
	for i, t := range texts {
		out[i] = Cell{Text: t, RowSpan: 1}
	}
	return out
}

var standardHeader = []string{"Pos", "Team", "Pld", "W", "D", "L", "GF", "GA", "GD", "Pts", "Notes"}

func TestParseRowRelegationNotes(t *testing.T) {
	p := NewRowParser(standardHeader, Config{})

	entry := p.ParseRow(cells("22", "Everton", "42", "9", "14", "19", "48", "86", "-38", "32", "Relegated to the Second Division"))
	require.NotNil(t, entry)

	require.Equal(t, 22, entry.Pos)
	require.Equal(t, "Everton", entry.Team)
	require.Equal(t, 32, entry.Points)
	require.NotNil(t, entry.GoalDifference)
	require.Equal(t, -38, *entry.GoalDifference)
	require.True(t, entry.WasRelegated)
	require.False(t, entry.WasPromoted)
	require.NotNil(t, entry.Notes)
	require.Equal(t, "Relegated to the Second Division", *entry.Notes)
}

func TestParseRowLegendPrecedence(t *testing.T) {
	rules := outcome.Default()
	legend := rules.ParseLegend("(P) Promoted; (R) Relegated")

	p := NewRowParser(standardHeader, Config{Rules: rules, Legend: legend})

	// Notes say nothing about promotion; the legend symbol carries it.
	entry := p.ParseRow(cells("2", "Sheffield United (P)", "42", "26", "8", "8", "92", "49", "43", "60", "Runners-up"))
	require.NotNil(t, entry)
	require.Equal(t, "Sheffield United", entry.Team)
	require.True(t, entry.WasPromoted)
	require.False(t, entry.WasRelegated)

	// A legend without the symbol cannot clear a notes-derived flag.
	entry = p.ParseRow(cells("21", "Leyton Orient", "42", "9", "12", "21", "51", "81", "-30", "30", "Relegated"))
	require.NotNil(t, entry)
	require.True(t, entry.WasRelegated)
}

func TestParseRowTopFlightSuppression(t *testing.T) {
	p := NewRowParser(standardHeader, Config{TopFlight: true})

	entry := p.ParseRow(cells("5", "Newcastle United", "42", "22", "7", "13", "85", "63", "22", "51", "Promoted the previous season"))
	require.NotNil(t, entry)
	require.False(t, entry.WasPromoted, "promotion text in a top-flight table is noise")
}

func TestParseRowRejections(t *testing.T) {
	p := NewRowParser(standardHeader, Config{})

	t.Run("repeated header", func(t *testing.T) {
		if got := p.ParseRow(cells("Pos", "Team", "Pld", "W", "D", "L", "GF", "GA", "GD", "Pts", "Notes")); got != nil {
			t.Errorf("repeated header should be rejected, got %+v", got)
		}
	})

	t.Run("short row", func(t *testing.T) {
		if got := p.ParseRow(cells("Source:", "rsssf.org")); got != nil {
			t.Error("short row should be rejected")
		}
	})

	t.Run("missing team name", func(t *testing.T) {
		if got := p.ParseRow(cells("3", "", "42", "20", "10", "12", "76", "53", "23", "50", "")); got != nil {
			t.Error("row without a team name should be rejected")
		}
	})

	t.Run("missing position", func(t *testing.T) {
		if got := p.ParseRow(cells("—", "Arsenal", "42", "20", "10", "12", "76", "53", "23", "50", "")); got != nil {
			t.Error("row without a position should be rejected")
		}
	})
}

func TestParseRowCoercionFallback(t *testing.T) {
	p := NewRowParser(standardHeader, Config{})

	// An unparseable stat zeroes the field instead of dropping the row.
	entry := p.ParseRow(cells("4", "Aston Villa", "42", "?", "10", "12", "n/a", "53", "", "50", ""))
	require.NotNil(t, entry)
	require.Equal(t, 0, entry.Won)
	require.Equal(t, 0, entry.GoalsFor)
	require.Nil(t, entry.GoalDifference)
	require.Equal(t, 50, entry.Points)
}

func TestParseRowRowspanNotesCarry(t *testing.T) {
	p := NewRowParser(standardHeader, Config{})

	// First relegated row carries a rowspan=2 notes cell.
	first := []Cell{
		{Text: "21", RowSpan: 1}, {Text: "Notts County", RowSpan: 1},
		{Text: "42", RowSpan: 1}, {Text: "10", RowSpan: 1}, {Text: "10", RowSpan: 1},
		{Text: "22", RowSpan: 1}, {Text: "48", RowSpan: 1}, {Text: "73", RowSpan: 1},
		{Text: "-25", RowSpan: 1}, {Text: "30", RowSpan: 1},
		{Text: "Relegated to the Second Division", RowSpan: 2},
	}
	entry := p.ParseRow(first)
	require.NotNil(t, entry)
	require.True(t, entry.WasRelegated)

	// Second row has no notes cell of its own: it inherits the carried text.
	second := cells("22", "Glossop", "42", "8", "10", "24", "42", "87", "-45", "26")
	entry = p.ParseRow(second)
	require.NotNil(t, entry)
	require.NotNil(t, entry.Notes)
	require.Equal(t, "Relegated to the Second Division", *entry.Notes)
	require.True(t, entry.WasRelegated)

	// The carry is exhausted after the span.
	third := cells("23", "Burslem Port Vale", "42", "8", "8", "26", "39", "89", "-50", "24")
	entry = p.ParseRow(third)
	require.NotNil(t, entry)
	require.Nil(t, entry.Notes)
	require.False(t, entry.WasRelegated)
}

func TestMapHeadersAliases(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		field  string
		want   int
	}{
		{"short stat names", []string{"Pos", "Club", "P", "W", "D", "L", "F", "A", "Pts"}, "goalsFor", 6},
		{"periods stripped", []string{"Pos.", "Team", "Pld.", "W", "D", "L", "GF", "GA", "Pts"}, "played", 2},
		{"goal average era", []string{"Pos", "Team", "Pld", "W", "D", "L", "GF", "GA", "GAvg", "Pts"}, "goalAverage", 8},
		{"qualification column is notes", []string{"Pos", "Team", "Pld", "Pts", "Qualification or relegation"}, "notes", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := mapHeaders(tt.header)
			if got := cm.index(tt.field); got != tt.want {
				t.Errorf("index(%s) = %d, want %d", tt.field, got, tt.want)
			}
		})
	}

	t.Run("notes defaults to last column", func(t *testing.T) {
		cm := mapHeaders([]string{"Pos", "Team", "Pld", "Pts", "Remarks about relegation"})
		if cm.index("notes") != 4 {
			t.Error("last column should default to notes")
		}
	})
}

func TestCellsFromRow(t *testing.T) {
	const row = `<table><tr>
		<th scope="row">Blackpool<sup>(C)</sup>[1]</th>
		<td>42</td>
		<td rowspan="2">Promoted to the First Division</td>
	</tr></table>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(row))
	require.NoError(t, err)

	got := CellsFromRow(doc.Find("tr").First())
	require.Len(t, got, 3)
	require.Equal(t, "Blackpool(C)[1]", got[0].Text)
	require.Equal(t, 1, got[0].RowSpan)
	require.Equal(t, 2, got[2].RowSpan)

	require.Equal(t, "Blackpool", cleanTeamName(got[0].Text))
	require.Equal(t, []string{"C"}, outcome.SymbolsFromText(got[0].Text))
}
