package rsssf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleBlock = `Second Division 1892-93

 Pos Team               P  W  D  L  F  A  W  D  L  F  A  Pts

  1  BLACKBURN ROVERS  30 10  5  0 30 10 10  5  0 30 10  50
  2  Small Heath       22  9  2  0 46 10  8  3  0 44 25  39 +
  3. Burton Swifts     22  7  2  2 31 17  4  3  4 23 24  27
 12  ACCRINGTON        22  2  3  6 16 27  1  3  7 12 31  12 *

+) promoted after test matches
*) relegated to the Football Alliance

Source: RSSSF archive
`

func TestParseStatWindowDetection(t *testing.T) {
	comps := New(nil).Parse(sampleBlock)
	require.Len(t, comps, 1)

	comp := comps[0]
	require.Equal(t, "Second Division 1892-93", comp.Heading)
	require.Equal(t, "Second Division", comp.League)
	require.Equal(t, 1892, comp.Year)
	require.Equal(t, "1892-93", comp.SeasonSlug)
	require.Len(t, comp.Rows, 4)

	// 12-token run: GD omitted and recomputed from the goal splits.
	rovers := comp.Rows[0]
	require.Equal(t, 1, rovers.Pos)
	require.Equal(t, "BLACKBURN ROVERS", rovers.Team)
	require.Equal(t, 50, rovers.Points)
	require.Equal(t, 10, rovers.Home.Won)
	require.Equal(t, 10, rovers.Away.Won)
	require.Equal(t, 30, rovers.Played)
	require.Equal(t, 60, rovers.GoalsFor)
	require.Equal(t, 20, rovers.GoalsAgainst)
	require.Equal(t, 40, rovers.GoalDifference)
}

func TestParseFootnoteAttachment(t *testing.T) {
	comps := New(nil).Parse(sampleBlock)
	require.Len(t, comps, 1)

	smallHeath := comps[0].Rows[1]
	require.Equal(t, []string{"+"}, smallHeath.Markers)
	require.Equal(t, "promoted after test matches", smallHeath.Notes)
	require.True(t, smallHeath.Flags.Promoted)

	accrington := comps[0].Rows[3]
	require.Equal(t, "relegated to the Football Alliance", accrington.Notes)
	require.True(t, accrington.Flags.Relegated)

	// No marker, no notes.
	require.Empty(t, comps[0].Rows[2].Notes)
}

func TestParseAllCapsStructuralFlags(t *testing.T) {
	comps := New(nil).Parse(sampleBlock)
	rows := comps[0].Rows

	// Upper-half all-caps name flags promotion even without footnote text.
	require.True(t, rows[0].Flags.Promoted, "BLACKBURN ROVERS in the top half")
	// Lower-half all-caps name flags relegation; the footnote agrees here.
	require.True(t, rows[3].Flags.Relegated, "ACCRINGTON in the bottom half")
	// Mixed-case rows get no structural flag.
	require.False(t, rows[2].Flags.Promoted)
	require.False(t, rows[2].Flags.Relegated)
}

func TestParseRowDiscardsWithoutNumericRun(t *testing.T) {
	_, ok := parseRow("4  Walsall Town Swifts  22  5  four  2  37  22  0  1  10  13  37  23")
	require.False(t, ok, "a row without a 12/13 numeric run is discarded")

	_, ok = parseRow("Source: RSSSF archive")
	require.False(t, ok)
}

func TestParseTerminatesAtTableEnd(t *testing.T) {
	text := `First Division 1894-95

 Pos Team         P  W  D  L  F  A  W  D  L  F  A  GD Pts

  1  THE WEDNESDAY 30 12  2  1 40 14  9  3  3 30 20  36  47
<hr>
  2  Stray line after rule should not be parsed 30 1 1 1 1 1 1 1 1 1 1 1 1
`
	comps := New(nil).Parse(text)
	require.Len(t, comps, 1)
	require.Len(t, comps[0].Rows, 1)

	// Full 13-token layout keeps the explicit GD column.
	row := comps[0].Rows[0]
	require.Equal(t, 36, row.GoalDifference)
	require.Equal(t, 47, row.Points)
}

func TestEntriesCanonicalizesTeamNames(t *testing.T) {
	comps := New(nil).Parse(sampleBlock)
	entries := comps[0].Entries()
	require.Len(t, entries, 4)

	require.Equal(t, "Blackburn Rovers", entries[0].Team)
	require.Equal(t, "Small Heath", entries[1].Team)
	require.True(t, entries[0].WasPromoted)
	require.NotNil(t, entries[0].GoalDifference)
	require.Equal(t, 40, *entries[0].GoalDifference)
	require.NotNil(t, entries[1].Notes)
}
