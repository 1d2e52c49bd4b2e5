package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tgreenwood/leaguetables/internal/fetch"
	"github.com/tgreenwood/leaguetables/internal/headingnav"
	"github.com/tgreenwood/leaguetables/internal/htmltable"
	"github.com/tgreenwood/leaguetables/internal/logger"
	"github.com/tgreenwood/leaguetables/internal/model"
	"github.com/tgreenwood/leaguetables/internal/outcome"
	"github.com/tgreenwood/leaguetables/internal/season"
)

// Options identify the season being extracted and its provenance.
type Options struct {
	Year      int
	SourceURL string
}

// Extractor turns fetched documents into season tier data.
type Extractor struct {
	fetcher fetch.DocumentFetcher
	rules   *outcome.Rules
	nav     *headingnav.Navigator
}

// New returns an Extractor using the given fetcher and rule tables (nil
// rules for defaults).
func New(fetcher fetch.DocumentFetcher, rules *outcome.Rules) *Extractor {
	if rules == nil {
		rules = outcome.Default()
	}
	return &Extractor{
		fetcher: fetcher,
		rules:   rules,
		nav:     headingnav.New(rules),
	}
}

// ExtractOverview walks a season-overview document: every table in the
// league-tables section becomes one tier, numbered in document order. The
// second result is the seasonInfo summary built from the union of the tier
// outcome lists.
func (e *Extractor) ExtractOverview(doc *goquery.Document, opts Options) ([]model.TierData, model.TierData) {
	sections := e.nav.FindLeagueTables(doc)
	if len(sections) == 0 {
		logger.Warn("no league-tables section found", logger.Fields{
			"season": opts.Year,
			"url":    opts.SourceURL,
		})
	}

	var tiers []model.TierData
	for _, sec := range sections {
		entries := e.parseTable(sec.Table, sec.Title)
		tiers = append(tiers, season.BuildTier(entries, season.BuildOptions{
			Season:    opts.Year,
			Slug:      SeasonSlug(opts.Year),
			SourceURL: opts.SourceURL,
			TierLabel: model.TierKey(len(tiers) + 1),
			Title:     sec.Title,
			Meta: &model.SeasonMeta{
				TableIndex: sec.Index,
				TableCount: sec.Count,
				LeagueID:   sec.ID,
			},
		}))
	}
	return tiers, e.seasonInfo(opts, tiers)
}

// defaultDivisionNames are the headings tried for a single-division season
// page, including the legacy layout that titles the table generically.
var defaultDivisionNames = []string{
	"First Division", "Premier League", "Final league table",
}

// ExtractDivision extracts the one table of a single-division season page.
// The boolean is false on a structural miss; the returned tier is then
// empty.
func (e *Extractor) ExtractDivision(doc *goquery.Document, opts Options, names ...string) (model.TierData, bool) {
	if len(names) == 0 {
		names = defaultDivisionNames
	}
	sec := e.nav.FindDivisionTable(doc, names...)
	if sec == nil {
		logger.Warn("no division table found", logger.Fields{
			"season":    opts.Year,
			"url":       opts.SourceURL,
			"divisions": names,
		})
		return e.emptyTier(opts), false
	}

	entries := e.parseTable(sec.Table, sec.Title)
	return season.BuildTier(entries, season.BuildOptions{
		Season:    opts.Year,
		Slug:      SeasonSlug(opts.Year),
		SourceURL: opts.SourceURL,
		TierLabel: model.TierKey(1),
		Title:     sec.Title,
		Meta:      &model.SeasonMeta{LeagueID: sec.ID, TableCount: 1},
	}), true
}

// parseTable normalizes one HTML table: first row is the header, remaining
// rows are fed through the row parser with any nearby legend resolved.
func (e *Extractor) parseTable(table *goquery.Selection, title string) []model.TableEntry {
	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil
	}

	parser := htmltable.NewRowParser(htmltable.HeaderCells(rows.First()), htmltable.Config{
		Rules:     e.rules,
		Legend:    e.legendNear(table),
		TopFlight: e.rules.IsTopFlight(title),
	})

	var entries []model.TableEntry
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		if entry := parser.ParseRow(htmltable.CellsFromRow(row)); entry != nil {
			entries = append(entries, *entry)
		}
	})
	return entries
}

// legendNear resolves the legend block attached to a table: its caption
// first, then the few sibling elements that follow it, stopping at the next
// table or heading.
func (e *Extractor) legendNear(table *goquery.Selection) outcome.Legend {
	if legend := e.rules.ParseLegend(table.Find("caption").Text()); legend != nil {
		return legend
	}

	var texts []string
	for sib := table.Next(); sib.Length() > 0 && len(texts) < 3; sib = sib.Next() {
		name := goquery.NodeName(sib)
		if name == "table" || isHeadingName(name) {
			break
		}
		texts = append(texts, sib.Text())
	}
	return e.rules.ParseLegend(strings.Join(texts, " "))
}

func isHeadingName(name string) bool {
	return len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6'
}

// seasonInfo unions the tiers' outcome lists into the season-wide summary.
func (e *Extractor) seasonInfo(opts Options, tiers []model.TierData) model.TierData {
	var promoted, relegated []string
	for _, td := range tiers {
		promoted = append(promoted, td.Promoted...)
		relegated = append(relegated, td.Relegated...)
	}
	return season.BuildSeasonInfo(opts.Year, promoted, relegated, SeasonSlug(opts.Year), opts.SourceURL)
}

func (e *Extractor) emptyTier(opts Options) model.TierData {
	return season.BuildTier(nil, season.BuildOptions{
		Season:    opts.Year,
		Slug:      SeasonSlug(opts.Year),
		SourceURL: opts.SourceURL,
		TierLabel: model.TierKey(1),
	})
}
