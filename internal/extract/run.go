package extract

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tgreenwood/leaguetables/internal/logger"
	"github.com/tgreenwood/leaguetables/internal/model"
	"github.com/tgreenwood/leaguetables/internal/season"
)

// Source selects the document dialect for a run.
type Source string

const (
	SourceOverview Source = "overview"
	SourceDivision Source = "division"
	SourceRSSSF    Source = "rsssf"
)

// ParseSource validates a source name from the command line.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceOverview, SourceDivision, SourceRSSSF:
		return Source(s), nil
	}
	return "", fmt.Errorf("unknown source %q (want overview, division or rsssf)", s)
}

// RunOptions configure a multi-season extraction run.
type RunOptions struct {
	Source Source
	From   int
	To     int
	// URL overrides the per-year document location; nil uses the source's
	// default convention.
	URL func(year int) string
	// Checkpoint is invoked after each season is written into the dataset,
	// so an interrupted run loses at most one season.
	Checkpoint func(ds *model.Dataset) error
}

// Run extracts seasons From..To into the dataset, one document per season,
// in ascending year order. A season whose document cannot be fetched is
// recorded as an empty tier1 placeholder and the run continues; only
// checkpoint failures and context cancellation abort it.
func (e *Extractor) Run(ctx context.Context, ds *model.Dataset, opts RunOptions) error {
	urlFor := opts.URL
	if urlFor == nil {
		urlFor = defaultURL(opts.Source)
	}

	for year := opts.From; year <= opts.To; year++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		docURL := urlFor(year)
		seasonOpts := Options{Year: year, SourceURL: docURL}

		body, err := e.fetcher.Fetch(ctx, docURL)
		if err != nil {
			logger.Warn("document unavailable, recording placeholder", logger.Fields{
				"season": year,
				"url":    docURL,
				"reason": err.Error(),
			})
			season.AddSeason(ds, year, []model.TierData{e.emptyTier(seasonOpts)}, nil)
		} else {
			tiers, info, err := e.extractBody(body, seasonOpts, opts.Source)
			if err != nil {
				return fmt.Errorf("season %d: %w", year, err)
			}
			season.AddSeason(ds, year, tiers, &info)
			logger.Info("season extracted", logger.Fields{
				"season": year,
				"tiers":  len(tiers),
			})
		}

		if opts.Checkpoint != nil {
			if err := opts.Checkpoint(ds); err != nil {
				return fmt.Errorf("checkpointing season %d: %w", year, err)
			}
		}
	}
	return nil
}

func (e *Extractor) extractBody(body string, opts Options, source Source) ([]model.TierData, model.TierData, error) {
	if source == SourceRSSSF {
		tiers, info := e.ExtractArchive(body, opts)
		return tiers, info, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, model.TierData{}, fmt.Errorf("parsing document: %w", err)
	}

	if source == SourceDivision {
		tier, _ := e.ExtractDivision(doc, opts)
		tiers := []model.TierData{tier}
		return tiers, e.seasonInfo(opts, tiers), nil
	}
	tiers, info := e.ExtractOverview(doc, opts)
	return tiers, info, nil
}

func defaultURL(source Source) func(int) string {
	switch source {
	case SourceDivision:
		return DivisionURL
	case SourceRSSSF:
		return RSSSFURL
	default:
		return OverviewURL
	}
}

// SeasonSlug renders a season start year as the conventional cross-year
// slug, e.g. 1950 -> "1950-51".
func SeasonSlug(year int) string {
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// OverviewURL is the default season-overview page location.
func OverviewURL(year int) string {
	return "https://en.wikipedia.org/wiki/" +
		url.PathEscape(fmt.Sprintf("%d–%02d_in_English_football", year, (year+1)%100))
}

// DivisionURL is the default single-division season page location.
func DivisionURL(year int) string {
	return "https://en.wikipedia.org/wiki/" +
		url.PathEscape(fmt.Sprintf("%d–%02d_Football_League", year, (year+1)%100))
}

// RSSSFURL is the default fixed-width archive location.
func RSSSFURL(year int) string {
	return fmt.Sprintf("https://www.rsssf.org/tablese/eng%d.html", year)
}
