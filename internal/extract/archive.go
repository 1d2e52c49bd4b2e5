package extract

import (
	"github.com/tgreenwood/leaguetables/internal/logger"
	"github.com/tgreenwood/leaguetables/internal/model"
	"github.com/tgreenwood/leaguetables/internal/rsssf"
	"github.com/tgreenwood/leaguetables/internal/season"
)

// ExtractArchive parses a fixed-width archive page: each competition block
// becomes one tier, numbered in document order. The block's own heading
// supplies the tier title and season slug where present.
func (e *Extractor) ExtractArchive(text string, opts Options) ([]model.TierData, model.TierData) {
	comps := rsssf.New(e.rules).Parse(text)
	if len(comps) == 0 {
		logger.Warn("no competition blocks found", logger.Fields{
			"season": opts.Year,
			"url":    opts.SourceURL,
		})
	}

	var tiers []model.TierData
	for _, comp := range comps {
		slug := comp.SeasonSlug
		if slug == "" {
			slug = SeasonSlug(opts.Year)
		}
		title := comp.League
		if title == "" {
			title = comp.Heading
		}
		tiers = append(tiers, season.BuildTier(comp.Entries(), season.BuildOptions{
			Season:    opts.Year,
			Slug:      slug,
			SourceURL: opts.SourceURL,
			TierLabel: model.TierKey(len(tiers) + 1),
			Title:     title,
		}))
	}
	return tiers, e.seasonInfo(opts, tiers)
}
