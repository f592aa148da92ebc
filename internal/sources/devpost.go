// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package sources

import (
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/prem22k/Hack-Hunt/internal/config"
	"github.com/prem22k/Hack-Hunt/internal/models"
)

// NewDevpostSource scrapes the Devpost hackathon listing.
func NewDevpostSource(cfg config.BrowserSourceConfig, b Browser) Source {
	return newPageSource(models.SourceDevpost, b, PageRequest{
		URL:          cfg.URL,
		WaitSelector: ".hackathon-tile",
		WaitTimeout:  cfg.WaitTimeout,
		NavTimeout:   cfg.NavTimeout,
	}, extractDevpost)
}

var cssURLPattern = regexp.MustCompile(`url\(\s*['"]?([^'")]+)['"]?\s*\)`)

func extractDevpost(doc *goquery.Document, pageURL string, now time.Time, log zerolog.Logger) []models.Hackathon {
	return eachCard(doc, ".hackathon-tile", log, func(tile *goquery.Selection) (models.Hackathon, bool) {
		title := text(tile, ".main-content h3")
		link := attr(tile, "a.tile-anchor", "href")
		if title == "" || link == "" {
			return models.Hackathon{}, false
		}

		start, end, _ := ParseDateRange(text(tile, ".submission-period"), now)
		location := LocationOrDefault(text(tile, ".info .location"))

		image := attr(tile, ".tile-img", "src")
		if image == "" {
			// Some tiles only carry a CSS background image.
			style := attr(tile, ".hackathon-tile-background", "style")
			if m := cssURLPattern.FindStringSubmatch(style); m != nil {
				image = m[1]
			}
		}

		return models.Hackathon{
			Title:           title,
			Organizer:       "Devpost",
			Description:     "Check out " + title + " on Devpost!",
			StartDate:       start,
			EndDate:         end,
			Mode:            InferMode(location),
			IsPaid:          false,
			Skills:          []string{},
			RegistrationURL: AbsoluteURL(pageURL, link),
			Source:          models.SourceDevpost,
			Location:        location,
			Prize:           text(tile, ".prize-amount"),
			ImageURL:        AbsoluteURL(pageURL, image),
		}, true
	})
}
