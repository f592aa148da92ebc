// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package sources

import (
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/prem22k/Hack-Hunt/internal/config"
	"github.com/prem22k/Hack-Hunt/internal/models"
)

// NewMLHSource scrapes the MLH season events page.
func NewMLHSource(cfg config.BrowserSourceConfig, b Browser) Source {
	return newPageSource(models.SourceMLH, b, PageRequest{
		URL:          cfg.URL,
		WaitSelector: ".event-wrapper",
		WaitTimeout:  cfg.WaitTimeout,
		NavTimeout:   cfg.NavTimeout,
	}, extractMLH)
}

func extractMLH(doc *goquery.Document, pageURL string, now time.Time, log zerolog.Logger) []models.Hackathon {
	return eachCard(doc, ".event-wrapper", log, func(card *goquery.Selection) (models.Hackathon, bool) {
		title := text(card, ".event-name")
		link := attr(card, "a.event-link", "href")
		if title == "" || link == "" {
			return models.Hackathon{}, false
		}

		start, end, ok := ParseDateRange(text(card, ".event-date"), now)
		if !ok {
			log.Debug().Str("title", title).Msg("Unparseable event date, using now")
		}
		location := LocationOrDefault(text(card, ".event-location"))

		return models.Hackathon{
			Title:           title,
			Organizer:       "MLH",
			Description:     "Join " + title + ", an official MLH event!",
			StartDate:       start,
			EndDate:         end,
			Mode:            InferMode(location),
			IsPaid:          false,
			Skills:          []string{},
			RegistrationURL: AbsoluteURL(pageURL, link),
			Source:          models.SourceMLH,
			Location:        location,
			ImageURL:        AbsoluteURL(pageURL, attr(card, ".event-logo img", "src")),
		}, true
	})
}
