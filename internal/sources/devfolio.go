// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package sources

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/prem22k/Hack-Hunt/internal/config"
	"github.com/prem22k/Hack-Hunt/internal/models"
)

// NewDevfolioSource scrapes the Devfolio hackathon listing. The page has no
// stable card markup, so cards are found from their outbound subdomain links.
func NewDevfolioSource(cfg config.BrowserSourceConfig, b Browser) Source {
	return newPageSource(models.SourceDevfolio, b, PageRequest{
		URL:          cfg.URL,
		WaitSelector: `div[role="button"], a[href*="devfolio.co"]`,
		WaitTimeout:  cfg.WaitTimeout,
		NavTimeout:   cfg.NavTimeout,
	}, extractDevfolio)
}

const (
	devfolioMaxDepth     = 5
	devfolioMinCardChars = 20
)

var (
	monthAbbrev      = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)`)
	digitPattern     = regexp.MustCompile(`\d`)
	datePrefixes     = regexp.MustCompile(`(?i)apply by|starts|ends`)
	attendancePhrase = regexp.MustCompile(`(?i)online|hybrid|in-person`)
)

func isDevfolioEventLink(href string) bool {
	return strings.Contains(href, ".devfolio.co") &&
		!strings.Contains(href, "devfolio.co/hackathons") &&
		!strings.Contains(href, "devfolio.co/blog")
}

// cardFor walks up from a link to the nearest ancestor with enough text to
// be a listing card.
func cardFor(link *goquery.Selection) *goquery.Selection {
	container := link.Parent()
	for depth := 0; depth < devfolioMaxDepth && container.Length() > 0; depth++ {
		if len(CollapseSpace(container.Text())) > devfolioMinCardChars {
			return container
		}
		container = container.Parent()
	}
	return container
}

func extractDevfolio(doc *goquery.Document, pageURL string, now time.Time, log zerolog.Logger) []models.Hackathon {
	var out []models.Hackathon
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(i int, link *goquery.Selection) {
		defer func() {
			if r := recover(); r != nil {
				log.Warn().Int("link", i).Interface("panic", r).Msg("Skipping malformed card")
			}
		}()

		href, _ := link.Attr("href")
		href = AbsoluteURL(pageURL, href)
		if !isDevfolioEventLink(href) || seen[href] {
			return
		}
		card := cardFor(link)
		if card.Length() == 0 {
			return
		}
		seen[href] = true

		lines := textLines(card)
		if len(lines) == 0 {
			return
		}
		title := lines[0]

		var dateLine string
		location := DefaultLocation
		foundLocation := false
		for _, l := range lines {
			if dateLine == "" && monthAbbrev.MatchString(l) && digitPattern.MatchString(l) {
				dateLine = l
			}
			if !foundLocation && attendancePhrase.MatchString(l) {
				location, foundLocation = l, true
			}
		}
		start, end, _ := ParseDateRange(datePrefixes.ReplaceAllString(dateLine, ""), now)

		h := models.Hackathon{
			Title:           title,
			Organizer:       "Devfolio",
			Description:     "Check out " + title + " on Devfolio!",
			StartDate:       start,
			EndDate:         end,
			Mode:            InferMode(location),
			IsPaid:          false,
			Skills:          []string{},
			RegistrationURL: href,
			Source:          models.SourceDevfolio,
			Location:        location,
			Prize:           "See details",
		}
		if Finalize(&h) {
			out = append(out, h)
		}
	})
	return out
}
