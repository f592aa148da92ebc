// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/models"
)

// extractFunc turns a rendered document into canonical records.
type extractFunc func(doc *goquery.Document, pageURL string, now time.Time, log zerolog.Logger) []models.Hackathon

// pageSource is a Source backed by a rendered web page.
type pageSource struct {
	name    models.Source
	browser Browser
	req     PageRequest
	extract extractFunc
	now     func() time.Time
	log     zerolog.Logger
}

func newPageSource(name models.Source, b Browser, req PageRequest, extract extractFunc) *pageSource {
	return &pageSource{
		name:    name,
		browser: b,
		req:     req,
		extract: extract,
		now:     time.Now,
		log:     logging.WithComponent("source." + string(name)),
	}
}

// Name implements Source.
func (p *pageSource) Name() models.Source { return p.name }

// Fetch implements Source.
func (p *pageSource) Fetch(ctx context.Context) ([]models.Hackathon, error) {
	html, err := p.browser.Render(ctx, p.req)
	if err != nil {
		return []models.Hackathon{}, fmt.Errorf("render %s: %w", p.name, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return []models.Hackathon{}, fmt.Errorf("parse %s page: %w", p.name, err)
	}

	out := p.extract(doc, p.req.URL, p.now(), p.log)
	if len(out) == 0 {
		p.log.Info().Str("url", p.req.URL).Msg("No listings found, page layout may have changed")
		return []models.Hackathon{}, nil
	}
	p.log.Info().Int("count", len(out)).Msg("Extracted listings")
	return out, nil
}

// eachCard runs fn for every match of selector, isolating panics so one
// malformed card cannot abort the page.
func eachCard(doc *goquery.Document, selector string, log zerolog.Logger, fn func(card *goquery.Selection) (models.Hackathon, bool)) []models.Hackathon {
	var out []models.Hackathon
	doc.Find(selector).Each(func(i int, card *goquery.Selection) {
		defer func() {
			if r := recover(); r != nil {
				log.Warn().Int("card", i).Interface("panic", r).Msg("Skipping malformed card")
			}
		}()
		h, ok := fn(card)
		if !ok || !Finalize(&h) {
			return
		}
		out = append(out, h)
	})
	return out
}

// text returns the collapsed text of the first match of selector.
func text(s *goquery.Selection, selector string) string {
	return CollapseSpace(s.Find(selector).First().Text())
}

// attr returns an attribute of the first match of selector.
func attr(s *goquery.Selection, selector, name string) string {
	v, _ := s.Find(selector).First().Attr(name)
	return strings.TrimSpace(v)
}

// textLines returns each non-empty text node under s, in document order.
// It approximates how a browser splits innerText into lines.
func textLines(s *goquery.Selection) []string {
	var lines []string
	var walk func(*goquery.Selection)
	walk = func(sel *goquery.Selection) {
		sel.Contents().Each(func(_ int, c *goquery.Selection) {
			switch goquery.NodeName(c) {
			case "#text":
				if line := CollapseSpace(c.Text()); line != "" {
					lines = append(lines, line)
				}
			case "script", "style", "noscript":
			default:
				walk(c)
			}
		})
	}
	walk(s)
	return lines
}
