// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package sources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/prem22k/Hack-Hunt/internal/config"
	"github.com/prem22k/Hack-Hunt/internal/logging"
)

// PageRequest describes one page render.
type PageRequest struct {
	URL          string
	WaitSelector string
	WaitTimeout  time.Duration
	NavTimeout   time.Duration
}

// Browser renders a page and returns its DOM as HTML. Every call owns its
// browser session and releases it before returning.
type Browser interface {
	Render(ctx context.Context, req PageRequest) (string, error)
}

// ChromeBrowser renders pages with a fresh headless Chrome per call.
type ChromeBrowser struct {
	execPath  string
	userAgent string
	noSandbox bool
}

// NewChromeBrowser creates a Browser backed by chromedp.
func NewChromeBrowser(cfg config.BrowserConfig) *ChromeBrowser {
	return &ChromeBrowser{
		execPath:  cfg.ExecPath,
		userAgent: cfg.UserAgent,
		noSandbox: cfg.NoSandbox,
	}
}

func (b *ChromeBrowser) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if b.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(b.userAgent))
	}
	if b.execPath != "" {
		opts = append(opts, chromedp.ExecPath(b.execPath))
	}
	if b.noSandbox {
		opts = append(opts, chromedp.NoSandbox, chromedp.Flag("disable-setuid-sandbox", true))
	}
	return opts
}

// Render navigates to req.URL, waits up to WaitTimeout for WaitSelector and
// returns the document's outer HTML. A selector timeout is logged and the
// DOM as rendered so far is returned.
func (b *ChromeBrowser) Render(ctx context.Context, req PageRequest) (string, error) {
	log := logging.Ctx(ctx).With().Str("url", req.URL).Logger()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, b.allocatorOptions()...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	// The first Run starts the browser. It must use tabCtx itself, since
	// cancelling the context of the first Run closes the browser.
	if err := chromedp.Run(tabCtx); err != nil {
		return "", fmt.Errorf("start browser: %w", err)
	}

	log.Debug().Msg("Navigating")
	navCtx, cancelNav := withOptionalTimeout(tabCtx, req.NavTimeout)
	err := chromedp.Run(navCtx, chromedp.Navigate(req.URL))
	cancelNav()
	if err != nil {
		return "", fmt.Errorf("navigate %s: %w", req.URL, err)
	}

	if req.WaitSelector != "" {
		waitCtx, cancelWait := withOptionalTimeout(tabCtx, req.WaitTimeout)
		err := chromedp.Run(waitCtx, chromedp.WaitReady(req.WaitSelector, chromedp.ByQuery))
		cancelWait()
		switch {
		case err == nil:
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			log.Info().Str("selector", req.WaitSelector).Msg("Timed out waiting for selector, using current DOM")
		default:
			return "", fmt.Errorf("wait for %q: %w", req.WaitSelector, err)
		}
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read DOM: %w", err)
	}
	return html, nil
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
