// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

// Command ingest runs one ingestion pass against the configured store and
// exits.
//
//	ingest                 # every enabled source
//	ingest mlh kaggle      # a subset, in registration order
//	ingest -seed           # load the bundled sample dataset instead
//
// It reads the same configuration as the server. One summary line is printed
// per source:
//
//	[mlh] New: 12, Updated: 3, Total Fetched: 15
//
// The exit status is 1 when every selected source failed.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prem22k/Hack-Hunt/internal/config"
	"github.com/prem22k/Hack-Hunt/internal/ingest"
	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/models"
	"github.com/prem22k/Hack-Hunt/internal/seed"
	"github.com/prem22k/Hack-Hunt/internal/sources"
	"github.com/prem22k/Hack-Hunt/internal/store"
)

func main() {
	useSeed := flag.Bool("seed", false, "load the bundled sample dataset instead of live sources")
	flag.Parse()

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, cancel := context.WithCancel(context.Background())
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		cancel()
	}()

	code := run(ctx, cfg, *useSeed, flag.Args(), os.Stdout)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config, useSeed bool, names []string, out io.Writer) int {
	docStore, err := store.Open(ctx, cfg.Store)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to open store")
		return 1
	}
	defer func() {
		if err := docStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	var registry *sources.Registry
	if useSeed {
		registry = seed.NewRegistry()
	} else {
		registry = sources.NewRegistryFromConfig(cfg.Sources, sources.NewChromeBrowser(cfg.Sources.Browser))
	}

	upserter := store.NewUpserter(docStore, models.IdentityStrategy(cfg.Store.Identity), cfg.Store.BatchSize)
	orchestrator := ingest.NewOrchestrator(registry, upserter, cfg.Ingest.SourceTimeout)
	defer orchestrator.Close()

	report, err := orchestrator.RunSources(ctx, names)
	if err != nil {
		logging.Error().Err(err).Strs("requested", names).Interface("available", orchestrator.Sources()).Msg("Cannot start ingestion")
		return 2
	}

	printReport(out, report)

	if len(report.Sources) > 0 && len(report.Errored()) == len(report.Sources) {
		return 1
	}
	return 0
}

func printReport(out io.Writer, report *ingest.Report) {
	for i := range report.Sources {
		fmt.Fprintln(out, summaryLine(&report.Sources[i]))
	}
}

func summaryLine(sr *ingest.SourceReport) string {
	line := fmt.Sprintf("[%s] New: %d, Updated: %d, Total Fetched: %d", sr.Source, sr.Created, sr.Updated, sr.Fetched)
	switch {
	case sr.Error != "":
		line += ", Error: " + sr.Error
	case sr.Failed > 0:
		line += fmt.Sprintf(", Failed: %d", sr.Failed)
	}
	return line
}
