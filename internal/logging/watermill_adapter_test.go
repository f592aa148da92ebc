// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

func TestWatermillAdapter(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer Init(DefaultConfig())

	a := NewWatermillAdapterWithLogger(NewTestLogger(&buf))

	a.Info("published", watermill.LogFields{"topic": "ingest.completed"})
	a.Error("publish failed", errors.New("nats down"), nil)
	a.With(watermill.LogFields{"subscriber": "cache"}).Debug("ack", nil)

	out := buf.String()
	for _, want := range []string{
		`"topic":"ingest.completed"`,
		`"error":"nats down"`,
		`"subscriber":"cache"`,
		`"message":"ack"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %s", want, out)
		}
	}
}
