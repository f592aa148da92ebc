// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/prem22k/Hack-Hunt/internal/events"
)

// EventSource delivers ingest events until ctx ends. Satisfied by
// *events.Bus.
type EventSource interface {
	Listen(ctx context.Context, h events.Handler) error
}

// EventListenerService subscribes a handler to completed ingestion runs.
// The recommendation service uses it to drop cached rankings after a run
// changes the corpus.
type EventListenerService struct {
	source  EventSource
	handler events.Handler
	name    string
}

// NewEventListenerService subscribes handler on source. name identifies the
// listener in supervisor logs.
func NewEventListenerService(name string, source EventSource, handler events.Handler) *EventListenerService {
	if name == "" {
		name = "event-listener"
	}
	return &EventListenerService{
		source:  source,
		handler: handler,
		name:    name,
	}
}

// Serve implements suture.Service. A subscription that ends before ctx does
// is reported as a failure so suture resubscribes.
func (s *EventListenerService) Serve(ctx context.Context) error {
	err := s.source.Listen(ctx, s.handler)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil || errors.Is(err, context.Canceled) {
		err = errors.New("subscription closed")
	}
	return fmt.Errorf("%s: %w", s.name, err)
}

// String implements fmt.Stringer.
func (s *EventListenerService) String() string {
	return s.name
}
