// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package sources

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/prem22k/Hack-Hunt/internal/models"
)

// ErrCredentialsUnavailable is returned by API sources that could not resolve
// credentials. It marks the source as skipped, not failed.
var ErrCredentialsUnavailable = errors.New("credentials unavailable")

// Source fetches listings from one external origin and returns them in
// canonical form. Implementations must not panic and must honour ctx.
type Source interface {
	Name() models.Source
	Fetch(ctx context.Context) ([]models.Hackathon, error)
}

// Registry holds the enabled sources in registration order.
type Registry struct {
	mu      sync.RWMutex
	sources map[models.Source]Source
	order   []models.Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[models.Source]Source)}
}

// Register adds a source. Registering the same name twice is an error.
func (r *Registry) Register(s Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, exists := r.sources[name]; exists {
		return fmt.Errorf("source %q already registered", name)
	}
	r.sources[name] = s
	r.order = append(r.order, name)
	return nil
}

// Get returns the named source.
func (r *Registry) Get(name models.Source) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sources[name]
	return s, ok
}

// Names returns registered names in registration order.
func (r *Registry) Names() []models.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Source, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
