// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package sources

import (
	"github.com/prem22k/Hack-Hunt/internal/config"
)

// NewRegistryFromConfig registers every enabled source in the canonical
// order: MLH, Kaggle, Devpost, Devfolio. Browser sources share b.
func NewRegistryFromConfig(cfg config.SourcesConfig, b Browser) *Registry {
	r := NewRegistry()
	// Names are distinct, so Register cannot fail here.
	if cfg.MLH.Enabled {
		_ = r.Register(NewMLHSource(cfg.MLH, b))
	}
	if cfg.Kaggle.Enabled {
		_ = r.Register(NewKaggleSource(cfg.Kaggle, KaggleCredentialChain(cfg.Kaggle.Username, cfg.Kaggle.Key)))
	}
	if cfg.Devpost.Enabled {
		_ = r.Register(NewDevpostSource(cfg.Devpost, b))
	}
	if cfg.Devfolio.Enabled {
		_ = r.Register(NewDevfolioSource(cfg.Devfolio, b))
	}
	return r
}
