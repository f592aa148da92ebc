// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

/*
Package config loads and validates Hack-Hunt configuration.

# Configuration Sources

Values are layered by LoadWithKoanf, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, config.yaml, config.yml or
    /etc/hackhunt/config.yaml
 3. Environment variables, mapped through an explicit table

Only variables listed in the mapping table are read. Comma-separated values
are split for list fields such as CORS_ORIGINS.

# Example

	store:
	  backend: duckdb
	  path: data/hackathons.duckdb
	  identity: dated
	recommend:
	  secondary:
	    name: openrouter
	    url: https://openrouter.ai/api/v1/chat/completions
	    model: meta-llama/llama-3.3-70b-instruct

Provider API keys are normally passed through the environment:

	GROQ_API_KEY=gsk_... GEMINI_API_KEY=... ./server
*/
package config
