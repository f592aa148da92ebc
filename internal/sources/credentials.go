// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package sources

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/prem22k/Hack-Hunt/internal/logging"
)

// Credentials is an API username and key pair.
type Credentials struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

func (c Credentials) complete() bool {
	return c.Username != "" && c.Key != ""
}

// CredentialSource is one step of a credential lookup.
type CredentialSource interface {
	Lookup() (Credentials, bool)
}

// StaticCredentials returns fixed values, typically from configuration.
type StaticCredentials Credentials

// Lookup implements CredentialSource.
func (s StaticCredentials) Lookup() (Credentials, bool) {
	c := Credentials(s)
	return c, c.complete()
}

// EnvCredentials reads a username and key from two environment variables.
type EnvCredentials struct {
	UsernameVar string
	KeyVar      string
}

// Lookup implements CredentialSource.
func (e EnvCredentials) Lookup() (Credentials, bool) {
	c := Credentials{Username: os.Getenv(e.UsernameVar), Key: os.Getenv(e.KeyVar)}
	return c, c.complete()
}

// FileCredentials reads a kaggle.json style file. A leading "~/" is expanded
// to the user's home directory. Unreadable or malformed files are skipped.
type FileCredentials struct {
	Path string
}

// Lookup implements CredentialSource.
func (f FileCredentials) Lookup() (Credentials, bool) {
	path := f.Path
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return Credentials{}, false
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, false
	}
	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Ignoring unparseable credentials file")
		return Credentials{}, false
	}
	if !c.complete() {
		logging.Warn().Str("path", path).Msg("Ignoring credentials file without username and key")
		return Credentials{}, false
	}
	logging.Debug().Str("path", path).Msg("Using credentials file")
	return c, true
}

// CredentialChain tries each step in order and returns the first hit.
type CredentialChain []CredentialSource

// Lookup implements CredentialSource.
func (chain CredentialChain) Lookup() (Credentials, bool) {
	for _, step := range chain {
		if c, ok := step.Lookup(); ok {
			return c, true
		}
	}
	return Credentials{}, false
}

// KaggleCredentialChain resolves Kaggle credentials from configuration, then
// KAGGLE_USERNAME/KAGGLE_KEY, then ./kaggle.json, then ~/.kaggle/kaggle.json.
func KaggleCredentialChain(username, key string) CredentialChain {
	return CredentialChain{
		StaticCredentials{Username: username, Key: key},
		EnvCredentials{UsernameVar: "KAGGLE_USERNAME", KeyVar: "KAGGLE_KEY"},
		FileCredentials{Path: "kaggle.json"},
		FileCredentials{Path: "~/.kaggle/kaggle.json"},
	}
}
