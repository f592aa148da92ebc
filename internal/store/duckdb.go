// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver
	"github.com/goccy/go-json"

	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/metrics"
	"github.com/prem22k/Hack-Hunt/internal/models"
)

const duckdbMaxBatch = 1000

// duckdbMemoryDSN opens a private in-memory database. Extension auto-install
// is disabled so tests never reach the network.
const duckdbMemoryDSN = ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false"

const createHackathonsTable = `
CREATE TABLE IF NOT EXISTS hackathons (
	identity_key     TEXT PRIMARY KEY,
	id               TEXT NOT NULL,
	title            TEXT NOT NULL,
	organizer        TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT '',
	start_date       TIMESTAMP NOT NULL,
	end_date         TIMESTAMP NOT NULL,
	mode             TEXT NOT NULL DEFAULT '',
	is_paid          BOOLEAN NOT NULL DEFAULT false,
	skills           TEXT NOT NULL DEFAULT '[]',
	registration_url TEXT NOT NULL DEFAULT '',
	source           TEXT NOT NULL,
	location         TEXT NOT NULL DEFAULT '',
	prize            TEXT NOT NULL DEFAULT '',
	image_url        TEXT NOT NULL DEFAULT '',
	last_updated     TIMESTAMP NOT NULL
)`

const upsertHackathon = `
INSERT INTO hackathons (
	identity_key, id, title, organizer, description, start_date, end_date,
	mode, is_paid, skills, registration_url, source, location, prize, image_url, last_updated
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (identity_key) DO UPDATE SET
	title = EXCLUDED.title,
	organizer = EXCLUDED.organizer,
	description = EXCLUDED.description,
	start_date = EXCLUDED.start_date,
	end_date = EXCLUDED.end_date,
	mode = EXCLUDED.mode,
	is_paid = EXCLUDED.is_paid,
	skills = EXCLUDED.skills,
	registration_url = EXCLUDED.registration_url,
	source = EXCLUDED.source,
	location = EXCLUDED.location,
	prize = EXCLUDED.prize,
	image_url = EXCLUDED.image_url,
	last_updated = EXCLUDED.last_updated`

const selectHackathonColumns = `
SELECT id, title, organizer, description, start_date, end_date, mode, is_paid,
	skills, registration_url, source, location, prize, image_url, last_updated
FROM hackathons`

// DuckDBStore implements DocumentStore on a single DuckDB table keyed by
// identity key. Skills are stored as a JSON array and matched in Go.
type DuckDBStore struct {
	conn *sql.DB
}

// OpenDuckDB opens the database file at path, or an in-memory database when
// inMemory is set, and creates the table if needed.
func OpenDuckDB(ctx context.Context, path string, inMemory bool) (*DuckDBStore, error) {
	inMemory = inMemory || path == ""
	dsn := duckdbMemoryDSN
	if !inMemory {
		dsn = path + "?autoinstall_known_extensions=false&autoload_known_extensions=false"
	}

	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// An in-memory database lives and dies with its connection.
	if inMemory {
		conn.SetMaxOpenConns(1)
	}

	if _, err := conn.ExecContext(ctx, createHackathonsTable); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create hackathons table: %w", err)
	}

	logging.Info().Str("path", path).Bool("in_memory", inMemory).Msg("Opened DuckDB document store")
	return &DuckDBStore{conn: conn}, nil
}

// Backend implements DocumentStore.
func (s *DuckDBStore) Backend() string { return "duckdb" }

// MaxBatchSize implements DocumentStore.
func (s *DuckDBStore) MaxBatchSize() int { return duckdbMaxBatch }

// BatchWrite implements DocumentStore. The batch runs in one transaction and
// is rolled back on the first failing row.
func (s *DuckDBStore) BatchWrite(ctx context.Context, ops []WriteOp) (res BatchResult, err error) {
	if len(ops) > duckdbMaxBatch {
		return BatchResult{}, fmt.Errorf("batch of %d exceeds limit %d", len(ops), duckdbMaxBatch)
	}

	start := time.Now()
	defer func() { metrics.RecordStoreOperation(s.Backend(), "batch_write", time.Since(start)) }()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return BatchResult{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsertHackathon)
	if err != nil {
		return BatchResult{}, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for i := range ops {
		op := &ops[i]

		var existing int
		if err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM hackathons WHERE identity_key = ?`, op.Key,
		).Scan(&existing); err != nil {
			return BatchResult{}, fmt.Errorf("lookup %s: %w", op.Key, err)
		}

		h := op.Record
		skills := h.Skills
		if skills == nil {
			skills = []string{}
		}
		var skillsJSON []byte
		if skillsJSON, err = json.Marshal(skills); err != nil {
			return BatchResult{}, fmt.Errorf("marshal skills for %s: %w", op.Key, err)
		}

		if _, err = stmt.ExecContext(ctx,
			op.Key, models.RecordID(op.Key), h.Title, h.Organizer, h.Description,
			h.StartDate.UTC(), h.EndDate.UTC(), string(h.Mode), h.IsPaid, string(skillsJSON),
			h.RegistrationURL, string(h.Source), h.Location, h.Prize, h.ImageURL, h.LastUpdated.UTC(),
		); err != nil {
			return BatchResult{}, fmt.Errorf("upsert %s: %w", op.Key, err)
		}

		if existing > 0 {
			res.Updated++
		} else {
			res.Created++
		}
	}

	if err = tx.Commit(); err != nil {
		return BatchResult{}, fmt.Errorf("commit batch: %w", err)
	}
	return res, nil
}

// Query implements DocumentStore. Mode, payment, source and location are
// pushed into SQL; skills are matched after decode.
func (s *DuckDBStore) Query(ctx context.Context, f models.Filter) ([]models.Hackathon, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation(s.Backend(), "query", time.Since(start)) }()

	var (
		where []string
		args  []interface{}
	)
	if f.Mode != "" {
		where = append(where, "mode = ?")
		args = append(args, string(f.Mode))
	}
	if f.IsPaid != nil {
		where = append(where, "is_paid = ?")
		args = append(args, *f.IsPaid)
	}
	if f.Source != "" {
		where = append(where, "source = ?")
		args = append(args, string(f.Source))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		where = append(where, "lower(location) LIKE ?")
		args = append(args, "%"+strings.ToLower(loc)+"%")
	}

	query := selectHackathonColumns
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY start_date ASC, title ASC"

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query hackathons: %w", err)
	}
	defer rows.Close()

	out := make([]models.Hackathon, 0)
	skillFilter := models.Filter{Skills: f.Skills}
	for rows.Next() {
		h, err := scanHackathon(rows)
		if err != nil {
			return nil, err
		}
		if skillFilter.Matches(h) {
			out = append(out, *h)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hackathons: %w", err)
	}
	return out, nil
}

// Get implements DocumentStore.
func (s *DuckDBStore) Get(ctx context.Context, id string) (*models.Hackathon, error) {
	row := s.conn.QueryRowContext(ctx, selectHackathonColumns+" WHERE id = ?", id)
	h, err := scanHackathon(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Count implements DocumentStore.
func (s *DuckDBStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM hackathons`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count hackathons: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *DuckDBStore) Close() error {
	return s.conn.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHackathon(row rowScanner) (*models.Hackathon, error) {
	var (
		h      models.Hackathon
		mode   string
		source string
		skills string
	)
	if err := row.Scan(
		&h.ID, &h.Title, &h.Organizer, &h.Description, &h.StartDate, &h.EndDate,
		&mode, &h.IsPaid, &skills, &h.RegistrationURL, &source, &h.Location,
		&h.Prize, &h.ImageURL, &h.LastUpdated,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan hackathon: %w", err)
	}
	h.Mode = models.Mode(mode)
	h.Source = models.Source(source)
	if err := json.Unmarshal([]byte(skills), &h.Skills); err != nil {
		return nil, fmt.Errorf("decode skills for %s: %w", h.ID, err)
	}
	if h.Skills == nil {
		h.Skills = []string{}
	}
	h.StartDate = h.StartDate.UTC()
	h.EndDate = h.EndDate.UTC()
	h.LastUpdated = h.LastUpdated.UTC()
	return &h, nil
}
