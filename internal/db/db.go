// Package db stores survey responses in a local SQLite table and serves them
// as a survey.Source.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/quantumfamily/archetype/internal/monitoring"
	"github.com/quantumfamily/archetype/internal/survey"
	"github.com/quantumfamily/archetype/internal/timeutil"
)

var logf = monitoring.Prefixed("db")

type DB struct {
	*sql.DB
	path  string
	clock timeutil.Clock
}

// OpenDB opens the database file without touching the schema. Migration
// commands use it so they can inspect a database in any state.
func OpenDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return &DB{DB: sqlDB, path: path, clock: timeutil.RealClock{}}, nil
}

// NewDB opens the database and applies every pending migration.
func NewDB(path string) (*DB, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// SetClock replaces the clock used to stamp inserted responses.
func (db *DB) SetClock(c timeutil.Clock) {
	db.clock = c
}

// InsertResponse stores a response stamped with the current time and returns
// its generated id.
func (db *DB) InsertResponse(ctx context.Context, resp survey.Response) (string, error) {
	return db.InsertResponseAt(ctx, resp, db.clock.Now())
}

// InsertResponseAt stores a response with an explicit submission time.
func (db *DB) InsertResponseAt(ctx context.Context, resp survey.Response, at time.Time) (string, error) {
	if resp.UserID == "" {
		return "", fmt.Errorf("insert response: empty user_id")
	}
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO survey_responses (
			response_id, user_id, freedom, security, responsibility, k_band, submitted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, resp.UserID,
		resp.Scores.Freedom, resp.Scores.Security, resp.Scores.Responsibility,
		int(resp.Band), at.UTC().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert response for %q: %w", resp.UserID, err)
	}
	return id, nil
}

// Rows returns every stored response, oldest first, in the same normalised
// shape a sheet export produces. It makes *DB a survey.Source.
func (db *DB) Rows(ctx context.Context) ([]survey.Row, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT response_id, user_id, freedom, security, responsibility, k_band, submitted_at
		   FROM survey_responses
		  ORDER BY submitted_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("query survey responses: %w", err)
	}
	defer rows.Close()

	var out []survey.Row
	for rows.Next() {
		var (
			id, userID                               string
			freedom, security, responsibility, kBand int64
			submittedAt                              int64
		)
		if err := rows.Scan(&id, &userID, &freedom, &security, &responsibility, &kBand, &submittedAt); err != nil {
			return nil, fmt.Errorf("scan survey response: %w", err)
		}
		out = append(out, survey.Row{
			"response_id":               id,
			survey.ColumnUserID:         userID,
			survey.ColumnFreedom:        strconv.FormatInt(freedom, 10),
			survey.ColumnSecurity:       strconv.FormatInt(security, 10),
			survey.ColumnResponsibility: strconv.FormatInt(responsibility, 10),
			survey.ColumnBand:           strconv.FormatInt(kBand, 10),
			"submitted_at":              time.Unix(0, submittedAt).UTC().Format(time.RFC3339),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logf("read %d rows from %s", len(out), db.path)
	return out, nil
}

// CountResponses returns the number of stored responses.
func (db *DB) CountResponses(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM survey_responses").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
