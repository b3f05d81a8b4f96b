package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

var _ SnapshotRepository = (*SQLiteDB)(nil)

type SQLiteDB struct {
	db   *sql.DB
	path string
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if path == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db:   db,
		path: path,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS events (
			seq INTEGER PRIMARY KEY,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
			mag REAL NOT NULL,
			mag_error REAL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_events_year_month ON events(year, month);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveEvents replaces the stored snapshot with table in one transaction.
func (s *SQLiteDB) SaveEvents(ctx context.Context, table *models.EventTable) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("error clearing events: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (seq, year, month, mag, mag_error, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer stmt.Close()

	var insertErr error
	table.Each(func(i int, e models.Event) bool {
		var magErr sql.NullFloat64
		if !math.IsNaN(e.MagnitudeError) {
			magErr = sql.NullFloat64{Float64: e.MagnitudeError, Valid: true}
		}
		_, insertErr = stmt.ExecContext(ctx, i, e.Year, e.Month, e.Magnitude, magErr, e.Latitude, e.Longitude)
		return insertErr == nil
	})
	if insertErr != nil {
		return fmt.Errorf("error inserting event: %w", insertErr)
	}

	return tx.Commit()
}

// LoadEvents returns the stored rows in their original order.
func (s *SQLiteDB) LoadEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT year, month, mag, mag_error, latitude, longitude
		FROM events
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var (
			e      models.Event
			magErr sql.NullFloat64
		)
		if err := rows.Scan(&e.Year, &e.Month, &e.Magnitude, &magErr, &e.Latitude, &e.Longitude); err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		e.MagnitudeError = math.NaN()
		if magErr.Valid {
			e.MagnitudeError = magErr.Float64
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (s *SQLiteDB) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// Name and Events let a snapshot act as a dataset source.
func (s *SQLiteDB) Name() string {
	return "sqlite:" + s.path
}

func (s *SQLiteDB) Events(ctx context.Context) ([]models.Event, int, error) {
	events, err := s.LoadEvents(ctx)
	return events, 0, err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
