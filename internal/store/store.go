// Package store persists transaction records in a local SQLite file.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/budget-tracker/internal/fileutils"
	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/parsererror"

	_ "modernc.org/sqlite"
)

// DefaultPath is the store file used when none is configured.
const DefaultPath = "transactions.db"

const schema = `
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		operation TEXT,
		card TEXT,
		merchant TEXT,
		amount REAL,
		balance REAL,
		timestamp TEXT,
		category TEXT
	)`

// Repository is what the ingest and presentation layers need from a store.
type Repository interface {
	Append(ctx context.Context, rec models.Record) (int64, error)
	ListAll(ctx context.Context) ([]models.Record, error)
}

// RecordStore is an append-only table of records. Open it once and share the handle.
type RecordStore struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// Open opens or creates the store at path and makes sure the table exists.
func Open(ctx context.Context, path string, logger logging.Logger) (*RecordStore, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	if path != ":memory:" {
		if err := fileutils.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
			return nil, &parsererror.StorageError{Op: "open", Err: err}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &parsererror.StorageError{Op: "open", Err: err}
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, &parsererror.StorageError{Op: "create schema", Err: err}
	}

	logger.Debug("Opened record store", logging.F(logging.FieldFile, path))
	return &RecordStore{db: db, path: path, logger: logger}, nil
}

// Path returns the file backing the store.
func (s *RecordStore) Path() string {
	return s.path
}

// Append inserts rec and returns its new identifier. rec.ID is ignored.
func (s *RecordStore) Append(ctx context.Context, rec models.Record) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, &parsererror.StorageError{Op: "append", Err: fmt.Errorf("invalid record: %w", err)}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (operation, card, merchant, amount, balance, timestamp, category)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Operation, rec.Card, rec.Merchant, rec.Amount, rec.Balance, rec.Timestamp, rec.Category)
	if err != nil {
		return 0, &parsererror.StorageError{Op: "append", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &parsererror.StorageError{Op: "append", Err: err}
	}

	s.logger.Debug("Stored transaction",
		logging.F(logging.FieldRecordID, id),
		logging.F(logging.FieldMerchant, rec.Merchant),
		logging.F(logging.FieldCategory, rec.Category))
	return id, nil
}

// AppendRaw coerces the numeric fields of raw and appends the result.
func (s *RecordStore) AppendRaw(ctx context.Context, raw models.RawRecord) (int64, error) {
	rec, err := raw.Normalize()
	if err != nil {
		return 0, &parsererror.StorageError{Op: "append", Err: err}
	}
	return s.Append(ctx, rec)
}

// ListAll returns every record in insertion order. A missing table reads as empty.
func (s *RecordStore) ListAll(ctx context.Context) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, operation, card, merchant, amount, balance, timestamp, category
		FROM transactions
		ORDER BY id ASC
	`)
	if err != nil {
		if isMissingTable(err) {
			return []models.Record{}, nil
		}
		return nil, &parsererror.StorageError{Op: "list", Err: err}
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.Record, 0)
	for rows.Next() {
		var rec models.Record
		var op, card, merchant, timestamp, category sql.NullString
		var amount, balance interface{}
		if err := rows.Scan(&rec.ID, &op, &card, &merchant, &amount, &balance, &timestamp, &category); err != nil {
			return nil, &parsererror.StorageError{Op: "list", Err: err}
		}
		rec.Operation, rec.Card, rec.Merchant = op.String, card.String, merchant.String
		rec.Timestamp, rec.Category = timestamp.String, category.String

		if rec.Amount, err = coerceColumn(amount); err != nil {
			return nil, &parsererror.StorageError{Op: "list", Err: fmt.Errorf("record %d amount: %w", rec.ID, err)}
		}
		if rec.Balance, err = coerceColumn(balance); err != nil {
			return nil, &parsererror.StorageError{Op: "list", Err: fmt.Errorf("record %d balance: %w", rec.ID, err)}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &parsererror.StorageError{Op: "list", Err: err}
	}
	return out, nil
}

// Close releases the underlying handle.
func (s *RecordStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return &parsererror.StorageError{Op: "close", Err: err}
	}
	return nil
}

// coerceColumn turns whatever the driver returned for a numeric column into a float.
// NULL reads as zero.
func coerceColumn(v interface{}) (float64, error) {
	if v == nil {
		return 0, nil
	}
	return models.ToFloat(v)
}

func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
