// Package store persists budget entries, forecast modes and yearly targets in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/log"
	"github.com/theirongolddev/bburn/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a requested entry does not exist.
var ErrNotFound = errors.New("not found")

const timeLayout = time.RFC3339Nano

var openRetry = retry.Config{
	MaxAttempts:   3,
	InitialDelay:  50 * time.Millisecond,
	BackoffPolicy: retry.BackoffExponential,
}

// Store is the SQLite-backed ledger.
type Store struct {
	db     *sql.DB
	logger *log.Logger
	now    func() time.Time
}

// Open opens or creates the database at dbPath and applies migrations.
func Open(dbPath string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dsn := dbPath + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)"

	// The daemon and a CLI command can open the same file at once; the
	// loser of the migration lock retries.
	migrator := retry.New[struct{}](openRetry)
	if _, err := migrator.Do(context.Background(), func(context.Context) (struct{}, error) {
		return struct{}{}, runMigrations(dsn)
	}); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.WithComponent(log.ComponentStore),
		now:    time.Now,
	}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Data is everything the engine needs from persistence.
type Data struct {
	Entries []model.Entry
	Modes   model.ForecastModes
	Targets model.YearlyTargets
}

// LoadData reads entries (for year, or all years when year is 0), forecast
// modes and yearly targets in one read transaction.
func (s *Store) LoadData(ctx context.Context, year int) (Data, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return Data{}, err
	}
	defer func() { _ = tx.Rollback() }()

	entries, err := loadEntries(ctx, tx, year)
	if err != nil {
		return Data{}, err
	}
	modes, err := loadForecastModes(ctx, tx)
	if err != nil {
		return Data{}, err
	}
	targets, err := loadYearlyTargets(ctx, tx)
	if err != nil {
		return Data{}, err
	}
	return Data{Entries: entries, Modes: modes, Targets: targets}, tx.Commit()
}

// SaveEntry inserts or updates the entry occupying (category, year, month).
// An existing row keeps its ID and CreatedAt. When the entry is empty the row
// is deleted instead and deleted reports true.
func (s *Store) SaveEntry(ctx context.Context, e model.Entry) (saved model.Entry, deleted bool, err error) {
	if !model.ValidMonth(e.Month) {
		return model.Entry{}, false, fmt.Errorf("invalid month %d", e.Month)
	}
	if e.CategoryID == "" {
		return model.Entry{}, false, errors.New("entry has no category")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Entry{}, false, err
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := getEntryByKey(ctx, tx, e.Key())
	found := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return model.Entry{}, false, err
	}

	if e.IsEmpty() {
		if found {
			if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", existing.ID); err != nil {
				return model.Entry{}, false, fmt.Errorf("deleting emptied entry: %w", err)
			}
		}
		if err := tx.Commit(); err != nil {
			return model.Entry{}, false, err
		}
		s.logger.InfoContext(ctx, "entry emptied",
			log.FieldOperation, log.OpDelete,
			log.FieldCategory, e.CategoryID, log.FieldYear, e.Year, log.FieldMonth, e.Month)
		return model.Entry{}, found, nil
	}

	now := s.now().UTC()
	if found {
		e.ID = existing.ID
		e.CreatedAt = existing.CreatedAt
	} else {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `INSERT INTO entries
		(id, category_id, year, month, budget, actual, reforecast, adjustment, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(category_id, year, month) DO UPDATE SET
			budget = excluded.budget,
			actual = excluded.actual,
			reforecast = excluded.reforecast,
			adjustment = excluded.adjustment,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		e.ID, e.CategoryID, e.Year, e.Month,
		e.Budget, e.Actual, e.Reforecast, e.Adjustment, e.Notes,
		e.CreatedAt.Format(timeLayout), e.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return model.Entry{}, false, fmt.Errorf("saving entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Entry{}, false, err
	}

	s.logger.InfoContext(ctx, "entry saved",
		log.FieldOperation, log.OpSave,
		log.FieldCategory, e.CategoryID, log.FieldYear, e.Year, log.FieldMonth, e.Month,
		log.FieldAmount, e.Budget.String())
	return e, false, nil
}

// SaveEntries saves a batch in order and reports how many rows were written
// and how many were removed for being empty.
func (s *Store) SaveEntries(ctx context.Context, entries []model.Entry) (saved, deleted int, err error) {
	for _, e := range entries {
		_, gone, err := s.SaveEntry(ctx, e)
		if err != nil {
			return saved, deleted, fmt.Errorf("%s %d-%02d: %w", e.CategoryID, e.Year, e.Month, err)
		}
		if gone {
			deleted++
		} else if !e.IsEmpty() {
			saved++
		}
	}
	return saved, deleted, nil
}

// GetEntry returns the entry for (category, year, month).
func (s *Store) GetEntry(ctx context.Context, key model.EntryKey) (model.Entry, error) {
	return getEntryByKey(ctx, s.db, key)
}

// DeleteEntry removes the entry for (category, year, month).
func (s *Store) DeleteEntry(ctx context.Context, key model.EntryKey) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM entries WHERE category_id = ? AND year = ? AND month = ?",
		key.CategoryID, key.Year, key.Month)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.logger.InfoContext(ctx, "entry deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldCategory, key.CategoryID, log.FieldYear, key.Year, log.FieldMonth, key.Month)
	return nil
}

// LoadEntries returns entries for year, or every entry when year is 0.
func (s *Store) LoadEntries(ctx context.Context, year int) ([]model.Entry, error) {
	return loadEntries(ctx, s.db, year)
}

// EntryCount returns the number of stored entries.
func (s *Store) EntryCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const entryColumns = `id, category_id, year, month, budget, actual, reforecast, adjustment, notes, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (model.Entry, error) {
	var (
		e                  model.Entry
		created, updated   string
		budget, adjustment decimal.Decimal
	)
	err := row.Scan(&e.ID, &e.CategoryID, &e.Year, &e.Month,
		&budget, &e.Actual, &e.Reforecast, &adjustment, &e.Notes, &created, &updated)
	if err != nil {
		return model.Entry{}, err
	}
	e.Budget = budget
	e.Adjustment = adjustment
	e.CreatedAt, _ = time.Parse(timeLayout, created)
	e.UpdatedAt, _ = time.Parse(timeLayout, updated)
	return e, nil
}

func getEntryByKey(ctx context.Context, q querier, key model.EntryKey) (model.Entry, error) {
	row := q.QueryRowContext(ctx, "SELECT "+entryColumns+
		" FROM entries WHERE category_id = ? AND year = ? AND month = ?",
		key.CategoryID, key.Year, key.Month)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, ErrNotFound
	}
	return e, err
}

func loadEntries(ctx context.Context, q querier, year int) ([]model.Entry, error) {
	query := "SELECT " + entryColumns + " FROM entries"
	var args []any
	if year != 0 {
		query += " WHERE year = ?"
		args = append(args, year)
	}
	query += " ORDER BY year, month, category_id"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
