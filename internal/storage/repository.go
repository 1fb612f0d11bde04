package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"choubo/internal/core"

	_ "modernc.org/sqlite"
)

const prefLastOrganization = "last_organization"

// SQLiteRepository is the local record source and preference store.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AppendRecord stores one bookkeeping entry and returns its id.
func (r *SQLiteRepository) AppendRecord(ctx context.Context, rec core.Record) (int64, error) {
	if rec.Date.IsZero() {
		return 0, core.ErrInvalidDate
	}
	var (
		direction string
		account   sql.NullString
		amount    sql.NullInt64
		tax       int64
	)
	switch p := rec.Posting.(type) {
	case core.IncomePosting:
		direction = "in"
		account = sql.NullString{String: p.Account, Valid: p.Account != ""}
		amount = sql.NullInt64{Int64: p.Amount.Yen, Valid: true}
		tax = p.Tax.Yen
	case core.ExpensePosting:
		direction = "out"
		account = sql.NullString{String: p.Account, Valid: p.Account != ""}
		amount = sql.NullInt64{Int64: p.Amount.Yen, Valid: true}
		tax = p.Tax.Yen
	default:
		return 0, fmt.Errorf("record has no posting side")
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO records (entry_date, description, direction, account, amount, tax, tax_class)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Date.Format("2006-01-02"), rec.Description, direction, account, amount, tax, rec.TaxClass)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert record id: %w", err)
	}
	return id, nil
}

// ListRecords implements service.RecordSource. Rows with an unparsable
// date are kept with a zero date so the aggregator drops just their
// contribution instead of the whole run failing.
func (r *SQLiteRepository) ListRecords(ctx context.Context, from, to core.Date) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT entry_date, description, direction, account, amount, tax, tax_class
		 FROM records
		 WHERE entry_date >= ? AND entry_date <= ?
		 ORDER BY entry_date, id`,
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var (
			entryDate, description, direction, taxClass string
			account                                     sql.NullString
			amount                                      sql.NullInt64
			tax                                         int64
		)
		if err := rows.Scan(&entryDate, &description, &direction, &account, &amount, &tax, &taxClass); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		rec := core.Record{Description: description, TaxClass: taxClass}
		if t, err := time.Parse("2006-01-02", entryDate); err != nil {
			slog.WarnContext(ctx, "Record has malformed entry date, contribution dropped",
				"entry_date", entryDate)
		} else {
			rec.Date = core.Date{Time: t}
		}

		if direction == "in" {
			rec.Posting = core.IncomePosting{Account: account.String, Amount: core.Money{Yen: amount.Int64}, Tax: core.Money{Yen: tax}}
		} else {
			rec.Posting = core.ExpensePosting{Account: account.String, Amount: core.Money{Yen: amount.Int64}, Tax: core.Money{Yen: tax}}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// LastOrganization implements service.PreferenceStore.
func (r *SQLiteRepository) LastOrganization(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = ?`, prefLastOrganization).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read preference: %w", err)
	}
	return value, nil
}

// SetLastOrganization implements service.PreferenceStore.
func (r *SQLiteRepository) SetLastOrganization(ctx context.Context, label string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		prefLastOrganization, label)
	if err != nil {
		return fmt.Errorf("write preference: %w", err)
	}
	return nil
}
