package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresStore implements Store on a relational table. Insertion order is
// carried by a serial seq column; the application-assigned id is deliberately
// not unique, matching the snapshot format. Lookups resolve the oldest row
// when ids collide, which is what a linear scan of the snapshot would find.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an open connection pool.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// LoadAll returns the full collection in insertion order.
func (s *PostgresStore) LoadAll(ctx context.Context) ([]Transaction, error) {
	records := []Transaction{}
	err := s.db.SelectContext(ctx, &records,
		`SELECT id, created_at, title, type, category, value FROM transactions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("ledger load: %w", err)
	}
	return records, nil
}

// SaveAll replaces the whole table content with records in one transaction.
func (s *PostgresStore) SaveAll(ctx context.Context, records []Transaction) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ledger save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("ledger save: %w", err)
	}
	for _, r := range records {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO transactions (id, created_at, title, type, category, value)
			 VALUES (:id, :created_at, :title, :type, :category, :value)`, r); err != nil {
			return fmt.Errorf("ledger save: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ledger save: %w", err)
	}
	return nil
}

// FindByID returns the oldest record with the given id.
func (s *PostgresStore) FindByID(ctx context.Context, id int64) (Transaction, error) {
	var record Transaction
	err := s.db.GetContext(ctx, &record,
		`SELECT id, created_at, title, type, category, value
		 FROM transactions WHERE id = $1 ORDER BY seq LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Transaction{}, ErrNotFound
	}
	if err != nil {
		return Transaction{}, fmt.Errorf("ledger find: %w", err)
	}
	return record, nil
}

// Append inserts a record at the end of the collection.
func (s *PostgresStore) Append(ctx context.Context, record Transaction) error {
	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO transactions (id, created_at, title, type, category, value)
		 VALUES (:id, :created_at, :title, :type, :category, :value)`, record)
	if err != nil {
		return fmt.Errorf("ledger append: %w", err)
	}
	return nil
}

// UpdateInPlace overwrites the mutable fields of the oldest matching record.
func (s *PostgresStore) UpdateInPlace(ctx context.Context, id int64, fields Fields) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET title = $1, type = $2, category = $3, value = $4
		 WHERE seq = (SELECT min(seq) FROM transactions WHERE id = $5)`,
		fields.Title, fields.Type, fields.Category, fields.Value, id)
	if err != nil {
		return fmt.Errorf("ledger update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ledger update: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes and returns the oldest matching record.
func (s *PostgresStore) DeleteByID(ctx context.Context, id int64) (Transaction, error) {
	var record Transaction
	err := s.db.GetContext(ctx, &record,
		`DELETE FROM transactions
		 WHERE seq = (SELECT min(seq) FROM transactions WHERE id = $1)
		 RETURNING id, created_at, title, type, category, value`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Transaction{}, ErrNotFound
	}
	if err != nil {
		return Transaction{}, fmt.Errorf("ledger delete: %w", err)
	}
	return record, nil
}

// TotalByType aggregates Value over all records of the given type.
func (s *PostgresStore) TotalByType(ctx context.Context, t Type) (int64, int, error) {
	var agg struct {
		Sum   int64 `db:"sum"`
		Count int   `db:"count"`
	}
	err := s.db.GetContext(ctx, &agg,
		`SELECT COALESCE(SUM(value), 0) AS sum, COUNT(*) AS count
		 FROM transactions WHERE type = $1`, t)
	if err != nil {
		return 0, 0, fmt.Errorf("ledger total: %w", err)
	}
	return agg.Sum, agg.Count, nil
}

// LastN returns up to n most recent records, most recent first.
func (s *PostgresStore) LastN(ctx context.Context, n int) ([]Transaction, error) {
	records := []Transaction{}
	err := s.db.SelectContext(ctx, &records,
		`SELECT id, created_at, title, type, category, value
		 FROM transactions ORDER BY seq DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("ledger last: %w", err)
	}
	return records, nil
}
