package ledger

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups when no record matches the given id.
var ErrNotFound = errors.New("ledger: transaction not found")

// Fields carries the mutable portion of a record for in-place updates. ID and
// CreatedAt are never touched by an update.
type Fields struct {
	Title    string
	Type     Type
	Category Category
	Value    int64
}

// Store is the contract over the durable transaction collection. LoadAll and
// SaveAll operate on the whole snapshot; the remaining operations are
// conveniences over it. Implementations preserve insertion order and never
// reuse or rewrite ids of surviving records.
type Store interface {
	// LoadAll returns the full collection in insertion order. A missing or
	// unparsable snapshot reads as an empty ledger.
	LoadAll(ctx context.Context) ([]Transaction, error)
	// SaveAll replaces the whole snapshot with records.
	SaveAll(ctx context.Context, records []Transaction) error
	// FindByID returns the record with the given id or ErrNotFound.
	FindByID(ctx context.Context, id int64) (Transaction, error)
	// Append adds a record. The caller assigns the id beforehand.
	Append(ctx context.Context, record Transaction) error
	// UpdateInPlace overwrites the mutable fields of the matching record.
	// Returns ErrNotFound when no record matches.
	UpdateInPlace(ctx context.Context, id int64, fields Fields) error
	// DeleteByID removes and returns the matching record. Ids of the
	// remaining records are untouched.
	DeleteByID(ctx context.Context, id int64) (Transaction, error)
	// TotalByType sums Value over all records of the given type and reports
	// how many records contributed.
	TotalByType(ctx context.Context, t Type) (sum int64, count int, err error)
	// LastN returns up to n most recent records, most recent first.
	LastN(ctx context.Context, n int) ([]Transaction, error)
}

// NextID computes the id for a new record: current record count plus one.
// After deletions this can collide with a surviving id; the behavior is kept
// for snapshot compatibility with existing data files.
func NextID(ctx context.Context, s Store) (int64, error) {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(records)) + 1, nil
}
