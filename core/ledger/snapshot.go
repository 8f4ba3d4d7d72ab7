package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"finbot/core/logger"

	"log/slog"
)

// SnapshotStore persists the collection as one JSON array in a flat file.
// Reads treat a missing or corrupt file as an empty ledger; writes replace
// the file atomically via a temp file and rename.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore builds a store backed by the JSON file at path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// LoadAll reads the snapshot. Corruption is swallowed and logged, never
// surfaced to the caller.
func (s *SnapshotStore) LoadAll(ctx context.Context) ([]Transaction, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn(ctx, "ledger", "snapshot.read_failed",
				slog.String("path", s.path),
				slog.String("err", err.Error()),
			)
		}
		return []Transaction{}, nil
	}

	var records []Transaction
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn(ctx, "ledger", "snapshot.corrupt",
			slog.String("path", s.path),
			slog.String("err", err.Error()),
		)
		return []Transaction{}, nil
	}
	if records == nil {
		records = []Transaction{}
	}
	return records, nil
}

// SaveAll serializes records deterministically and replaces the snapshot.
func (s *SnapshotStore) SaveAll(ctx context.Context, records []Transaction) error {
	if records == nil {
		records = []Transaction{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot marshal: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("snapshot write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("snapshot close: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("snapshot replace: %w", err)
	}

	logger.Debug(ctx, "ledger", "snapshot.saved",
		slog.String("path", s.path),
		slog.Int("count", len(records)),
	)
	return nil
}

// FindByID scans the snapshot for the given id.
func (s *SnapshotStore) FindByID(ctx context.Context, id int64) (Transaction, error) {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return Transaction{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return Transaction{}, ErrNotFound
}

// Append adds a record at the end of the snapshot.
func (s *SnapshotStore) Append(ctx context.Context, record Transaction) error {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}
	return s.SaveAll(ctx, append(records, record))
}

// UpdateInPlace overwrites the mutable fields of the matching record.
func (s *SnapshotStore) UpdateInPlace(ctx context.Context, id int64, fields Fields) error {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID != id {
			continue
		}
		records[i].Title = fields.Title
		records[i].Type = fields.Type
		records[i].Category = fields.Category
		records[i].Value = fields.Value
		return s.SaveAll(ctx, records)
	}
	return ErrNotFound
}

// DeleteByID removes and returns the matching record.
func (s *SnapshotStore) DeleteByID(ctx context.Context, id int64) (Transaction, error) {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return Transaction{}, err
	}
	for i, r := range records {
		if r.ID != id {
			continue
		}
		remaining := append(records[:i:i], records[i+1:]...)
		if err := s.SaveAll(ctx, remaining); err != nil {
			return Transaction{}, err
		}
		return r, nil
	}
	return Transaction{}, ErrNotFound
}

// TotalByType aggregates Value over all records of the given type.
func (s *SnapshotStore) TotalByType(ctx context.Context, t Type) (int64, int, error) {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return 0, 0, err
	}
	var sum int64
	count := 0
	for _, r := range records {
		if r.Type == t {
			sum += r.Value
			count++
		}
	}
	return sum, count, nil
}

// LastN returns up to n most recent records, most recent first.
func (s *SnapshotStore) LastN(ctx context.Context, n int) ([]Transaction, error) {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if n > len(records) {
		n = len(records)
	}
	out := make([]Transaction, 0, n)
	for i := len(records) - 1; i >= len(records)-n; i-- {
		out = append(out, records[i])
	}
	return out, nil
}
