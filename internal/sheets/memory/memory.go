// Package memory provides an in-process RowStore used by the default
// backend and by tests. Errors can be injected per operation.
package memory

import (
	"context"
	"sync"

	"custos/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	rows [][]string

	// Injectable failures, for tests.
	RowsErr   error
	AppendErr error
	ClearErr  error
	FormatErr error

	// FormatCalls counts FormatHeader invocations.
	FormatCalls int
}

var (
	_ sheets.RowStore        = (*Store)(nil)
	_ sheets.HeaderFormatter = (*Store)(nil)
)

func New() *Store {
	return &Store{}
}

// NewWithRows seeds the store with the given rows. Rows are copied.
func NewWithRows(rows [][]string) *Store {
	s := &Store{}
	for _, r := range rows {
		s.rows = append(s.rows, append([]string(nil), r...))
	}
	return s
}

func (s *Store) Rows(_ context.Context) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RowsErr != nil {
		return nil, s.RowsErr
	}
	out := make([][]string, len(s.rows))
	for i, r := range s.rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (s *Store) Append(_ context.Context, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AppendErr != nil {
		return s.AppendErr
	}
	s.rows = append(s.rows, append([]string(nil), row...))
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.rows = nil
	return nil
}

func (s *Store) FormatHeader(_ context.Context, _ []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FormatCalls++
	return s.FormatErr
}
