// Package storage provides a SQLite-backed RowStore. The table mirrors the
// remote sheet cell-for-cell: rows are stored as raw text in insertion
// order, and row 0 is whatever the reconciler wrote, normally the header.
// Selected with DATA_BACKEND=sqlite for local or air-gapped use.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"custos/internal/sheets"

	_ "modernc.org/sqlite"
)

const cellColumns = `data, cliente_projeto, categoria, descricao, quantidade,
	preco_unitario, subtotal, desconto, total, status_pagamento,
	forma_pagamento, observacoes`

type Repository struct {
	db *sql.DB
}

var _ sheets.RowStore = (*Repository)(nil)

func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
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

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) Rows(ctx context.Context) ([][]string, error) {
	q := fmt.Sprintf("SELECT %s FROM sheet_rows ORDER BY id", cellColumns)
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select rows: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		cells := make([]string, 12)
		dest := make([]any, 12)
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

func (r *Repository) Append(ctx context.Context, row []string) error {
	cells := make([]string, 12)
	copy(cells, row)
	args := make([]any, 12)
	for i, c := range cells {
		args[i] = c
	}
	q := fmt.Sprintf("INSERT INTO sheet_rows (%s) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)", cellColumns)
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert row: %w", err)
	}
	return nil
}

func (r *Repository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sheet_rows"); err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}
	return nil
}
