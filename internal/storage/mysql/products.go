package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"team-portal/internal/storage"
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (s *Storage) ListProducts(ctx context.Context) ([]storage.Product, error) {
	const op = "storage.mysql.ListProducts"

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, type FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var products []storage.Product
	for rows.Next() {
		var p storage.Product
		if err := rows.Scan(&p.Name, &p.Type); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// UpsertProduct inserts a product column, then backfills target and
// permission keys for every current person. An existing name is left as is.
func (s *Storage) UpsertProduct(ctx context.Context, p storage.Product) error {
	const op = "storage.mysql.UpsertProduct"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT IGNORE INTO products (name, type) VALUES (?, ?)`, p.Name, p.Type)
	if err != nil {
		return fmt.Errorf("%s: insert product name=%s: %w", op, p.Name, err)
	}

	if err := ensureEntriesTx(ctx, tx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

// DeleteProduct removes the product column only. Historical achievements,
// targets and permissions keep their keys, so re-adding the product restores
// the old configuration.
func (s *Storage) DeleteProduct(ctx context.Context, name string) error {
	const op = "storage.mysql.DeleteProduct"

	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("%s: name=%s: %w", op, name, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: name=%s: %w", op, name, storage.ErrNotFound)
	}

	return nil
}
