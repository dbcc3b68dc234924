package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"team-portal/internal/storage"
)

func (s *Storage) LoadTargets(ctx context.Context) (storage.Targets, error) {
	const op = "storage.mysql.LoadTargets"

	rows, err := s.db.QueryContext(ctx, `SELECT person_id, product, value FROM targets`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	targets := storage.Targets{}
	for rows.Next() {
		var personID, product string
		var value float64
		if err := rows.Scan(&personID, &product, &value); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		if targets[personID] == nil {
			targets[personID] = map[string]float64{}
		}
		targets[personID][product] = value
	}

	return targets, rows.Err()
}

func (s *Storage) LoadAllowed(ctx context.Context) (storage.Allowed, error) {
	const op = "storage.mysql.LoadAllowed"

	rows, err := s.db.QueryContext(ctx, `SELECT person_id, product, allowed FROM allowed`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	allowed := storage.Allowed{}
	for rows.Next() {
		var personID, product string
		var ok bool
		if err := rows.Scan(&personID, &product, &ok); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		if allowed[personID] == nil {
			allowed[personID] = map[string]bool{}
		}
		allowed[personID][product] = ok
	}

	return allowed, rows.Err()
}

func (s *Storage) LoadCategories(ctx context.Context) (storage.Categories, error) {
	const op = "storage.mysql.LoadCategories"

	rows, err := s.db.QueryContext(ctx, `SELECT person_id, category FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	cats := storage.Categories{}
	for rows.Next() {
		var personID string
		var cat storage.Category
		if err := rows.Scan(&personID, &cat); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		cats[personID] = cat
	}

	return cats, rows.Err()
}

// SetTarget writes one goal value. Targets are only editable for pairs whose
// permission is on.
func (s *Storage) SetTarget(ctx context.Context, personID, product string, value float64) error {
	const op = "storage.mysql.SetTarget"

	allowed, err := s.IsAllowed(ctx, personID, product)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !allowed {
		return fmt.Errorf("%s: person=%s product=%s: %w", op, personID, product, storage.ErrNotAllowed)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO targets (person_id, product, value)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)
	`, personID, product, value)
	if err != nil {
		return fmt.Errorf("%s: person=%s product=%s: %w", op, personID, product, err)
	}

	return nil
}

func (s *Storage) SetAllowed(ctx context.Context, personID, product string, allowed bool) error {
	const op = "storage.mysql.SetAllowed"

	if err := s.mustExist(ctx, personID, product); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO allowed (person_id, product, allowed)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE allowed = VALUES(allowed)
	`, personID, product, allowed)
	if err != nil {
		return fmt.Errorf("%s: person=%s product=%s: %w", op, personID, product, err)
	}

	return nil
}

// IsAllowed reports the stored permission for a pair. A pair with no row or
// an unknown person/product is not allowed.
func (s *Storage) IsAllowed(ctx context.Context, personID, product string) (bool, error) {
	const op = "storage.mysql.IsAllowed"

	if err := s.mustExist(ctx, personID, product); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var allowed bool
	err := s.db.QueryRowContext(ctx,
		`SELECT allowed FROM allowed WHERE person_id = ? AND product = ?`,
		personID, product).Scan(&allowed)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return allowed, nil
}

func (s *Storage) mustExist(ctx context.Context, personID, product string) error {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM persons WHERE id = ?`, personID).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("person id=%s: %w", personID, storage.ErrNotFound)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE name = ?`, product).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("product name=%s: %w", product, storage.ErrNotFound)
	}
	return nil
}

// ensureEntriesTx backfills missing target (0) and permission (true) rows for
// every non-LEAD person x product pair. INSERT IGNORE keeps it idempotent.
func ensureEntriesTx(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		INSERT IGNORE INTO targets (person_id, product, value)
		SELECT p.id, pr.name, 0
		FROM persons p CROSS JOIN products pr
		WHERE p.unit <> 'LEAD'
	`)
	if err != nil {
		return fmt.Errorf("backfill targets: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT IGNORE INTO allowed (person_id, product, allowed)
		SELECT p.id, pr.name, TRUE
		FROM persons p CROSS JOIN products pr
		WHERE p.unit <> 'LEAD'
	`)
	if err != nil {
		return fmt.Errorf("backfill allowed: %w", err)
	}

	return nil
}
