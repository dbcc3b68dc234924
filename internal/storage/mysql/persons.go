package mysql

import (
	"context"
	"fmt"

	"team-portal/internal/storage"
)

func (s *Storage) ListPersons(ctx context.Context) ([]storage.Person, error) {
	const op = "storage.mysql.ListPersons"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, role, unit FROM persons ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var persons []storage.Person
	for rows.Next() {
		var p storage.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.Unit); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		persons = append(persons, p)
	}

	return persons, rows.Err()
}

// UpsertPersons inserts or updates a batch of persons and, in the same
// transaction, stores each new person's category and backfills target and
// permission keys for the current product list.
func (s *Storage) UpsertPersons(ctx context.Context, persons []storage.Person, cats storage.Categories) error {
	const op = "storage.mysql.UpsertPersons"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO persons (id, name, role, unit)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			role = VALUES(role),
			unit = VALUES(unit)
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	for _, p := range persons {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Role, p.Unit); err != nil {
			return fmt.Errorf("%s: upsert person id=%s: %w", op, p.ID, err)
		}

		// Category is assigned once; an existing row wins over the default.
		if cat, ok := cats[p.ID]; ok {
			_, err := tx.ExecContext(ctx,
				`INSERT IGNORE INTO categories (person_id, category) VALUES (?, ?)`,
				p.ID, cat)
			if err != nil {
				return fmt.Errorf("%s: category for id=%s: %w", op, p.ID, err)
			}
		}
	}

	if err := ensureEntriesTx(ctx, tx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

// DeletePerson removes a person and cascades to their achievements, targets,
// permissions and category in one transaction. The LEAD person is protected.
func (s *Storage) DeletePerson(ctx context.Context, id string) error {
	const op = "storage.mysql.DeletePerson"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var unit storage.Unit
	err = tx.QueryRowContext(ctx, `SELECT unit FROM persons WHERE id = ?`, id).Scan(&unit)
	if err != nil {
		if isNoRows(err) {
			return fmt.Errorf("%s: id=%s: %w", op, id, storage.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if unit == storage.UnitLead {
		return fmt.Errorf("%s: id=%s: %w", op, id, storage.ErrLeadImmutable)
	}

	for _, q := range []string{
		`DELETE FROM achievements WHERE person_id = ?`,
		`DELETE FROM targets WHERE person_id = ?`,
		`DELETE FROM allowed WHERE person_id = ?`,
		`DELETE FROM categories WHERE person_id = ?`,
		`DELETE FROM persons WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("%s: cascade for id=%s: %w", op, id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}
