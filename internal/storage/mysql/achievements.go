package mysql

import (
	"context"
	"fmt"

	"team-portal/internal/storage"
)

// ListAchievements returns achievements inside [from, to) when both bounds
// are given, otherwise the latest 500 entries.
func (s *Storage) ListAchievements(ctx context.Context, from, to string) ([]storage.Achievement, error) {
	const op = "storage.mysql.ListAchievements"

	query := `
		SELECT id, person_id, product, amount, DATE_FORMAT(date, '%Y-%m-%d')
		FROM achievements
		ORDER BY date DESC, id DESC
		LIMIT 500`
	var args []interface{}

	if from != "" && to != "" {
		query = `
			SELECT id, person_id, product, amount, DATE_FORMAT(date, '%Y-%m-%d')
			FROM achievements
			WHERE date >= ? AND date < ?
			ORDER BY date DESC, id DESC`
		args = append(args, from, to)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var achs []storage.Achievement
	for rows.Next() {
		var a storage.Achievement
		if err := rows.Scan(&a.ID, &a.PersonID, &a.Product, &a.Amount, &a.Date); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		achs = append(achs, a)
	}

	return achs, rows.Err()
}

// InsertAchievement stores one entry. The id acts as an idempotency key:
// inserting an id that already exists is a no-op, so a duplicated submit
// does not double-count.
func (s *Storage) InsertAchievement(ctx context.Context, a storage.Achievement) (storage.Achievement, error) {
	const op = "storage.mysql.InsertAchievement"

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM persons WHERE id = ?`, a.PersonID).Scan(&exists)
	if err != nil {
		return storage.Achievement{}, fmt.Errorf("%s: %w", op, err)
	}
	if exists == 0 {
		return storage.Achievement{}, fmt.Errorf("%s: person id=%s: %w", op, a.PersonID, storage.ErrNotFound)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE name = ?`, a.Product).Scan(&exists)
	if err != nil {
		return storage.Achievement{}, fmt.Errorf("%s: %w", op, err)
	}
	if exists == 0 {
		return storage.Achievement{}, fmt.Errorf("%s: product name=%s: %w", op, a.Product, storage.ErrNotFound)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT IGNORE INTO achievements (id, person_id, product, amount, date)
		VALUES (?, ?, ?, ?, ?)
	`, a.ID, a.PersonID, a.Product, a.Amount, a.Date)
	if err != nil {
		return storage.Achievement{}, fmt.Errorf("%s: insert id=%s: %w", op, a.ID, err)
	}

	return a, nil
}

func (s *Storage) DeleteAchievement(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteAchievement"

	res, err := s.db.ExecContext(ctx, `DELETE FROM achievements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: id=%s: %w", op, id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: id=%s: %w", op, id, storage.ErrNotFound)
	}

	return nil
}
