package mysql

import (
	"context"
	"fmt"

	"team-portal/internal/storage"
)

// Default branch org and product columns, inserted only when the tables are
// empty so a fresh install starts with something to look at.
var defaultOrg = []storage.Person{
	{ID: "lead-1", Name: "Branch Manager — Sukamara", Role: "BM", Unit: storage.UnitLead},
	{ID: "mbm-1", Name: "Micro Banking Manager", Role: "MBM", Unit: storage.UnitMBM},
	{ID: "sgp-dodi", Name: "Dodi", Role: "SGP", Unit: storage.UnitMBM},
	{ID: "sgp-ramadiansyah", Name: "Ramadiansyah", Role: "SGP", Unit: storage.UnitMBM},
	{ID: "sgp-randi", Name: "Randi", Role: "SGP", Unit: storage.UnitMBM},
	{ID: "bos-1", Name: "Branch Operasional Supervisor", Role: "BOS", Unit: storage.UnitBOS},
	{ID: "teller-veronika", Name: "Veronika", Role: "Teller", Unit: storage.UnitBOS},
	{ID: "cs-mulyati", Name: "Mulyati Mukhtar", Role: "Customer Service", Unit: storage.UnitBOS},
	{ID: "sec-shofiyani", Name: "Shofiyani", Role: "Security", Unit: storage.UnitBOS},
	{ID: "sec-dede", Name: "Dede Rahul", Role: "Security", Unit: storage.UnitBOS},
	{ID: "social-suci", Name: "Suci", Role: "Bansos", Unit: storage.UnitSocial},
	{ID: "social-aisyah", Name: "Aisyah", Role: "Bansos", Unit: storage.UnitSocial},
	{ID: "sgk-galih", Name: "Galih Putra", Role: "SGK", Unit: storage.UnitSGK},
}

var defaultProducts = []storage.Product{
	{Name: "KUR", Type: storage.TypeMoney},
	{Name: "LIVIN", Type: storage.TypeUnit},
	{Name: "AXA", Type: storage.TypeUnit},
}

// SeedDefaults populates an empty database with the default org, products,
// categories and the backfilled target/permission rows.
func (s *Storage) SeedDefaults(ctx context.Context, categoryOf func(storage.Person) storage.Category) error {
	const op = "storage.mysql.SeedDefaults"

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM persons`).Scan(&n); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n > 0 {
		return nil
	}

	for _, p := range defaultProducts {
		_, err := s.db.ExecContext(ctx,
			`INSERT IGNORE INTO products (name, type) VALUES (?, ?)`, p.Name, p.Type)
		if err != nil {
			return fmt.Errorf("%s: product %s: %w", op, p.Name, err)
		}
	}

	cats := storage.Categories{}
	for _, p := range defaultOrg {
		if p.Unit != storage.UnitLead {
			cats[p.ID] = categoryOf(p)
		}
	}

	if err := s.UpsertPersons(ctx, defaultOrg, cats); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
