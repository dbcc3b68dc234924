package mysql

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"team-portal/internal/storage"
)

// Snapshot loads all five collections for one aggregation pass. When from/to
// are set only achievements inside [from, to) are loaded. The target and
// permission maps are backfilled in memory so the view layer never sees a
// missing key.
func (s *Storage) Snapshot(ctx context.Context, from, to string) (*storage.Snapshot, error) {
	const op = "storage.mysql.Snapshot"

	var snap storage.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Persons, err = s.ListPersons(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Products, err = s.ListProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Achievements, err = s.ListAchievements(gctx, from, to)
		return err
	})
	g.Go(func() (err error) {
		snap.Targets, err = s.LoadTargets(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Allowed, err = s.LoadAllowed(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Categories, err = s.LoadCategories(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	snap.Targets, snap.Allowed = storage.Backfill(snap.Targets, snap.Allowed, snap.Persons, snap.Products)

	return &snap, nil
}
