package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackfill_FillsMissingKeys(t *testing.T) {
	persons := []Person{
		{ID: "lead", Role: "BM", Unit: UnitLead},
		{ID: "p1", Role: "SGP", Unit: UnitMBM},
		{ID: "p2", Role: "Teller", Unit: UnitBOS},
	}
	products := []Product{{Name: "KUR"}, {Name: "LIVIN"}}

	targets, allowed := Backfill(nil, nil, persons, products)

	assert.Equal(t, 0.0, targets.Get("p1", "KUR"))
	assert.True(t, allowed.Get("p2", "LIVIN"))
	_, hasLead := targets["lead"]
	assert.False(t, hasLead, "LEAD gets no bookkeeping entries")
}

func TestBackfill_KeepsExistingValues(t *testing.T) {
	persons := []Person{{ID: "p1", Role: "SGP", Unit: UnitMBM}}
	products := []Product{{Name: "KUR"}, {Name: "LIVIN"}}

	targets := Targets{"p1": {"KUR": 500}}
	allowed := Allowed{"p1": {"KUR": false}}

	targets, allowed = Backfill(targets, allowed, persons, products)

	assert.Equal(t, 500.0, targets.Get("p1", "KUR"), "existing target untouched")
	assert.False(t, allowed.Get("p1", "KUR"), "revoked permission untouched")
	assert.Equal(t, 0.0, targets.Get("p1", "LIVIN"))
	assert.True(t, allowed.Get("p1", "LIVIN"))
}

func TestBackfill_Idempotent(t *testing.T) {
	persons := []Person{
		{ID: "p1", Role: "SGP", Unit: UnitMBM},
		{ID: "p2", Role: "Security", Unit: UnitBOS},
	}
	products := []Product{{Name: "KUR"}, {Name: "AXA"}}

	t1, a1 := Backfill(nil, nil, persons, products)
	t2, a2 := Backfill(t1, a1, persons, products)

	require.Equal(t, t1, t2)
	require.Equal(t, a1, a2)
}

func TestBackfill_HistoricalKeysSurviveChurn(t *testing.T) {
	persons := []Person{{ID: "p1", Role: "SGP", Unit: UnitMBM}}

	targets := Targets{"p1": {"OLD": 100}}
	allowed := Allowed{"p1": {"OLD": true}}

	// OLD is no longer in the product list; its keys stay.
	targets, allowed = Backfill(targets, allowed, persons, []Product{{Name: "KUR"}})

	assert.Equal(t, 100.0, targets.Get("p1", "OLD"))
	assert.True(t, allowed.Get("p1", "OLD"))
	assert.Equal(t, 0.0, targets.Get("p1", "KUR"))
}
