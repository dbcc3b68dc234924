package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"team-portal/internal/storage"
)

func TestBuildIndex_SumsPerPersonPerProduct(t *testing.T) {
	achs := []storage.Achievement{
		{ID: "1", PersonID: "p1", Product: "KUR", Amount: 100},
		{ID: "2", PersonID: "p1", Product: "KUR", Amount: 50},
		{ID: "3", PersonID: "p2", Product: "KUR", Amount: 10},
	}

	idx := BuildIndex(achs)

	assert.Equal(t, 150.0, idx.Get("p1", "KUR"))
	assert.Equal(t, 10.0, idx.Get("p2", "KUR"))
	assert.Equal(t, 0.0, idx.Get("p1", "LIVIN"), "absent key must read as 0")
	assert.Equal(t, 0.0, idx.Get("nobody", "KUR"))
}

func TestBuildIndex_NonFiniteAmountsCountAsZero(t *testing.T) {
	achs := []storage.Achievement{
		{ID: "1", PersonID: "p1", Product: "KUR", Amount: math.NaN()},
		{ID: "2", PersonID: "p1", Product: "KUR", Amount: math.Inf(1)},
		{ID: "3", PersonID: "p1", Product: "KUR", Amount: 25},
	}

	idx := BuildIndex(achs)

	assert.Equal(t, 25.0, idx.Get("p1", "KUR"))
}

func TestIsSupervisor_WholeTokenMatch(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{"MBM", true},
		{"BOS Supervisor", true},
		{"BM", true},
		{"bos", true},
		{"BOSS", false},
		{"Teller", false},
		{"SGP", false},
		{"Customer Service", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSupervisor(tt.role), "role %q", tt.role)
	}
}

func TestUnitTotal_ExcludesSupervisors(t *testing.T) {
	snap := &storage.Snapshot{
		Persons: []storage.Person{
			{ID: "sup", Name: "Sup", Role: "BOS Supervisor", Unit: storage.UnitBOS},
			{ID: "teller", Name: "Teller", Role: "Teller", Unit: storage.UnitBOS},
			{ID: "sgp", Name: "Sgp", Role: "SGP", Unit: storage.UnitMBM},
		},
		Achievements: []storage.Achievement{
			{ID: "1", PersonID: "sup", Product: "LIVIN", Amount: 999},
			{ID: "2", PersonID: "teller", Product: "LIVIN", Amount: 5},
			{ID: "3", PersonID: "sgp", Product: "KUR", Amount: 100},
		},
	}

	assert.Equal(t, 5.0, UnitTotal(snap, storage.UnitBOS),
		"supervisor entries must not count toward the unit")
	assert.Equal(t, 100.0, UnitTotal(snap, storage.UnitMBM))
}

func TestMicroTotal_RestrictsToKURKUMInMBM(t *testing.T) {
	snap := &storage.Snapshot{
		Persons: []storage.Person{
			{ID: "sgp", Role: "SGP", Unit: storage.UnitMBM},
			{ID: "teller", Role: "Teller", Unit: storage.UnitBOS},
		},
		Achievements: []storage.Achievement{
			{ID: "1", PersonID: "sgp", Product: "KUR", Amount: 100},
			{ID: "2", PersonID: "sgp", Product: "kum", Amount: 40},
			{ID: "3", PersonID: "sgp", Product: "LIVIN", Amount: 7},
			{ID: "4", PersonID: "teller", Product: "KUR", Amount: 50},
		},
	}

	// case-insensitive product match, MBM only, LIVIN excluded
	assert.Equal(t, 140.0, MicroTotal(snap))
}
