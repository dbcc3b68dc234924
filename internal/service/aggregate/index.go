// Package aggregate holds the pure calculation layer: the person-product
// index, progress ratios, unit totals and the fair-ranking leaderboard.
// Everything here works on an in-memory snapshot and never touches storage.
package aggregate

import (
	"math"
	"regexp"
	"strings"

	"team-portal/internal/storage"
)

// Index maps personId -> productName -> summed amount.
type Index map[string]map[string]float64

// BuildIndex sums achievement amounts per person per product. Non-finite
// amounts count as zero.
func BuildIndex(achs []storage.Achievement) Index {
	idx := Index{}
	for _, a := range achs {
		amount := a.Amount
		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			amount = 0
		}
		m := idx[a.PersonID]
		if m == nil {
			m = map[string]float64{}
			idx[a.PersonID] = m
		}
		m[a.Product] += amount
	}
	return idx
}

// Get returns the summed amount for a pair, 0 for an absent key.
func (idx Index) Get(personID, product string) float64 {
	return idx[personID][product]
}

// Total returns a person's summed amount across all products.
func (idx Index) Total(personID string) float64 {
	var total float64
	for _, v := range idx[personID] {
		total += v
	}
	return total
}

// Supervisory roles never count toward unit totals, even when the person is
// a member of the unit. Whole-token match: "BOS Supervisor" matches, "BOSS"
// does not.
var supervisorRe = regexp.MustCompile(`(?i)\b(MBM|BOS|BM)\b`)

func IsSupervisor(role string) bool {
	return supervisorRe.MatchString(role)
}

// UnitTotal sums all achievements of a unit's non-supervisor members.
func UnitTotal(snap *storage.Snapshot, unit storage.Unit) float64 {
	idx := BuildIndex(snap.Achievements)

	var total float64
	for _, p := range snap.Persons {
		if p.Unit != unit || IsSupervisor(p.Role) {
			continue
		}
		total += idx.Total(p.ID)
	}
	return total
}

// UnitTotalForProducts is UnitTotal restricted to a case-insensitive product
// allow-list.
func UnitTotalForProducts(snap *storage.Snapshot, unit storage.Unit, products []string) float64 {
	set := map[string]bool{}
	for _, name := range products {
		set[strings.ToLower(name)] = true
	}

	members := map[string]bool{}
	for _, p := range snap.Persons {
		if p.Unit == unit && !IsSupervisor(p.Role) {
			members[p.ID] = true
		}
	}

	var total float64
	for _, a := range snap.Achievements {
		if !members[a.PersonID] || !set[strings.ToLower(a.Product)] {
			continue
		}
		amount := a.Amount
		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			amount = 0
		}
		total += amount
	}
	return total
}

// MicroProducts is the fixed allow-list behind the "Micro" headline number.
var MicroProducts = []string{"KUR", "KUM"}

// MicroTotal is the KUR/KUM total of the MBM unit.
func MicroTotal(snap *storage.Snapshot) float64 {
	return UnitTotalForProducts(snap, storage.UnitMBM, MicroProducts)
}
