package aggregate

import (
	"math"
	"sort"

	"team-portal/internal/storage"
)

// Ratio is the clamped goal-completion fraction min(1, value/target). The
// second return value is false when target is zero or negative: no goal has
// been set, and the pair must be excluded from scoring instead of counting
// as a failed 0%.
func Ratio(value, target float64) (float64, bool) {
	if target <= 0 {
		return 0, false
	}
	return math.Min(1, value/target), true
}

// Percent renders a ratio as a whole percentage clamped to [0, 100] for bar
// display. False when no goal is set.
func Percent(value, target float64) (int, bool) {
	r, ok := Ratio(value, target)
	if !ok {
		return 0, false
	}
	return int(math.Round(r * 100)), true
}

// FairnessScore averages the clamped ratio across the products the person is
// permitted for and that carry a nonzero target. It returns the score in
// [0, 1] and how many products were counted; zero counted products score 0.
func FairnessScore(personID string, products []storage.Product, idx Index, targets storage.Targets, allowed storage.Allowed) (float64, int) {
	var sumRatio float64
	var counted int

	for _, cfg := range products {
		if !allowed.Get(personID, cfg.Name) {
			continue
		}
		r, ok := Ratio(idx.Get(personID, cfg.Name), targets.Get(personID, cfg.Name))
		if !ok {
			continue
		}
		sumRatio += r
		counted++
	}

	if counted == 0 {
		return 0, 0
	}
	return sumRatio / float64(counted), counted
}

// Entry is one leaderboard row.
type Entry struct {
	PersonID string       `json:"personId"`
	Name     string       `json:"name"`
	Role     string       `json:"role"`
	Unit     storage.Unit `json:"unit"`
	Score    float64      `json:"score"`
	Total    float64      `json:"total"`
	Rank     int          `json:"rank"`
}

// Leaderboard ranks every non-LEAD person inside their category. The
// snapshot's achievements are expected to already be limited to the
// reporting window. Persons with nothing to show (no counted product and an
// all-zero total) are omitted. Sort is descending by score, ties broken by
// descending total, further ties keep enumeration order.
func Leaderboard(snap *storage.Snapshot) (mikro, operasional []Entry) {
	idx := BuildIndex(snap.Achievements)

	var all []Entry
	byCat := map[string]storage.Category{}

	for _, p := range snap.Persons {
		if p.Unit == storage.UnitLead {
			continue
		}

		score, counted := FairnessScore(p.ID, snap.Products, idx, snap.Targets, snap.Allowed)
		total := idx.Total(p.ID)
		if counted == 0 && total == 0 {
			continue
		}

		cat, ok := snap.Categories[p.ID]
		if !ok {
			cat = DefaultCategory(p)
		}
		byCat[p.ID] = cat

		all = append(all, Entry{
			PersonID: p.ID,
			Name:     p.Name,
			Role:     p.Role,
			Unit:     p.Unit,
			Score:    score,
			Total:    total,
		})
	}

	rank := func(entries []Entry) []Entry {
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Score != entries[j].Score {
				return entries[i].Score > entries[j].Score
			}
			return entries[i].Total > entries[j].Total
		})
		for i := range entries {
			entries[i].Rank = i + 1
		}
		return entries
	}

	for _, e := range all {
		if byCat[e.PersonID] == storage.CategoryOperasional {
			operasional = append(operasional, e)
		} else {
			mikro = append(mikro, e)
		}
	}

	return rank(mikro), rank(operasional)
}
