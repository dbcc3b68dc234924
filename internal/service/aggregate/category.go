package aggregate

import (
	"regexp"
	"strings"

	"team-portal/internal/storage"
)

// DefaultCategory derives a person's leaderboard category from role and
// unit. It runs once when the person is created and the result is stored, so
// later role edits do not silently move people between boards.
func DefaultCategory(p storage.Person) storage.Category {
	if strings.Contains(strings.ToLower(p.Role), "security") ||
		p.Unit == storage.UnitSGK || p.Unit == storage.UnitSocial {
		return storage.CategoryOperasional
	}
	return storage.CategoryMikro
}

// Operational product names for the PIC entry form dropdown.
var picOperationalRe = regexp.MustCompile(`(?i)(sgk|bansos|secur)`)

// PICProducts partitions the product list for the self-service entry form:
// names mentioning sgk/bansos/security belong to the OPERASIONAL tab, the
// rest to MIKRO.
func PICProducts(products []storage.Product, cat storage.Category) []string {
	var names []string
	for _, p := range products {
		isOp := picOperationalRe.MatchString(p.Name)
		if (cat == storage.CategoryOperasional) == isOp {
			names = append(names, p.Name)
		}
	}
	return names
}
