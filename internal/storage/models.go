package storage

type Unit string

const (
	UnitMBM    Unit = "MBM"
	UnitBOS    Unit = "BOS"
	UnitSocial Unit = "SOCIAL"
	UnitSGK    Unit = "SGK"
	UnitLead   Unit = "LEAD"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitMBM, UnitBOS, UnitSocial, UnitSGK, UnitLead:
		return true
	}
	return false
}

type ProductType string

const (
	TypeMoney ProductType = "money"
	TypeUnit  ProductType = "unit"
)

func (t ProductType) Valid() bool {
	return t == TypeMoney || t == TypeUnit
}

type Category string

const (
	CategoryMikro       Category = "MIKRO"
	CategoryOperasional Category = "OPERASIONAL"
)

type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	Unit Unit   `json:"unit"`
}

type Product struct {
	Name string      `json:"name"`
	Type ProductType `json:"type"`
}

type Achievement struct {
	ID       string  `json:"id"`
	PersonID string  `json:"personId"`
	Product  string  `json:"product"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"` // YYYY-MM-DD
}

// Targets maps personId -> productName -> goal. A missing key means 0.
type Targets map[string]map[string]float64

func (t Targets) Get(personID, product string) float64 {
	return t[personID][product]
}

// Allowed maps personId -> productName -> permission. A missing key means false.
type Allowed map[string]map[string]bool

func (a Allowed) Get(personID, product string) bool {
	return a[personID][product]
}

// Categories maps personId -> leaderboard category, stored at person creation.
type Categories map[string]Category

// Snapshot is one consistent read of everything the aggregation engine needs.
type Snapshot struct {
	Persons      []Person
	Products     []Product
	Achievements []Achievement
	Targets      Targets
	Allowed      Allowed
	Categories   Categories
}

// Backfill adds a target (0) and a permission (true) entry for every non-LEAD
// person x product pair that lacks one. Existing entries are never touched,
// so running it twice is the same as running it once.
func Backfill(targets Targets, allowed Allowed, persons []Person, products []Product) (Targets, Allowed) {
	if targets == nil {
		targets = Targets{}
	}
	if allowed == nil {
		allowed = Allowed{}
	}

	for _, p := range persons {
		if p.Unit == UnitLead {
			continue
		}
		if targets[p.ID] == nil {
			targets[p.ID] = map[string]float64{}
		}
		if allowed[p.ID] == nil {
			allowed[p.ID] = map[string]bool{}
		}
		for _, prod := range products {
			if _, ok := targets[p.ID][prod.Name]; !ok {
				targets[p.ID][prod.Name] = 0
			}
			if _, ok := allowed[p.ID][prod.Name]; !ok {
				allowed[p.ID][prod.Name] = true
			}
		}
	}

	return targets, allowed
}
