package get

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"team-portal/internal/service/aggregate"
	"team-portal/internal/storage"
)

type SnapshotProvider interface {
	Snapshot(ctx context.Context, from, to string) (*storage.Snapshot, error)
}

type Cell struct {
	Product   string              `json:"product"`
	Type      storage.ProductType `json:"type"`
	Value     float64             `json:"value"`
	Target    float64             `json:"target"`
	Percent   int                 `json:"percent"`
	HasTarget bool                `json:"hasTarget"`
}

type PersonView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Cells []Cell `json:"cells"`
}

type UnitView struct {
	Unit     storage.Unit `json:"unit"`
	Total    float64      `json:"total"`
	Products []string     `json:"products"`
	People   []PersonView `json:"people"`
}

type Response struct {
	Ok           bool       `json:"ok"`
	TotalMembers int        `json:"totalMembers"`
	MonthInputs  int        `json:"monthInputs"`
	Micro        float64    `json:"micro"`
	Operational  float64    `json:"operational"`
	Units        []UnitView `json:"units"`
}

// Dashboard composes the overview payload: headline stats plus per-unit
// boards. ?unit= narrows the response to one board. A disallowed product
// simply has no cell for that person, hiding any historical credit the pair
// may still carry.
func Dashboard(log *slog.Logger, provider SnapshotProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dashboard.Dashboard"

		units := []storage.Unit{storage.UnitMBM, storage.UnitBOS, storage.UnitSocial, storage.UnitSGK}
		if q := r.URL.Query().Get("unit"); q != "" {
			u := storage.Unit(strings.ToUpper(q))
			if !u.Valid() || u == storage.UnitLead {
				http.Error(w, "Unknown unit", http.StatusBadRequest)
				return
			}
			units = []storage.Unit{u}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		snap, err := provider.Snapshot(ctx, "", "")
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load snapshot")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		idx := aggregate.BuildIndex(snap.Achievements)
		thisMonth := time.Now().Format("2006-01")

		resp := Response{
			Ok:          true,
			Micro:       aggregate.MicroTotal(snap),
			Operational: aggregate.UnitTotal(snap, storage.UnitBOS),
		}
		for _, p := range snap.Persons {
			if p.Unit != storage.UnitLead {
				resp.TotalMembers++
			}
		}
		for _, a := range snap.Achievements {
			if strings.HasPrefix(a.Date, thisMonth) {
				resp.MonthInputs++
			}
		}

		for _, unit := range units {
			resp.Units = append(resp.Units, buildUnitView(snap, idx, unit))
		}

		render.JSON(w, r, resp)
	}
}

func buildUnitView(snap *storage.Snapshot, idx aggregate.Index, unit storage.Unit) UnitView {
	view := UnitView{Unit: unit, Total: aggregate.UnitTotal(snap, unit)}

	var members []storage.Person
	for _, p := range snap.Persons {
		if p.Unit == unit && !aggregate.IsSupervisor(p.Role) {
			members = append(members, p)
		}
	}

	// A product column shows up when at least one member is permitted for it.
	for _, cfg := range snap.Products {
		for _, p := range members {
			if snap.Allowed.Get(p.ID, cfg.Name) {
				view.Products = append(view.Products, cfg.Name)
				break
			}
		}
	}

	for _, p := range members {
		pv := PersonView{ID: p.ID, Name: p.Name, Role: p.Role}
		for _, cfg := range snap.Products {
			if !snap.Allowed.Get(p.ID, cfg.Name) {
				continue
			}
			value := idx.Get(p.ID, cfg.Name)
			target := snap.Targets.Get(p.ID, cfg.Name)
			pct, hasTarget := aggregate.Percent(value, target)
			pv.Cells = append(pv.Cells, Cell{
				Product:   cfg.Name,
				Type:      cfg.Type,
				Value:     value,
				Target:    target,
				Percent:   pct,
				HasTarget: hasTarget,
			})
		}
		view.People = append(view.People, pv)
	}

	return view
}
