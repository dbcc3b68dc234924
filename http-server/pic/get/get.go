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

type OptionsProvider interface {
	Snapshot(ctx context.Context, from, to string) (*storage.Snapshot, error)
}

type PersonOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type Response struct {
	Ok       bool           `json:"ok"`
	Persons  []PersonOption `json:"persons"`
	Products []string       `json:"products"`
}

// PicOptions feeds the no-login entry form: the selectable persons and the
// products of the requested category, narrowed to what the chosen person is
// permitted for when ?personId= is given.
func PicOptions(log *slog.Logger, provider OptionsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pic.PicOptions"

		cat := storage.Category(strings.ToUpper(r.URL.Query().Get("category")))
		if cat == "" {
			cat = storage.CategoryMikro
		}
		if cat != storage.CategoryMikro && cat != storage.CategoryOperasional {
			http.Error(w, "category must be MIKRO or OPERASIONAL", http.StatusBadRequest)
			return
		}
		personID := r.URL.Query().Get("personId")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		snap, err := provider.Snapshot(ctx, "", "")
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load snapshot")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		resp := Response{Ok: true}
		for _, p := range snap.Persons {
			if p.Unit == storage.UnitLead {
				continue
			}
			resp.Persons = append(resp.Persons, PersonOption{ID: p.ID, Name: p.Name, Role: p.Role})
		}

		for _, name := range aggregate.PICProducts(snap.Products, cat) {
			if personID != "" && !snap.Allowed.Get(personID, name) {
				continue
			}
			resp.Products = append(resp.Products, name)
		}

		render.JSON(w, r, resp)
	}
}
