package save

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"team-portal/internal/service/aggregate"
	"team-portal/internal/storage"
)

type PersonSaver interface {
	UpsertPersons(ctx context.Context, persons []storage.Person, cats storage.Categories) error
}

type Request struct {
	Persons []storage.Person `json:"persons"`
}

// SavePersons upserts a batch of persons. New ids get their leaderboard
// category assigned here, once; the storage layer backfills target and
// permission keys afterwards.
func SavePersons(log *slog.Logger, saver PersonSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.persons.SavePersons"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if len(req.Persons) == 0 {
			http.Error(w, "No persons", http.StatusBadRequest)
			return
		}

		cats := storage.Categories{}
		for i, p := range req.Persons {
			if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
				http.Error(w, fmt.Sprintf("Person %d: id and name are required", i), http.StatusBadRequest)
				return
			}
			if !p.Unit.Valid() {
				http.Error(w, fmt.Sprintf("Person %d: unknown unit %q", i, p.Unit), http.StatusBadRequest)
				return
			}
			// The single LEAD row comes from the seed and never through
			// this endpoint.
			if p.Unit == storage.UnitLead {
				http.Error(w, fmt.Sprintf("Person %d: unit LEAD cannot be assigned", i), http.StatusBadRequest)
				return
			}
			cats[p.ID] = aggregate.DefaultCategory(p)
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.UpsertPersons(ctx, req.Persons, cats); err != nil {
			log.Error("failed to save persons", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{"ok": true, "count": len(req.Persons)})
	}
}
