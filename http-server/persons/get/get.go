package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"team-portal/internal/storage"
)

type PersonLister interface {
	ListPersons(ctx context.Context) ([]storage.Person, error)
}

func GetPersons(log *slog.Logger, persons PersonLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.persons.GetPersons"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := persons.ListPersons(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to list persons")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{"ok": true, "persons": list})
	}
}
