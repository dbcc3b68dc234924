package delete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"team-portal/internal/storage"
)

type PersonDeleter interface {
	DeletePerson(ctx context.Context, id string) error
}

// DeletePerson removes a person and everything referencing them. The LEAD
// person is refused.
func DeletePerson(log *slog.Logger, deleter PersonDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.persons.DeletePerson"

		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Missing person id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeletePerson(ctx, id); err != nil {
			switch {
			case errors.Is(err, storage.ErrNotFound):
				http.Error(w, "Person not found", http.StatusNotFound)
			case errors.Is(err, storage.ErrLeadImmutable):
				http.Error(w, "LEAD person cannot be deleted", http.StatusBadRequest)
			default:
				log.Error("failed to delete person", slog.String("op", op),
					slog.String("id", id), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, r, map[string]interface{}{"ok": true})
	}
}
