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

type AchievementDeleter interface {
	DeleteAchievement(ctx context.Context, id string) error
}

func DeleteAchievement(log *slog.Logger, deleter AchievementDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.achievements.DeleteAchievement"

		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Missing achievement id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteAchievement(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Achievement not found", http.StatusNotFound)
				return
			}
			log.Error("failed to delete achievement", slog.String("op", op),
				slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{"ok": true})
	}
}
