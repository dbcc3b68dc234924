package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"team-portal/internal/storage"
)

type AchievementLister interface {
	ListAchievements(ctx context.Context, from, to string) ([]storage.Achievement, error)
}

// GetAchievements lists entries, windowed by ?from=&to= (from inclusive, to
// exclusive) or the latest 500 when no window is given.
func GetAchievements(log *slog.Logger, achievements AchievementLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.achievements.GetAchievements"

		from := r.URL.Query().Get("from")
		to := r.URL.Query().Get("to")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, err := achievements.ListAchievements(ctx, from, to)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to list achievements")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{"ok": true, "rows": rows})
	}
}
