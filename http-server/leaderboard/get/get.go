package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"team-portal/internal/service/aggregate"
	"team-portal/internal/service/report"
	"team-portal/internal/storage"
)

type SnapshotProvider interface {
	Snapshot(ctx context.Context, from, to string) (*storage.Snapshot, error)
}

type Response struct {
	Ok          bool              `json:"ok"`
	Month       string            `json:"month"`
	Mikro       []aggregate.Entry `json:"mikro"`
	Operasional []aggregate.Entry `json:"operasional"`
}

// GetLeaderboard computes the two ranked lists for ?month= (default: the
// current month).
func GetLeaderboard(log *slog.Logger, provider SnapshotProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.leaderboard.GetLeaderboard"

		month := r.URL.Query().Get("month")
		if month == "" {
			month = time.Now().Format("2006-01")
		}

		from, to, err := report.MonthRange(month)
		if err != nil {
			http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		snap, err := provider.Snapshot(ctx, from, to)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load snapshot")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		mikro, operasional := aggregate.Leaderboard(snap)

		render.JSON(w, r, Response{Ok: true, Month: month, Mikro: mikro, Operasional: operasional})
	}
}
