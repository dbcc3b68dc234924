package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"team-portal/internal/storage"
)

type TargetSetter interface {
	SetTarget(ctx context.Context, personID, product string, value float64) error
}

type Request struct {
	PersonID string  `json:"personId"`
	Product  string  `json:"product"`
	Value    float64 `json:"value"`
}

// UpdateTarget sets one goal value. Targets are only editable while the
// pair's permission is on.
func UpdateTarget(log *slog.Logger, targets TargetSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.targets.UpdateTarget"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.PersonID) == "" || strings.TrimSpace(req.Product) == "" {
			http.Error(w, "personId and product are required", http.StatusBadRequest)
			return
		}
		if math.IsNaN(req.Value) || math.IsInf(req.Value, 0) || req.Value < 0 {
			http.Error(w, "value must be a non-negative number", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := targets.SetTarget(ctx, req.PersonID, req.Product, req.Value); err != nil {
			switch {
			case errors.Is(err, storage.ErrNotFound):
				http.Error(w, "Unknown person or product", http.StatusNotFound)
			case errors.Is(err, storage.ErrNotAllowed):
				http.Error(w, "Product not allowed for this person", http.StatusForbidden)
			default:
				log.Error("failed to set target", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, r, map[string]interface{}{"ok": true})
	}
}
