package save

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
	"github.com/google/uuid"

	"team-portal/internal/storage"
)

type AchievementSaver interface {
	IsAllowed(ctx context.Context, personID, product string) (bool, error)
	InsertAchievement(ctx context.Context, a storage.Achievement) (storage.Achievement, error)
}

type Request struct {
	ID       string  `json:"id,omitempty"`
	PersonID string  `json:"personId"`
	Product  string  `json:"product"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
}

// SaveAchievement records one entry. The permission gate lives here, at the
// command surface: a pair whose permission is off is rejected with 403, but
// rows written before a permission was revoked stay in the data. A
// client-supplied id acts as an idempotency key.
func SaveAchievement(log *slog.Logger, saver AchievementSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.achievements.SaveAchievement"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		req.PersonID = strings.TrimSpace(req.PersonID)
		req.Product = strings.TrimSpace(req.Product)

		if req.PersonID == "" || req.Product == "" {
			http.Error(w, "personId and product are required", http.StatusBadRequest)
			return
		}
		if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) || req.Amount < 0 {
			http.Error(w, "amount must be a non-negative number", http.StatusBadRequest)
			return
		}
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		allowed, err := saver.IsAllowed(ctx, req.PersonID, req.Product)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Unknown person or product", http.StatusNotFound)
				return
			}
			log.Error("permission lookup failed", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if !allowed {
			log.Warn("rejected entry for disallowed pair", slog.String("op", op),
				slog.String("person", req.PersonID), slog.String("product", req.Product))
			http.Error(w, "Product not allowed for this person", http.StatusForbidden)
			return
		}

		id := req.ID
		if id == "" {
			id = uuid.NewString()
		}

		row, err := saver.InsertAchievement(ctx, storage.Achievement{
			ID:       id,
			PersonID: req.PersonID,
			Product:  req.Product,
			Amount:   req.Amount,
			Date:     req.Date,
		})
		if err != nil {
			log.Error("failed to insert achievement", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]interface{}{"ok": true, "row": row})
	}
}
