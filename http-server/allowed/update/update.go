package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"team-portal/internal/storage"
)

type PermissionSetter interface {
	SetAllowed(ctx context.Context, personID, product string, allowed bool) error
}

type Request struct {
	PersonID string `json:"personId"`
	Product  string `json:"product"`
	Allowed  bool   `json:"allowed"`
}

// UpdateAllowed flips the permission for one (person, product) pair.
// Existing achievements on the pair are untouched either way.
func UpdateAllowed(log *slog.Logger, perms PermissionSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.allowed.UpdateAllowed"

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

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := perms.SetAllowed(ctx, req.PersonID, req.Product, req.Allowed); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Unknown person or product", http.StatusNotFound)
				return
			}
			log.Error("failed to set permission", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{"ok": true})
	}
}
