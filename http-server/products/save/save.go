package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"team-portal/internal/storage"
)

type ProductSaver interface {
	UpsertProduct(ctx context.Context, p storage.Product) error
}

// SaveProduct adds a product column. Every existing person gains a zero
// target and an on permission for it via the storage backfill.
func SaveProduct(log *slog.Logger, saver ProductSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.products.SaveProduct"

		var req storage.Product
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			http.Error(w, "Product name is required", http.StatusBadRequest)
			return
		}
		if !req.Type.Valid() {
			http.Error(w, "Product type must be 'money' or 'unit'", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.UpsertProduct(ctx, req); err != nil {
			log.Error("failed to save product", slog.String("op", op),
				slog.String("name", req.Name), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]interface{}{"ok": true})
	}
}
