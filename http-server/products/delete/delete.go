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

type ProductDeleter interface {
	DeleteProduct(ctx context.Context, name string) error
}

// DeleteProduct removes the product column; historical targets and
// permissions stay stored.
func DeleteProduct(log *slog.Logger, deleter ProductDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.products.DeleteProduct"

		name := chi.URLParam(r, "name")
		if name == "" {
			http.Error(w, "Missing product name", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteProduct(ctx, name); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Product not found", http.StatusNotFound)
				return
			}
			log.Error("failed to delete product", slog.String("op", op),
				slog.String("name", name), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{"ok": true})
	}
}
