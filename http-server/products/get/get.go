package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"team-portal/internal/storage"
)

type ProductLister interface {
	ListProducts(ctx context.Context) ([]storage.Product, error)
}

func GetProducts(log *slog.Logger, products ProductLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.products.GetProducts"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := products.ListProducts(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to list products")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{"ok": true, "products": list})
	}
}
