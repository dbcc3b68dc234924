package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"team-portal/internal/service/report"
)

type RecapGenerator interface {
	GenerateCSV(ctx context.Context, month string) ([]byte, string, error)
	GenerateExcel(ctx context.Context, month string) ([]byte, string, error)
}

// ExportCSV streams the monthly recap as a CSV download.
func ExportCSV(log *slog.Logger, gen RecapGenerator) http.HandlerFunc {
	return export(log, "text/csv; charset=utf-8", func(ctx context.Context, month string) ([]byte, string, error) {
		return gen.GenerateCSV(ctx, month)
	})
}

// ExportExcel streams the monthly recap as an XLSX download.
func ExportExcel(log *slog.Logger, gen RecapGenerator) http.HandlerFunc {
	return export(log,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		func(ctx context.Context, month string) ([]byte, string, error) {
			return gen.GenerateExcel(ctx, month)
		})
}

func export(log *slog.Logger, contentType string, generate func(context.Context, string) ([]byte, string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.Export"

		month := r.URL.Query().Get("month")
		if month == "" {
			month = time.Now().Format("2006-01")
		}

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		data, filename, err := generate(ctx, month)
		if err != nil {
			if errors.Is(err, report.ErrBadMonth) {
				http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
				return
			}
			log.Error("failed to generate recap", slog.String("op", op),
				slog.String("month", month), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}
