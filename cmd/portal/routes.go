package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	deleteach "team-portal/http-server/achievements/delete"
	getach "team-portal/http-server/achievements/get"
	saveach "team-portal/http-server/achievements/save"
	upallowed "team-portal/http-server/allowed/update"
	getdashboard "team-portal/http-server/dashboard/get"
	getboard "team-portal/http-server/leaderboard/get"
	deleteperson "team-portal/http-server/persons/delete"
	getpersons "team-portal/http-server/persons/get"
	savepersons "team-portal/http-server/persons/save"
	getpic "team-portal/http-server/pic/get"
	deleteproduct "team-portal/http-server/products/delete"
	getproducts "team-portal/http-server/products/get"
	saveproduct "team-portal/http-server/products/save"
	"team-portal/http-server/report/export"
	uptargets "team-portal/http-server/targets/update"
	"team-portal/internal/config"
	"team-portal/internal/middleware/auth"
	"team-portal/internal/service/report"
	"team-portal/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, reports *report.Service) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// read-only views
	router.Get("/api/persons", getpersons.GetPersons(log, storage))
	router.Get("/api/products", getproducts.GetProducts(log, storage))
	router.Get("/api/achievements", getach.GetAchievements(log, storage))
	router.Get("/api/dashboard", getdashboard.Dashboard(log, storage))
	router.Get("/api/leaderboard", getboard.GetLeaderboard(log, storage))

	// monthly exports
	router.Get("/api/report/csv", export.ExportCSV(log, reports))
	router.Get("/api/report/excel", export.ExportExcel(log, reports))

	// PIC self-service entry, no login
	router.Get("/api/pic/options", getpic.PicOptions(log, storage))
	router.Post("/api/pic/achievements", saveach.SaveAchievement(log, storage))

	// BM routes behind the shared secret
	bmRouter := chi.NewRouter()
	bmRouter.Use(auth.BasicAuth(cfg.BMLogin, cfg.BMPass))

	bmRouter.Post("/persons", savepersons.SavePersons(log, storage))
	bmRouter.Delete("/persons/{id}", deleteperson.DeletePerson(log, storage))
	bmRouter.Post("/products", saveproduct.SaveProduct(log, storage))
	bmRouter.Delete("/products/{name}", deleteproduct.DeleteProduct(log, storage))
	bmRouter.Post("/achievements", saveach.SaveAchievement(log, storage))
	bmRouter.Delete("/achievements/{id}", deleteach.DeleteAchievement(log, storage))
	bmRouter.Put("/targets", uptargets.UpdateTarget(log, storage))
	bmRouter.Put("/allowed", upallowed.UpdateAllowed(log, storage))

	router.Mount("/api/bm", bmRouter)

	// static frontend with SPA fallback
	if _, err := os.Stat(cfg.FrontendDir); os.IsNotExist(err) {
		log.Warn("frontend dir not found, serving API only", "path", cfg.FrontendDir)
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(cfg.FrontendDir)))
	router.Handle("/assets/*", fileServer)

	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(cfg.FrontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(cfg.FrontendDir, "index.html"))
	})

	return router
}
