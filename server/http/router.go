package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	anlHnd "custrisk-service/internal/analysis/handler"
	"custrisk-service/internal/config"
	"custrisk-service/internal/middleware"
	"custrisk-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	// upload sales + debt ledgers, get back the classified table
	r.Post("/analyze", anlHnd.Analyze(cfg, logger))
	r.Post("/analyze/export", anlHnd.AnalyzeExport(cfg, logger))

	// single-customer drill-down over the same two uploads
	r.Post("/customers/detail", anlHnd.CustomerDetail(cfg, logger))

	return r
}
