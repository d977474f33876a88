package router

import (
	"net/http"

	"t1d-manager-api/internal/handler"
	"t1d-manager-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	TreatmentHandler *handler.TreatmentHandler
	SickDayHandler   *handler.SickDayHandler
	NutritionHandler *handler.NutritionHandler
	CGMHandler       *handler.CGMHandler
	CommunityHandler *handler.CommunityHandler
	AdminHandler     *handler.AdminHandler
	AdminMiddleware  func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-API-Key"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Unified status endpoint for uptime monitoring
	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		// Tool endpoints consumed by the LLM agent
		r.Route("/tools", func(r chi.Router) {
			if cfg.TreatmentHandler != nil {
				r.Route("/insulin", func(r chi.Router) {
					r.Post("/calculate", cfg.TreatmentHandler.CalculateInsulin)
					r.Get("/education", cfg.TreatmentHandler.InsulinEducation)
				})
			}

			if cfg.SickDayHandler != nil {
				r.Route("/sickday", func(r chi.Router) {
					r.Post("/analyze", cfg.SickDayHandler.Analyze)
					r.Get("/quick-check", cfg.SickDayHandler.QuickCheck)
				})
			}

			if cfg.NutritionHandler != nil {
				r.Get("/nutrition", cfg.NutritionHandler.Search)
				r.Get("/nutrition/foods", cfg.NutritionHandler.List)
			}

			if cfg.CGMHandler != nil {
				r.Route("/dexcom", func(r chi.Router) {
					r.Get("/auth-url", cfg.CGMHandler.DexcomAuthURL)
					r.Post("/egvs", cfg.CGMHandler.DexcomEGVs)
					r.Post("/egvs/token", cfg.CGMHandler.DexcomToken)
				})
				r.Get("/nightscout/sgv", cfg.CGMHandler.NightscoutSGV)
			}

			if cfg.CommunityHandler != nil {
				r.Get("/community/search", cfg.CommunityHandler.Search)
			}
		})

		// Admin endpoints (API-key protected)
		if cfg.AdminHandler != nil {
			r.Route("/admin", func(r chi.Router) {
				if cfg.AdminMiddleware != nil {
					r.Use(cfg.AdminMiddleware)
				}
				r.Get("/cache", cfg.AdminHandler.CacheStats)
				r.Delete("/cache/search", cfg.AdminHandler.ClearSearchCache)
			})
		}
	})

	return r
}
