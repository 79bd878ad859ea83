package api

import (
	"net/http"

	"github.com/dom/esports-stats-ledger/internal/api/handlers"
	"github.com/dom/esports-stats-ledger/internal/api/middleware"
	"github.com/dom/esports-stats-ledger/internal/config"
	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/dom/esports-stats-ledger/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func NewRouter(services *service.Services, cfg *config.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	authHandler := handlers.NewAuthHandler(services.Auth)
	teamHandler := handlers.NewTeamHandler(services.Catalog)
	playerHandler := handlers.NewPlayerHandler(services.Catalog, services.Ledger)
	agentHandler := handlers.NewAgentHandler(services.Catalog)
	mapHandler := handlers.NewMapHandler(services.Catalog)
	matchHandler := handlers.NewMatchHandler(services.Ledger)
	comparisonHandler := handlers.NewComparisonHandler(services.Comparison)
	statsHandler := handlers.NewStatsHandler(services.Ledger)

	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", teamHandler.List)
				r.Get("/{id}", teamHandler.Get)
				r.With(adminOnly).Post("/", teamHandler.Create)
				r.With(adminOnly).Put("/{id}", teamHandler.Update)
				r.With(adminOnly).Delete("/{id}", teamHandler.Delete)
			})

			r.Route("/players", func(r chi.Router) {
				r.Get("/", playerHandler.List)
				r.Get("/{id}", playerHandler.Get)
				r.With(adminOnly).Post("/", playerHandler.Create)
				r.With(adminOnly).Post("/reset-stats", playerHandler.ResetStats)
				r.With(adminOnly).Put("/{id}", playerHandler.Update)
				r.With(adminOnly).Delete("/{id}", playerHandler.Delete)
			})

			r.Route("/agents", func(r chi.Router) {
				r.Get("/", agentHandler.List)
				r.Get("/{id}", agentHandler.Get)
				r.With(adminOnly).Post("/", agentHandler.Create)
				r.With(adminOnly).Put("/{id}", agentHandler.Update)
				r.With(adminOnly).Delete("/{id}", agentHandler.Delete)
			})

			r.Route("/maps", func(r chi.Router) {
				r.Get("/", mapHandler.List)
				r.Get("/{id}", mapHandler.Get)
				r.With(adminOnly).Post("/", mapHandler.Create)
				r.With(adminOnly).Put("/{id}", mapHandler.Update)
				r.With(adminOnly).Delete("/{id}", mapHandler.Delete)
			})

			r.Route("/matches", func(r chi.Router) {
				r.Get("/", matchHandler.List)
				r.Get("/{id}", matchHandler.Get)
				r.With(adminOnly).Post("/", matchHandler.Create)
				r.With(adminOnly).Put("/{id}", matchHandler.Update)
				r.With(adminOnly).Delete("/{id}", matchHandler.Delete)
			})

			r.Route("/comparisons", func(r chi.Router) {
				r.Get("/compare-players", comparisonHandler.ComparePlayers)
				r.Get("/best-player-agent", comparisonHandler.BestPlayerForAgent)
				r.Get("/best-player-map", comparisonHandler.BestPlayerForMap)
				r.Get("/compare-teams-map", comparisonHandler.CompareTeamsOnMap)
				r.Get("/leaderboard", comparisonHandler.PlayerLeaderboard)
				r.Get("/leaderboard-teams", comparisonHandler.TeamLeaderboard)
				r.Get("/player-performance-trend", comparisonHandler.PlayerPerformanceTrend)
				r.Get("/player-best-agents", comparisonHandler.PlayerBestAgents)
				r.Get("/team-map-performance", comparisonHandler.TeamMapPerformance)
			})

			r.With(adminOnly).Post("/stats/rebuild", statsHandler.Rebuild)
		})
	})

	return r
}
