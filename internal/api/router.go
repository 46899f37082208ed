package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/liveguide/internal/api/auth"
	"github.com/good-yellow-bee/liveguide/internal/api/middleware"
	"github.com/good-yellow-bee/liveguide/internal/api/projects"
	"github.com/good-yellow-bee/liveguide/internal/api/publish"
	"github.com/good-yellow-bee/liveguide/internal/api/respond"
)

// setupRouter creates and configures the chi router with all routes.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Create JWT service
	jwtService := auth.NewJWTService(s.config.JWTSecret, s.config.AccessTokenTTL)

	// Create lockout tracker
	lockoutTracker := auth.NewLockoutTracker(s.config.LockoutThreshold, s.config.LockoutDuration)

	// Create rate limiters
	ipLimiter := middleware.NewRateLimiter(s.config.RateLimitPerIP)
	userLimiter := middleware.NewRateLimiter(s.config.RateLimitPerUser)

	// Global middleware
	r.Use(middleware.RequestLogger(s.config.Verbose))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.PrometheusMiddleware)
	r.Use(middleware.Recoverer)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (mostly public)
		r.Route("/auth", func(r chi.Router) {
			authHandler := auth.NewHandler(
				auth.Credentials{
					Username:     s.config.AuthUsername,
					PasswordHash: s.config.AuthPasswordHash,
				},
				jwtService,
				lockoutTracker,
				s.config.RefreshTokenTTL,
			)

			// Public routes with IP rate limiting
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimitByIP(ipLimiter))
				r.Post("/login", authHandler.Login)
				r.Post("/refresh", authHandler.Refresh)
			})

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.JWTAuth(jwtService))
				r.Post("/logout", authHandler.Logout)
			})
		})

		projectHandler := projects.NewHandler(s.store)
		publishHandler := publish.NewHandler(s.store)

		// Everything below requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(jwtService))
			r.Use(middleware.RateLimitByUser(userLimiter))

			r.Get("/templates", projectHandler.ListTemplates)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", projectHandler.List)
				r.Post("/", projectHandler.Create)
				r.Post("/from-template", projectHandler.CreateFromTemplate)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", projectHandler.GetByID)
					r.Put("/", projectHandler.UpdateMeta)
					r.Delete("/", projectHandler.Delete)
					r.Post("/save-as-template", projectHandler.SaveAsTemplate)
					r.Post("/reset-template", projectHandler.ResetTemplate)

					r.Route("/components", func(r chi.Router) {
						r.Post("/", projectHandler.AddComponent)
						r.Put("/{componentID}", projectHandler.UpdateComponent)
						r.Delete("/{componentID}", projectHandler.DeleteComponent)
					})

					r.Route("/categories", func(r chi.Router) {
						r.Post("/", projectHandler.AddCategory)
						r.Put("/{name}", projectHandler.RenameCategory)
						r.Delete("/{name}", projectHandler.DeleteCategory)
					})

					r.Route("/files", func(r chi.Router) {
						r.Post("/", projectHandler.AddCommonFile)
						r.Put("/{fileID}", projectHandler.UpdateCommonFile)
						r.Delete("/{fileID}", projectHandler.DeleteCommonFile)
					})

					r.Route("/assets", func(r chi.Router) {
						r.Post("/", projectHandler.AddCommonAsset)
						r.Put("/{assetID}", projectHandler.UpdateCommonAsset)
						r.Delete("/{assetID}", projectHandler.DeleteCommonAsset)
					})

					r.Route("/tree", func(r chi.Router) {
						r.Get("/", projectHandler.GetTree)
						r.Get("/folders", projectHandler.ListTreeFolders)
						r.Post("/", projectHandler.AddTreeNode)
						r.Post("/sync", projectHandler.SyncTree)
						r.Post("/{nodeID}/move", projectHandler.MoveTreeNode)
						r.Put("/{nodeID}", projectHandler.RenameTreeNode)
						r.Delete("/{nodeID}", projectHandler.DeleteTreeNode)
					})

					r.Post("/preview", publishHandler.Preview)
					r.Get("/export", publishHandler.ExportArchive)
					r.Get("/export/files", publishHandler.ExportFiles)
				})
			})

			r.Get("/backup", projectHandler.ExportBackup)
			r.Post("/backup", projectHandler.RestoreBackup)

			r.Post("/share", publishHandler.EncodeShare)
		})

		// Decoding a share link is public: the token is the capability.
		r.Get("/share/{token}", publishHandler.DecodeShare)
	})

	// Health checks (public, no rate limit)
	r.Get("/health", s.healthHandler.Health)
	r.Get("/health/live", s.healthHandler.Live)
	r.Get("/health/ready", s.healthHandler.Ready)

	// Route pattern fallback
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.JSONError(w, respond.ErrNotFound)
	})

	return r
}
