package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/wellmind-hq/wellness-backend-go/internal/handler/http/middleware"
	"github.com/wellmind-hq/wellness-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, hierarchyHandler HierarchyHandler, directoryHandler DirectoryHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "wellmind-api"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)
	slog.SetDefault(logger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/reports", hierarchyHandler.GetReports)
			r.Get("/permissions/my", hierarchyHandler.GetMyPermissions)
			r.Get("/access/{targetID}", hierarchyHandler.CheckAccess)

			// Managerial roles only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManagerial)
				r.Get("/hierarchy", hierarchyHandler.GetHierarchy)
				r.Route("/team", func(r chi.Router) {
					r.Get("/subordinates", hierarchyHandler.GetSubordinates)
					r.Get("/stats", hierarchyHandler.GetTeamStats)
				})
			})

			r.Get("/analytics/hierarchy", hierarchyHandler.GetAnalytics)

			// Company-wide roles only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCompanyWide)
				r.Route("/employees", func(r chi.Router) {
					r.Post("/", directoryHandler.CreateUser)
					r.Put("/{id}/manager", directoryHandler.ChangeManager)
				})
			})
		})
	})
	return r
}
