package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/samarqand/backoffice-go/internal/config"
	"github.com/samarqand/backoffice-go/internal/handler/http/middleware"
	"github.com/samarqand/backoffice-go/internal/pkg/jwt"
)

func NewRouter(
	cfg config.AppConfig,
	jwtService jwt.Service,
	workerHandler WorkerHandler,
	attendanceHandler AttendanceHandler,
	timeclockHandler TimeclockHandler,
	payrollHandler PayrollHandler,
	masterHandler MasterHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "backoffice"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
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
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/workers", func(r chi.Router) {
				r.Get("/", workerHandler.List)
				r.Get("/{id}", workerHandler.Get)

				// Roster changes are an admin concern.
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", workerHandler.Create)
					r.Put("/{id}", workerHandler.Update)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/", attendanceHandler.Create)
				r.Get("/{id}", attendanceHandler.Get)
				r.Put("/{id}", attendanceHandler.Update)
				r.Delete("/{id}", attendanceHandler.Delete)
				r.Post("/{id}/approve", attendanceHandler.Approve)
				r.Post("/{id}/lock", attendanceHandler.Lock)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/unlock", attendanceHandler.Unlock)
				})
			})

			r.Route("/timeclock", func(r chi.Router) {
				r.Post("/import", timeclockHandler.Import)
				r.Post("/import/folder", timeclockHandler.ImportFolder)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/generate", payrollHandler.Generate)
				r.Get("/entries", payrollHandler.ListEntries)
				r.Post("/entries", payrollHandler.CreateEntry)
				r.Delete("/entries/{id}", payrollHandler.DeleteEntry)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", masterHandler.ListProjects)
				r.Get("/{id}", masterHandler.GetProject)
			})

			r.Route("/runs", func(r chi.Router) {
				r.Get("/imports", masterHandler.ListImportRuns)
				r.Get("/generations", masterHandler.ListGenerationRuns)
			})
		})
	})
	return r
}
