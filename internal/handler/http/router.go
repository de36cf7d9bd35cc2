package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/attendly/attendly-backend-go/internal/handler/http/middleware"
	"github.com/attendly/attendly-backend-go/internal/handler/http/response"
)

type RouterConfig struct {
	Logger      *slog.Logger
	TokenAuth   *jwtauth.JWTAuth
	FrontendURL string
	// UploadsDir is served read-only under /uploads for proof photos.
	UploadsDir string

	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Leave      LeaveHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
		Level:         slog.LevelInfo,
		Schema:        httplog.SchemaECS,
		RecoverPanics: true,
	}))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", cfg.Auth.Login)
			r.Post("/refresh", cfg.Auth.Refresh)
			r.Post("/logout", cfg.Auth.Logout)
			r.Get("/oauth/google", cfg.Auth.GoogleAuthURL)
			r.Post("/oauth/google", cfg.Auth.GoogleLogin)
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(cfg.TokenAuth))
			r.Use(middleware.Authenticator)

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/check-in", cfg.Attendance.CheckIn)
				r.Post("/check-out", cfg.Attendance.CheckOut)
				r.Get("/me", cfg.Attendance.Me)
				r.Get("/summary", cfg.Attendance.Summary)

				r.With(middleware.AdminOnly).Get("/", cfg.Attendance.List)
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Get("/me", cfg.Payroll.Me)
				r.Get("/{id}", cfg.Payroll.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/generate", cfg.Payroll.Generate)
					r.Get("/", cfg.Payroll.List)
					r.Patch("/{id}/pay", cfg.Payroll.MarkAsPaid)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", cfg.Leave.Submit)
				r.Get("/me", cfg.Leave.Me)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", cfg.Leave.List)
					r.Patch("/{id}/approve", cfg.Leave.Approve)
					r.Patch("/{id}/reject", cfg.Leave.Reject)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", cfg.Employee.Create)
				r.Get("/", cfg.Employee.List)
				r.Get("/{id}", cfg.Employee.Get)
				r.Patch("/{id}", cfg.Employee.Update)
				r.Delete("/{id}", cfg.Employee.Deactivate)
			})
		})
	})

	return r
}
