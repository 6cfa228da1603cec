package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/rootslab/opsfinance/internal/auth"
	"github.com/rootslab/opsfinance/internal/budget"
	"github.com/rootslab/opsfinance/internal/dashboard"
	"github.com/rootslab/opsfinance/internal/expense"
	"github.com/rootslab/opsfinance/internal/overtime"
	"github.com/rootslab/opsfinance/internal/report"
	"github.com/rootslab/opsfinance/internal/transport/middleware"
	"github.com/rootslab/opsfinance/internal/transport/swagger"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *auth.Handler
	Expense   *expense.Handler
	Overtime  *overtime.Handler
	Budget    *budget.Handler
	Dashboard *dashboard.Handler
	Report    *report.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORSWithOrigins(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})

			r.Group(func(pr chi.Router) {
				pr.Use(h.Auth.AuthMiddleware)

				if h.Expense != nil {
					pr.Route("/expenses", func(er chi.Router) {
						er.Get("/", h.Expense.ListExpenses)
						er.Post("/", h.Expense.CreateExpense)
						er.Put("/{id}", h.Expense.UpdateExpense)
						er.Patch("/{id}/status", h.Expense.UpdateStatus)
						er.Delete("/{id}", h.Expense.DeleteExpense)
					})
				}

				if h.Overtime != nil {
					pr.Route("/overtimes", func(or chi.Router) {
						or.Get("/", h.Overtime.ListOvertimes)
						or.Post("/", h.Overtime.CreateOvertime)
						or.Put("/{id}", h.Overtime.UpdateOvertime)
						or.Patch("/{id}/status", h.Overtime.UpdateStatus)
						or.Delete("/{id}", h.Overtime.DeleteOvertime)
					})
				}

				if h.Budget != nil {
					pr.Route("/budget", func(br chi.Router) {
						br.Get("/", h.Budget.GetBudget)
						br.Put("/", h.Budget.UpdateBudget)
					})
				}

				if h.Dashboard != nil {
					pr.Get("/dashboard", h.Dashboard.GetSummary)
				}

				if h.Report != nil {
					pr.Get("/reports/monthly", h.Report.ExportMonthly)
				}
			})
		}
	})
}
