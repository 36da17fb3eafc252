package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fopmanager/fop-api/internal/utils"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	// --- Global middlewares ---
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(app.Logger) // Simple logger + request metrics

	// --- Health check endpoint ---
	mux.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, 200, "Live")
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/api/v1/login", app.Handlers.Auth.Signin)

	// --- Ledger routes (any authenticated user) ---
	mux.Route("/api/v1", func(r chi.Router) {
		r.Use(app.Authenticate)

		// List transactions, most recent first
		// Example: GET /api/v1/transactions?start_date=2024-03-01&end_date=2024-03-31
		// Optional display filter: official=true (bank-trackable records only)
		r.Get("/transactions", app.Handlers.Transaction.ListTransactions)

		// Record a new transaction
		// Body (JSON): { transaction }
		r.Post("/transactions", app.Handlers.Transaction.CreateTransaction)

		// Update a transaction (audit-logged)
		// Body (JSON): { transaction with id }
		r.Put("/transactions", app.Handlers.Transaction.UpdateTransaction)

		// One calendar day for till reconciliation: created records plus
		// debts settled that day, with cash totals and margins
		// Example: GET /api/v1/transactions/day?date=2024-03-05
		r.Get("/transactions/day", app.Handlers.Transaction.GetDailyView)

		// Settle an unpaid transaction in place
		// Body (JSON): { id, payment_date, payer }
		r.Post("/transactions/repay", app.Handlers.Transaction.RepayDebt)

		// Preview a period report without saving
		// Example: GET /api/v1/reports/period?start_date=...&end_date=...&worked_days=5
		r.Get("/reports/period", app.Handlers.Report.GeneratePeriodReport)

		// Persist a generated report as pending
		// Body (JSON): { start_date, end_date, worked_days }
		r.Post("/reports/period", app.Handlers.Report.SavePeriodReport)

		// List period reports, most recent first
		r.Get("/reports", app.Handlers.Report.ListPeriodReports)

		// --- Admin-only routes ---
		r.Group(func(r chi.Router) {
			r.Use(app.RequireAdmin)

			// Confirm or flag a transaction
			// Body (JSON): { id, status } with status valid|issue|pending
			r.Put("/transactions/status", app.Handlers.Transaction.UpdateAdminCheck)

			// Delete a transaction (last state preserved in the audit log)
			r.Delete("/transactions/{id}", app.Handlers.Transaction.DeleteTransaction)

			// Approve a pending report with bonus/fine/note (terminal)
			r.Post("/reports/{id}/approve", app.Handlers.Report.ApprovePeriodReport)

			// Pay out an approved report's salary
			r.Post("/reports/{id}/pay", app.Handlers.Report.PaySalary)

			// Salary formula configuration
			r.Get("/settings/salary", app.Handlers.Settings.GetSalarySettings)
			r.Put("/settings/salary", app.Handlers.Settings.UpdateSalarySettings)

			// Seller account management
			r.Get("/users", app.Handlers.User.ListUsers)
			r.Get("/user", app.Handlers.User.GetUser)
			r.Post("/users", app.Handlers.User.AddUser)
			r.Put("/users/role", app.Handlers.User.UpdateUserRole)

			// Audit trail
			// Example: GET /api/v1/audit?entity=transaction&limit=50
			r.Get("/audit", app.Handlers.Audit.ListAuditLogs)
		})
	})

	return mux
}
