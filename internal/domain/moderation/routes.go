package moderation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vetlink/vetlink-api/internal/domain/admin"
	"github.com/vetlink/vetlink-api/internal/middleware"
)

// Routes returns self-service moderation routes. Unban request routes skip
// the active-account check on purpose: they are the one surface a banned
// account may still reach.
func Routes(handler *Handler, authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireActive)
		r.Post("/reports", handler.CreateReport)
		r.Get("/reports/mine", handler.ListMyReports)
	})

	r.Post("/unban-requests", handler.CreateUnbanRequest)
	r.Get("/unban-requests/mine", handler.ListMyUnbanRequests)

	return r
}

// AdminRoutes returns admin moderation routes guarded by permission checks
func AdminRoutes(handler *AdminHandler, authMiddleware func(http.Handler) http.Handler, requirePermission func(admin.Permission) func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(requirePermission(admin.PermViewAccounts))
		r.Get("/accounts", handler.ListAccounts)
		r.Get("/accounts/{type}/{id}/ban-status", handler.GetBanStatus)
	})

	r.Group(func(r chi.Router) {
		r.Use(requirePermission(admin.PermBanAccounts))
		r.Post("/accounts/ban", handler.BanAccount)
		r.Post("/accounts/unban", handler.UnbanAccount)
	})

	r.Group(func(r chi.Router) {
		r.Use(requirePermission(admin.PermDeleteAccounts))
		r.Delete("/accounts/{type}/{id}", handler.DeleteAccount)
	})

	r.Group(func(r chi.Router) {
		r.Use(requirePermission(admin.PermViewReports))
		r.Get("/reports", handler.ListReports)
		r.Get("/reports/{id}", handler.GetReport)
	})

	r.Group(func(r chi.Router) {
		r.Use(requirePermission(admin.PermModerateReports))
		r.Patch("/reports/{id}/status", handler.UpdateReportStatus)
		r.Post("/reports/read", handler.MarkReportsRead)
		r.Post("/reports/trash", handler.TrashReports)
		r.Post("/reports/restore", handler.RestoreReports)
		r.Post("/reports/{id}/ban", handler.BanFromReport)
	})

	r.Group(func(r chi.Router) {
		r.Use(requirePermission(admin.PermDeleteReports))
		r.Post("/reports/delete", handler.DeleteReportsPermanently)
	})

	r.Group(func(r chi.Router) {
		r.Use(requirePermission(admin.PermDecideUnbans))
		r.Get("/unban-requests", handler.ListUnbanRequests)
		r.Post("/unban-requests/{id}/decide", handler.DecideUnbanRequest)
	})

	return r
}
