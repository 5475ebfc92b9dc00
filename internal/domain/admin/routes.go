package admin

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns admin router. Moderation routes are mounted separately so
// the moderation domain keeps ownership of its handlers.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(h.jwtSvc, h.service))

		r.Get("/auth/me", h.Me)

		r.Route("/admins", func(r chi.Router) {
			r.Use(RequirePermission(PermManageAdmins))
			r.Get("/", h.ListAdmins)
			r.Post("/", h.CreateAdmin)
			r.Patch("/{id}", h.UpdateAdmin)
		})

		r.Route("/audit", func(r chi.Router) {
			r.Use(RequirePermission(PermViewAuditLogs))
			r.Get("/logs", h.AuditLogs)
		})
	})

	return r
}
