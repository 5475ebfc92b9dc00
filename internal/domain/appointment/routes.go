package appointment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vetlink/vetlink-api/internal/domain/account"
	"github.com/vetlink/vetlink-api/internal/middleware"
)

// Routes returns appointment router. All routes require an active account.
func Routes(handler *Handler, authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireActive)

	r.Get("/", handler.ListMine)
	r.Post("/{id}/cancel", handler.Cancel)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAccountType(string(account.TypeUser)))
		r.Post("/", handler.Book)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAccountType(string(account.TypeDoctor)))
		r.Post("/{id}/complete", handler.Complete)
	})

	return r
}
