package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tourhub/tourhub-api/internal/domain/user"
	"github.com/tourhub/tourhub-api/internal/middleware"
)

// Routes returns booking routes. Everything requires authentication;
// customers create and cancel, guides pick up unguided bookings, admins
// browse and filter the full set.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(string(user.RoleCustomer)))

		r.Post("/", h.Create)
		r.Get("/mine", h.ListMine)
		r.Delete("/{id}", h.Delete)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(string(user.RoleGuide)))

		r.Get("/unassigned", h.ListUnassigned)
		r.Get("/guiding", h.ListGuiding)
		r.Put("/{id}/guide", h.AssignGuide)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(string(user.RoleAdmin)))

		r.Get("/", h.List)
		r.Get("/paginated", h.ListPaginated)
		r.Post("/search", h.Search)
		r.Post("/search/paginated", h.SearchPaginated)
	})

	r.Get("/{id}", h.GetByID)

	return r
}
