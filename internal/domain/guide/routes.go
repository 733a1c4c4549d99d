package guide

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tourhub/tourhub-api/internal/domain/user"
	"github.com/tourhub/tourhub-api/internal/middleware"
)

// Routes returns guide routes. Registration is public; browsing and
// filtering guides is an administrator concern.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Save)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireRole(string(user.RoleAdmin)))

		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Get("/paginated", h.ListPaginated)
		r.Post("/search", h.Search)
		r.Post("/search/paginated", h.SearchPaginated)
	})

	return r
}
