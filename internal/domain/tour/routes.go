package tour

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tourhub/tourhub-api/internal/domain/user"
	"github.com/tourhub/tourhub-api/internal/middleware"
)

// Routes returns tour routes. Reads are open to any authenticated user,
// catalogue changes are admin only.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(string(user.RoleAdmin)))
		r.Post("/", h.Save)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
