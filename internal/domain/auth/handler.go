package auth

import (
	"encoding/json"
	"net/http"

	"github.com/tourhub/tourhub-api/internal/middleware"
	"github.com/tourhub/tourhub-api/internal/pkg/response"
	"github.com/tourhub/tourhub-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates auth handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.svc.Login(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, resp)
}

// Me handles GET /auth/me, echoing the token's principal back to the caller.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	response.OK(w, &MeResponse{
		UserID:   middleware.GetUserID(r.Context()),
		Username: middleware.GetUsername(r.Context()),
		Role:     middleware.GetRole(r.Context()),
	})
}
