package tour

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tourhub/tourhub-api/internal/pkg/response"
	"github.com/tourhub/tourhub-api/internal/pkg/validator"
)

// Handler handles tour HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates tour handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Save handles POST /tours
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req InsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.svc.Save(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, resp)
}

// List handles GET /tours
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tours, err := h.svc.GetAll(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, tours)
}

// GetByID handles GET /tours/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid tour ID")
		return
	}

	resp, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, resp)
}

// Delete handles DELETE /tours/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid tour ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}
