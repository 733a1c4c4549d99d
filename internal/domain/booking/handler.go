package booking

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tourhub/tourhub-api/internal/middleware"
	"github.com/tourhub/tourhub-api/internal/pkg/filters"
	"github.com/tourhub/tourhub-api/internal/pkg/response"
	"github.com/tourhub/tourhub-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates booking handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.svc.Create(r.Context(), middleware.GetUsername(r.Context()), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, resp)
}

// AssignGuide handles PUT /bookings/{id}/guide
func (h *Handler) AssignGuide(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.AssignGuide(r.Context(), middleware.GetUsername(r.Context()), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, resp)
}

// Delete handles DELETE /bookings/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), middleware.GetUsername(r.Context()), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// GetByID handles GET /bookings/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, resp)
}

// ListMine handles GET /bookings/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListMine(r.Context(), middleware.GetUsername(r.Context()))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, bookings)
}

// ListUnassigned handles GET /bookings/unassigned
func (h *Handler) ListUnassigned(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListUnassigned(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, bookings)
}

// ListGuiding handles GET /bookings/guiding
func (h *Handler) ListGuiding(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListGuiding(r.Context(), middleware.GetUsername(r.Context()))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, bookings)
}

// List handles GET /bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.GetAll(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, bookings)
}

// ListPaginated handles GET /bookings/paginated
func (h *Handler) ListPaginated(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.GetPaginated(r.Context(), pageRequestFromQuery(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, page)
}

// Search handles POST /bookings/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	f, ok := decodeFilter(w, r)
	if !ok {
		return
	}

	bookings, err := h.svc.GetFiltered(r.Context(), f)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, bookings)
}

// SearchPaginated handles POST /bookings/search/paginated
func (h *Handler) SearchPaginated(w http.ResponseWriter, r *http.Request) {
	f, ok := decodeFilter(w, r)
	if !ok {
		return
	}

	page, err := h.svc.GetFilteredPaginated(r.Context(), f)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, page)
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid booking ID")
		return 0, false
	}
	return id, true
}

// decodeFilter seeds the default page size before decoding so that an
// omitted page_size pages normally while an explicit zero stays zero.
func decodeFilter(w http.ResponseWriter, r *http.Request) (*Filter, bool) {
	var f Filter
	f.PageSize = filters.DefaultPageSize
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			response.BadRequest(w, "Invalid JSON body")
			return nil, false
		}
	}
	return &f, true
}

func pageRequestFromQuery(r *http.Request) filters.PageRequest {
	page := filters.PageRequest{PageSize: filters.DefaultPageSize}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil {
		page.PageSize = v
	}
	page.SortBy = r.URL.Query().Get("sort_by")
	if dir := r.URL.Query().Get("sort_direction"); dir != "" {
		page.SortDirection = filters.ParseDirection(dir)
	}
	return page
}
