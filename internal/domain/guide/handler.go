package guide

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tourhub/tourhub-api/internal/pkg/filters"
	"github.com/tourhub/tourhub-api/internal/pkg/response"
	"github.com/tourhub/tourhub-api/internal/pkg/validator"
)

// Handler handles guide HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates guide handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Save handles POST /guides (public registration)
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

// GetByID handles GET /guides/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid guide ID")
		return
	}

	resp, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, resp)
}

// List handles GET /guides
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	guides, err := h.svc.GetAll(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, guides)
}

// ListPaginated handles GET /guides/paginated
func (h *Handler) ListPaginated(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.GetPaginated(r.Context(), pageRequestFromQuery(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, page)
}

// Search handles POST /guides/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	f, ok := decodeFilter(w, r)
	if !ok {
		return
	}

	guides, err := h.svc.GetFiltered(r.Context(), f)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, guides)
}

// SearchPaginated handles POST /guides/search/paginated
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
