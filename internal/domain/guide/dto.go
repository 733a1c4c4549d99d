package guide

import (
	"github.com/tourhub/tourhub-api/internal/domain/customer"
	"github.com/tourhub/tourhub-api/internal/domain/tour"
	"github.com/tourhub/tourhub-api/internal/pkg/filters"
)

// Filter carries the optional search criteria for guide listings plus
// paging/sort directives.
type Filter struct {
	filters.PageRequest

	UUID         string `json:"uuid"`
	UserLastname string `json:"user_lastname"`
	UserVAT      string `json:"user_vat"`
	IsActive     *bool  `json:"is_active"`
	TourCategory string `json:"tour_category"`
}

// InsertRequest is the payload for creating a guide with its user. The
// guide's qualification is given as a tour category and resolved against
// the catalogue.
type InsertRequest struct {
	User         customer.UserInsertRequest `json:"user" validate:"required"`
	TourCategory string                     `json:"tour_category" validate:"required,min=2,max=100"`
	IsActive     *bool                      `json:"is_active"`
}

// Response is the read projection of a guide.
type Response struct {
	ID       int64                 `json:"id"`
	UUID     string                `json:"uuid"`
	IsActive bool                  `json:"is_active"`
	User     customer.UserResponse `json:"user"`
	Tour     tour.Response         `json:"tour"`
}

// ToResponse maps a guide entity onto its read projection.
func ToResponse(g *Guide) *Response {
	return &Response{
		ID:       g.ID,
		UUID:     g.UUID,
		IsActive: g.IsActive,
		User:     customer.ToUserResponse(&g.User),
		Tour:     *tour.ToResponse(&g.Tour),
	}
}
