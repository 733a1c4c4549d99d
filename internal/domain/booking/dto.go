package booking

import (
	"time"

	"github.com/tourhub/tourhub-api/internal/domain/customer"
	"github.com/tourhub/tourhub-api/internal/domain/guide"
	"github.com/tourhub/tourhub-api/internal/domain/tour"
	"github.com/tourhub/tourhub-api/internal/pkg/filters"
)

const dateLayout = "2006-01-02"

// Filter carries the optional search criteria for booking listings plus
// paging/sort directives. Every criterion is independently optional; the
// zero id and blank strings count as absent.
type Filter struct {
	filters.PageRequest

	ID               int64   `json:"id"`
	UUID             string  `json:"uuid"`
	BookingDate      string  `json:"booking_date"`
	PriceBelow       float64 `json:"price_below"`
	TourCategory     string  `json:"tour_category"`
	CustomerID       int64   `json:"customer_id"`
	CustomerLastname string  `json:"customer_lastname"`
	CustomerActive   *bool   `json:"customer_active"`
	GuideID          int64   `json:"guide_id"`

	// Set by the service for the upcoming/unassigned listings; not part of
	// the search payload.
	withoutGuide bool
	dateAfter    *time.Time
}

// CreateRequest is the payload for reserving a tour slot. The acting
// customer comes from the authenticated principal, not the body.
type CreateRequest struct {
	BookingDate  string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	TourCategory string `json:"tour_category" validate:"required,min=2,max=100"`
}

// ParseBookingDate parses the request date field.
func (r *CreateRequest) ParseBookingDate() (time.Time, error) {
	return time.Parse(dateLayout, r.BookingDate)
}

// Response is the read projection of a booking. Guide is omitted until
// one is assigned.
type Response struct {
	ID          int64             `json:"id"`
	UUID        string            `json:"uuid"`
	BookingDate string            `json:"booking_date"`
	Tour        tour.Response     `json:"tour"`
	Customer    customer.Response `json:"customer"`
	Guide       *guide.Response   `json:"guide,omitempty"`
}

// ToResponse maps a booking entity onto its read projection.
func ToResponse(b *Booking) *Response {
	resp := &Response{
		ID:          b.ID,
		UUID:        b.UUID,
		BookingDate: b.BookingDate.Format(dateLayout),
		Tour:        *tour.ToResponse(&b.Tour),
		Customer:    *customer.ToResponse(&b.Customer),
	}
	if b.Guide != nil {
		resp.Guide = guide.ToResponse(b.Guide)
	}
	return resp
}
