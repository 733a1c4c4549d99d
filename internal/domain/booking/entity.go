package booking

import (
	"time"

	"github.com/tourhub/tourhub-api/internal/domain/customer"
	"github.com/tourhub/tourhub-api/internal/domain/guide"
	"github.com/tourhub/tourhub-api/internal/domain/tour"
)

// Booking reserves one tour slot for one customer on one calendar date.
// Guide stays nil until a guide picks the booking up; there is no
// transition back to unassigned. UUID is the public identifier, assigned
// at first persistence and never reassigned.
type Booking struct {
	ID          int64
	UUID        string
	BookingDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tour     tour.Tour
	Customer customer.Customer
	Guide    *guide.Guide
}

// HasGuide reports whether a guide has been assigned.
func (b *Booking) HasGuide() bool {
	return b.Guide != nil
}
