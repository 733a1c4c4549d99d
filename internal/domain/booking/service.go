package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tourhub/tourhub-api/internal/domain/customer"
	"github.com/tourhub/tourhub-api/internal/domain/guide"
	"github.com/tourhub/tourhub-api/internal/domain/tour"
	"github.com/tourhub/tourhub-api/internal/pkg/filters"
)

// Service is the booking consistency engine. Every check-then-act
// sequence runs inside one transaction; the in-transaction existence
// checks are a fast path for friendly errors while the unique constraints
// on (customer_id, booking_date) and (guide_id, booking_date) stay the
// authoritative arbiter when two requests race.
type Service struct {
	repo      Repository
	customers customer.Repository
	guides    guide.Repository
	tours     tour.Repository

	now func() time.Time
}

// NewService creates booking service
func NewService(repo Repository, customers customer.Repository, guides guide.Repository, tours tour.Repository) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		guides:    guides,
		tours:     tours,
		now:       time.Now,
	}
}

// today returns the current calendar date. Bookings participate in
// upcoming listings, assignment and deletion only when strictly later.
func (s *Service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Service) resolveCustomer(ctx context.Context, username string) (*customer.Customer, error) {
	c, err := s.customers.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotACustomer, username)
	}
	return c, nil
}

func (s *Service) resolveGuide(ctx context.Context, username string) (*guide.Guide, error) {
	g, err := s.guides.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotAGuide, username)
	}
	return g, nil
}

// Create reserves a tour slot for the acting customer. A customer holds
// at most one booking per calendar date.
func (s *Service) Create(ctx context.Context, username string, req *CreateRequest) (*Response, error) {
	c, err := s.resolveCustomer(ctx, username)
	if err != nil {
		return nil, err
	}

	t, err := s.tours.GetByCategory(ctx, req.TourCategory)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: category %q", tour.ErrTourNotFound, req.TourCategory)
	}

	date, err := req.ParseBookingDate()
	if err != nil {
		// Unreachable after validation, kept for direct service callers.
		return nil, fmt.Errorf("parse booking date: %w", err)
	}

	b := &Booking{
		BookingDate: date,
		Tour:        *t,
		Customer:    *c,
	}
	err = s.repo.InTx(ctx, func(txRepo Repository) error {
		taken, err := txRepo.ExistsForCustomerOnDate(ctx, c.ID, date)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: customer %q on %s", ErrDuplicateBooking, username, req.BookingDate)
		}
		return txRepo.Insert(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("booking_id", b.ID).Str("uuid", b.UUID).
		Str("date", req.BookingDate).Str("customer", username).Msg("Booking created")
	return ToResponse(b), nil
}

// AssignGuide attaches the acting guide to an upcoming, still unguided
// booking. A guide leads at most one booking per calendar date.
func (s *Service) AssignGuide(ctx context.Context, username string, bookingID int64) (*Response, error) {
	g, err := s.resolveGuide(ctx, username)
	if err != nil {
		return nil, err
	}

	var assigned *Booking
	err = s.repo.InTx(ctx, func(txRepo Repository) error {
		b, err := txRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil || !b.BookingDate.After(s.today()) {
			// Past bookings are immutable and invisible for assignment.
			return fmt.Errorf("%w: id %d", ErrBookingNotFound, bookingID)
		}
		if b.HasGuide() {
			return fmt.Errorf("%w: booking %d", ErrAlreadyAssigned, bookingID)
		}

		busy, err := txRepo.ExistsForGuideOnDate(ctx, g.ID, b.BookingDate)
		if err != nil {
			return err
		}
		if busy {
			return fmt.Errorf("%w: guide %q on %s", ErrGuideDoubleBooked,
				username, b.BookingDate.Format(dateLayout))
		}

		if err := txRepo.AssignGuide(ctx, bookingID, g.ID); err != nil {
			return err
		}
		assigned, err = txRepo.GetByID(ctx, bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("booking_id", bookingID).Str("guide", username).Msg("Guide assigned")
	return ToResponse(assigned), nil
}

// Delete removes one of the acting customer's upcoming bookings. The
// booking must belong to the customer and still lie in the future; both
// checks failing reads as the booking not existing for this caller.
func (s *Service) Delete(ctx context.Context, username string, bookingID int64) error {
	c, err := s.resolveCustomer(ctx, username)
	if err != nil {
		return err
	}

	err = s.repo.InTx(ctx, func(txRepo Repository) error {
		upcoming, err := txRepo.List(ctx, s.upcomingFilter(&Filter{CustomerID: c.ID}))
		if err != nil {
			return err
		}
		if len(upcoming) == 0 {
			return fmt.Errorf("%w: no upcoming bookings for customer %q", ErrBookingNotFound, username)
		}

		owned := false
		for _, b := range upcoming {
			if b.ID == bookingID {
				owned = true
				break
			}
		}
		if !owned {
			return fmt.Errorf("%w: id %d", ErrBookingNotFound, bookingID)
		}

		return txRepo.Delete(ctx, bookingID)
	})
	if err != nil {
		return err
	}

	log.Info().Int64("booking_id", bookingID).Str("customer", username).Msg("Booking deleted")
	return nil
}

// GetByID returns one booking's read projection.
func (s *Service) GetByID(ctx context.Context, id int64) (*Response, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: id %d", ErrBookingNotFound, id)
	}
	return ToResponse(b), nil
}

// ListMine returns the acting customer's upcoming bookings. No upcoming
// bookings is an ordinary empty result, not an error.
func (s *Service) ListMine(ctx context.Context, username string) ([]*Response, error) {
	c, err := s.resolveCustomer(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.listUpcoming(ctx, &Filter{CustomerID: c.ID})
}

// ListUnassigned returns upcoming bookings with no guide yet.
func (s *Service) ListUnassigned(ctx context.Context) ([]*Response, error) {
	f := &Filter{}
	f.withoutGuide = true
	return s.listUpcoming(ctx, f)
}

// ListGuiding returns the acting guide's upcoming bookings.
func (s *Service) ListGuiding(ctx context.Context, username string) ([]*Response, error) {
	g, err := s.resolveGuide(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.listUpcoming(ctx, &Filter{GuideID: g.ID})
}

// GetAll returns every booking ordered by date ascending.
func (s *Service) GetAll(ctx context.Context) ([]*Response, error) {
	bookings, err := s.repo.List(ctx, s.dateSorted(&Filter{}))
	if err != nil {
		return nil, err
	}
	return toResponses(bookings), nil
}

// GetPaginated returns one page of the unfiltered listing.
func (s *Service) GetPaginated(ctx context.Context, page filters.PageRequest) (*filters.Paginated[*Response], error) {
	return s.GetFilteredPaginated(ctx, &Filter{PageRequest: page})
}

// GetFiltered returns the full result of the compiled filter.
func (s *Service) GetFiltered(ctx context.Context, f *Filter) ([]*Response, error) {
	bookings, err := s.repo.List(ctx, s.dateSorted(f))
	if err != nil {
		return nil, err
	}
	return toResponses(bookings), nil
}

// GetFilteredPaginated returns one page of the compiled filter's result.
func (s *Service) GetFilteredPaginated(ctx context.Context, f *Filter) (*filters.Paginated[*Response], error) {
	bookings, total, err := s.repo.ListPage(ctx, s.dateSorted(f))
	if err != nil {
		return nil, err
	}
	page := filters.NewPaginated(toResponses(bookings), total, f.PageRequest)
	return &page, nil
}

func (s *Service) listUpcoming(ctx context.Context, f *Filter) ([]*Response, error) {
	bookings, err := s.repo.List(ctx, s.upcomingFilter(f))
	if err != nil {
		return nil, err
	}
	return toResponses(bookings), nil
}

// upcomingFilter restricts a filter to strictly future dates and orders
// by date unless the caller picked a sort key.
func (s *Service) upcomingFilter(f *Filter) *Filter {
	day := s.today()
	f.dateAfter = &day
	return s.dateSorted(f)
}

// dateSorted defaults the listing order to booking date ascending.
func (s *Service) dateSorted(f *Filter) *Filter {
	if f.SortBy == "" {
		f.SortBy = "booking_date"
	}
	return f
}

func toResponses(bookings []*Booking) []*Response {
	out := make([]*Response, len(bookings))
	for i, b := range bookings {
		out[i] = ToResponse(b)
	}
	return out
}
