package booking

import (
	"fmt"

	"github.com/tourhub/tourhub-api/internal/pkg/apperrors"
)

var (
	ErrBookingNotFound = fmt.Errorf("booking %w", apperrors.ErrNotFound)

	// ErrDuplicateBooking fires when a customer already holds a booking on
	// the requested date.
	ErrDuplicateBooking = fmt.Errorf("booking for this date %w", apperrors.ErrAlreadyExists)

	// ErrGuideDoubleBooked fires when the acting guide already leads a
	// booking on the target booking's date.
	ErrGuideDoubleBooked = fmt.Errorf("guide booking for this date %w", apperrors.ErrAlreadyExists)

	// ErrAlreadyAssigned fires when the target booking already carries a
	// guide.
	ErrAlreadyAssigned = fmt.Errorf("guide assignment %w", apperrors.ErrAlreadyExists)

	// ErrNotACustomer and ErrNotAGuide signal that the acting principal
	// could not be resolved to the profile the operation requires.
	ErrNotACustomer = fmt.Errorf("acting user holds no customer profile: %w", apperrors.ErrNotAuthorized)
	ErrNotAGuide    = fmt.Errorf("acting user holds no guide profile: %w", apperrors.ErrNotAuthorized)
)
