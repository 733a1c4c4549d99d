package guide

import (
	"time"

	"github.com/tourhub/tourhub-api/internal/domain/tour"
	"github.com/tourhub/tourhub-api/internal/domain/user"
)

// Guide wraps exactly one user account and references the single tour
// category it is qualified to lead. UUID is the public identifier,
// assigned at first persistence.
type Guide struct {
	ID        int64
	UUID      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time

	User user.User
	Tour tour.Tour
}
