package customer

import (
	"time"

	"github.com/tourhub/tourhub-api/internal/domain/user"
)

// Customer wraps exactly one user account. The customer owns the user's
// lifecycle on creation: both rows are inserted in the same transaction.
// UUID is the public identifier, assigned at first persistence and never
// reassigned.
type Customer struct {
	ID        int64
	UUID      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time

	User user.User
}
