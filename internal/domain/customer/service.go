package customer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tourhub/tourhub-api/internal/domain/user"
	"github.com/tourhub/tourhub-api/internal/pkg/apperrors"
	"github.com/tourhub/tourhub-api/internal/pkg/filters"
	"github.com/tourhub/tourhub-api/internal/pkg/password"
)

// Service handles customer business logic
type Service struct {
	repo  Repository
	users user.Repository
}

// NewService creates customer service
func NewService(repo Repository, users user.Repository) *Service {
	return &Service{repo: repo, users: users}
}

// Save creates a customer together with its user account in one
// transaction. VAT and username pre-checks give friendly errors; the unique
// constraints stay authoritative when two registrations race.
func (s *Service) Save(ctx context.Context, req *InsertRequest) (*Response, error) {
	if taken, err := s.users.ExistsByVAT(ctx, req.User.VAT); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: customer with vat number %q already exists", user.ErrVATExists, req.User.VAT)
	}

	if taken, err := s.users.ExistsByUsername(ctx, req.User.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: customer with username %q already exists", user.ErrUsernameExists, req.User.Username)
	}

	birthDate, err := req.User.ParseDateOfBirth()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date of birth", apperrors.ErrInvalidArgument)
	}

	hash, err := password.Hash(req.User.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	c := &Customer{
		IsActive: active,
		User: user.User{
			Username:     req.User.Username,
			PasswordHash: hash,
			Firstname:    req.User.Firstname,
			Lastname:     req.User.Lastname,
			Email:        req.User.Email,
			VAT:          req.User.VAT,
			DateOfBirth:  birthDate,
			Gender:       user.Gender(req.User.Gender),
			Nationality:  req.User.Nationality,
			Role:         user.RoleCustomer,
			IsActive:     true,
		},
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	log.Info().Int64("customer_id", c.ID).Str("uuid", c.UUID).Msg("Customer saved")
	return ToResponse(c), nil
}

// GetByID returns one customer profile.
func (s *Service) GetByID(ctx context.Context, id int64) (*Response, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: customer with id %d", ErrCustomerNotFound, id)
	}
	return ToResponse(c), nil
}

// GetAll returns every customer ordered by id.
func (s *Service) GetAll(ctx context.Context) ([]*Response, error) {
	customers, err := s.repo.List(ctx, &Filter{})
	if err != nil {
		return nil, err
	}
	return toResponses(customers), nil
}

// GetPaginated returns one page of the unfiltered listing.
func (s *Service) GetPaginated(ctx context.Context, page filters.PageRequest) (*filters.Paginated[*Response], error) {
	return s.GetFilteredPaginated(ctx, &Filter{PageRequest: page})
}

// GetFiltered returns the full result of the compiled filter.
func (s *Service) GetFiltered(ctx context.Context, f *Filter) ([]*Response, error) {
	customers, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toResponses(customers), nil
}

// GetFilteredPaginated returns one page of the compiled filter's result.
func (s *Service) GetFilteredPaginated(ctx context.Context, f *Filter) (*filters.Paginated[*Response], error) {
	customers, total, err := s.repo.ListPage(ctx, f)
	if err != nil {
		return nil, err
	}
	page := filters.NewPaginated(toResponses(customers), total, f.PageRequest)
	return &page, nil
}

func toResponses(customers []*Customer) []*Response {
	out := make([]*Response, len(customers))
	for i, c := range customers {
		out[i] = ToResponse(c)
	}
	return out
}
