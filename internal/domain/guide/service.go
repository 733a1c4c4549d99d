package guide

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tourhub/tourhub-api/internal/domain/tour"
	"github.com/tourhub/tourhub-api/internal/domain/user"
	"github.com/tourhub/tourhub-api/internal/pkg/apperrors"
	"github.com/tourhub/tourhub-api/internal/pkg/filters"
	"github.com/tourhub/tourhub-api/internal/pkg/password"
)

// Service handles guide business logic
type Service struct {
	repo  Repository
	users user.Repository
	tours tour.Repository
}

// NewService creates guide service
func NewService(repo Repository, users user.Repository, tours tour.Repository) *Service {
	return &Service{repo: repo, users: users, tours: tours}
}

// Save creates a guide together with its user account in one transaction,
// resolving the qualification category against the tour catalogue first.
func (s *Service) Save(ctx context.Context, req *InsertRequest) (*Response, error) {
	if taken, err := s.users.ExistsByVAT(ctx, req.User.VAT); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: guide with vat number %q already exists", user.ErrVATExists, req.User.VAT)
	}

	if taken, err := s.users.ExistsByUsername(ctx, req.User.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: guide with username %q already exists", user.ErrUsernameExists, req.User.Username)
	}

	qualified, err := s.tours.GetByCategory(ctx, req.TourCategory)
	if err != nil {
		return nil, err
	}
	if qualified == nil {
		return nil, fmt.Errorf("%w: tour category %q does not exist", tour.ErrTourNotFound, req.TourCategory)
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

	g := &Guide{
		IsActive: active,
		Tour:     *qualified,
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
			Role:         user.RoleGuide,
			IsActive:     true,
		},
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	log.Info().Int64("guide_id", g.ID).Str("uuid", g.UUID).Str("category", g.Tour.Category).Msg("Guide saved")
	return ToResponse(g), nil
}

// GetByID returns one guide profile.
func (s *Service) GetByID(ctx context.Context, id int64) (*Response, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("%w: guide with id %d", ErrGuideNotFound, id)
	}
	return ToResponse(g), nil
}

// GetAll returns every guide ordered by id.
func (s *Service) GetAll(ctx context.Context) ([]*Response, error) {
	guides, err := s.repo.List(ctx, &Filter{})
	if err != nil {
		return nil, err
	}
	return toResponses(guides), nil
}

// GetPaginated returns one page of the unfiltered listing.
func (s *Service) GetPaginated(ctx context.Context, page filters.PageRequest) (*filters.Paginated[*Response], error) {
	return s.GetFilteredPaginated(ctx, &Filter{PageRequest: page})
}

// GetFiltered returns the full result of the compiled filter.
func (s *Service) GetFiltered(ctx context.Context, f *Filter) ([]*Response, error) {
	guides, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toResponses(guides), nil
}

// GetFilteredPaginated returns one page of the compiled filter's result.
func (s *Service) GetFilteredPaginated(ctx context.Context, f *Filter) (*filters.Paginated[*Response], error) {
	guides, total, err := s.repo.ListPage(ctx, f)
	if err != nil {
		return nil, err
	}
	page := filters.NewPaginated(toResponses(guides), total, f.PageRequest)
	return &page, nil
}

func toResponses(guides []*Guide) []*Response {
	out := make([]*Response, len(guides))
	for i, g := range guides {
		out[i] = ToResponse(g)
	}
	return out
}
