package tour

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Service handles tour business logic
type Service struct {
	repo Repository
}

// NewService creates tour service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save creates a new tour. The category pre-check gives a friendly message;
// the unique constraints remain authoritative if two saves race.
func (s *Service) Save(ctx context.Context, req *InsertRequest) (*Response, error) {
	existing, err := s.repo.GetByCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: the tour of the category %q already exists", ErrCategoryExists, req.Category)
	}

	t := &Tour{
		Category: req.Category,
		Price:    req.Price,
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, err
	}

	log.Info().Int64("tour_id", t.ID).Str("category", t.Category).Msg("Tour saved")
	return ToResponse(t), nil
}

// Delete removes a tour by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("%w: tour with id %d does not exist", ErrTourNotFound, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Int64("tour_id", id).Msg("Tour deleted")
	return nil
}

// GetAll returns every tour ordered by id.
func (s *Service) GetAll(ctx context.Context) ([]*Response, error) {
	tours, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*Response, len(tours))
	for i, t := range tours {
		out[i] = ToResponse(t)
	}
	return out, nil
}

// GetByID returns a single tour.
func (s *Service) GetByID(ctx context.Context, id int64) (*Response, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: tour with id %d does not exist", ErrTourNotFound, id)
	}
	return ToResponse(t), nil
}
