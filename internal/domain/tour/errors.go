package tour

import (
	"fmt"

	"github.com/tourhub/tourhub-api/internal/pkg/apperrors"
)

var (
	ErrTourNotFound   = fmt.Errorf("tour %w", apperrors.ErrNotFound)
	ErrCategoryExists = fmt.Errorf("tour category %w", apperrors.ErrAlreadyExists)
	ErrPriceExists    = fmt.Errorf("tour price %w", apperrors.ErrAlreadyExists)
	ErrTourInUse      = fmt.Errorf("a guide or booking referencing the tour %w", apperrors.ErrAlreadyExists)
)
