package customer

import (
	"fmt"

	"github.com/tourhub/tourhub-api/internal/pkg/apperrors"
)

var (
	ErrCustomerNotFound = fmt.Errorf("customer %w", apperrors.ErrNotFound)
	ErrProfileExists    = fmt.Errorf("customer profile %w", apperrors.ErrAlreadyExists)
)
