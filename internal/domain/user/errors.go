package user

import (
	"fmt"

	"github.com/tourhub/tourhub-api/internal/pkg/apperrors"
)

var (
	ErrUsernameExists = fmt.Errorf("username %w", apperrors.ErrAlreadyExists)
	ErrVATExists      = fmt.Errorf("vat number %w", apperrors.ErrAlreadyExists)
)
