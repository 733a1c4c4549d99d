package guide

import (
	"fmt"

	"github.com/tourhub/tourhub-api/internal/pkg/apperrors"
)

var (
	ErrGuideNotFound = fmt.Errorf("guide %w", apperrors.ErrNotFound)
	ErrProfileExists = fmt.Errorf("guide profile %w", apperrors.ErrAlreadyExists)
)
