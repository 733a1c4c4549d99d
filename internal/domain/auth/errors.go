package auth

import (
	"fmt"

	"github.com/tourhub/tourhub-api/internal/pkg/apperrors"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords; login never reveals which one failed.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", apperrors.ErrNotAuthorized)

	ErrAccountDisabled = fmt.Errorf("account disabled: %w", apperrors.ErrNotAuthorized)
)
