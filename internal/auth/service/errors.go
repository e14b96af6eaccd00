package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/credential-auth/internal/common/errors"
)

var (
	ErrUserAlreadyExists = commonerrors.NewDomainError(
		"USER_ALREADY_EXISTS",
		commonerrors.CategoryForbidden,
		http.StatusForbidden,
		"User already exists",
	)

	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryForbidden,
		http.StatusForbidden,
		"Invalid credentials",
	)

	ErrValidation = commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)

	ErrConfiguration = commonerrors.ErrMissingSigningSecret
)
