package handlers

import (
	"errors"
	"net/http"

	"github.com/oksasatya/go-account-service/internal/application"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
)

// statusFor maps service errors onto HTTP status and client message.
// Unknown errors become 500 with a generic message so internals do not leak.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrInvalidPassword),
		errors.Is(err, application.ErrUsernameAlreadyUsed),
		errors.Is(err, application.ErrEmailAlreadyUsed):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, application.ErrAccountNotActivated):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, application.ErrSignupInProgress):
		return http.StatusConflict, err.Error()
	case errors.Is(err, repo.ErrVersionConflict):
		return http.StatusConflict, "account was modified concurrently, retry"
	case errors.Is(err, application.ErrActivationKeyNotFound),
		errors.Is(err, application.ErrResetKeyNotFound),
		errors.Is(err, application.ErrAccountNotFound):
		return http.StatusInternalServerError, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
