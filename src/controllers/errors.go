package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"bookingapi/src/repository"
)

var (
	ErrUnauthenticated    = errors.New("user information not found in the request")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEnquiryNotFound    = errors.New("enquiry not found")
	ErrOwnerUnreachable   = errors.New("booking owner has no reachable email address")
	ErrMailDelivery       = errors.New("failed to send email")
	ErrPlaceLookup        = errors.New("place details lookup failed")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInactiveUser       = errors.New("user account is not active")
	ErrDuplicateUser      = errors.New("username or email already registered")
)

// RequestError is a client input problem reported with status 400.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func badRequest(message string) (int, error) {
	return http.StatusBadRequest, &RequestError{Message: message}
}

// storeFailure maps a repository error to a status, substituting notFound for ErrNotFound.
func storeFailure(err error, notFound error) (int, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return http.StatusNotFound, notFound
	}
	return http.StatusInternalServerError, err
}

func wrap(sentinel error, err error) error {
	return fmt.Errorf("%w: %s", sentinel, err.Error())
}
