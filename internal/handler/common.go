package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/workshop-registration/internal/service"
)

// apiError is the JSON shape returned for every failed request.
type apiError struct {
	Header    string `json:"header"`
	Message   string `json:"message"`
	IsSuccess bool   `json:"isSuccess"`
}

// apiMessage wraps informational responses, e.g. empty list results.
type apiMessage struct {
	Message string `json:"message"`
}

// statusFor maps a business error kind to its HTTP status.  Unknown
// kinds fall through to 500.
func statusFor(k service.Kind) int {
	switch k {
	case service.KindInvalidUser:
		return http.StatusUnauthorized
	case service.KindInvalidWorkshopData,
		service.KindWorkshopAlreadyExist,
		service.KindUserAlreadyRegistered,
		service.KindWorkshopFull,
		service.KindWorkshopHasRegistrations:
		return http.StatusBadRequest
	case service.KindWorkshopNotFound, service.KindRegistrationNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError renders a service error as JSON.  Typed errors
// keep their kind's label and message; anything else is reported as an
// internal error without leaking details.
func writeServiceError(c echo.Context, err error) error {
	var se *service.Error
	if e, ok := err.(*service.Error); ok {
		se = e
	} else {
		se = &service.Error{Kind: service.KindInternal, Message: "internal server error"}
	}
	return c.JSON(statusFor(se.Kind), apiError{
		Header:    se.Kind.Label(),
		Message:   se.Message,
		IsSuccess: false,
	})
}

// currentIdentity builds the caller's identity from the JWT claims
// that the auth middleware stored in the context.
func currentIdentity(c echo.Context) service.Identity {
	id := service.Identity{}
	if v, ok := c.Get("preferred_username").(string); ok {
		id.UserName = v
	}
	if v, ok := c.Get("email").(string); ok {
		id.Email = v
	}
	return id
}

// reqContext bounds a handler's store calls.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
