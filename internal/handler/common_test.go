package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/workshop-registration/internal/service"
)

func TestStatusFor(t *testing.T) {
	cases := map[service.Kind]int{
		service.KindInvalidUser:              http.StatusUnauthorized,
		service.KindInvalidWorkshopData:      http.StatusBadRequest,
		service.KindWorkshopAlreadyExist:     http.StatusBadRequest,
		service.KindUserAlreadyRegistered:    http.StatusBadRequest,
		service.KindWorkshopFull:             http.StatusBadRequest,
		service.KindWorkshopHasRegistrations: http.StatusBadRequest,
		service.KindWorkshopNotFound:         http.StatusNotFound,
		service.KindRegistrationNotFound:     http.StatusNotFound,
		service.KindInternal:                 http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, statusFor(kind), "kind %s", kind.Label())
	}
}
