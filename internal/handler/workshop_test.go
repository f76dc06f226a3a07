package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/workshop-registration/internal/model"
	"github.com/iliyamo/workshop-registration/internal/service"
	"github.com/iliyamo/workshop-registration/internal/store/memory"
)

func newHandlers(t *testing.T) (*WorkshopHandler, *RegistrationHandler) {
	t.Helper()
	workshops := memory.NewWorkshopStore()
	registrations := memory.NewRegistrationStore()
	locks := service.NewCodeLocks()
	ws := service.NewWorkshopService(workshops, registrations, locks)
	ad := service.NewAdmissionService(workshops, registrations, locks)
	wh := NewWorkshopHandler(ws)
	rh := NewRegistrationHandler(ad, ws)
	return wh, rh
}

// request builds an echo context for a handler call.
func request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func createBody(code string) string {
	start := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	end := time.Now().UTC().Add(26 * time.Hour).Format(time.RFC3339)
	return `{"code":"` + code + `","name":"Pottery Basics","description":"Wheel throwing for beginners",` +
		`"startTime":"` + start + `","endTime":"` + end + `","capacity":8}`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiError {
	t.Helper()
	var e apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestWorkshopCreateAndGet(t *testing.T) {
	wh, _ := newHandlers(t)

	c, rec := request(http.MethodPost, "/api/v1/workshops", createBody("WS_00100"))
	require.NoError(t, wh.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Workshop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "WS_00100", created.Code)
	assert.NotZero(t, created.ID)

	c, rec = request(http.MethodGet, "/", "")
	c.SetPath("/api/v1/workshops/:code")
	c.SetParamNames("code")
	c.SetParamValues("WS_00100")
	require.NoError(t, wh.GetByCode(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWorkshopCreateDuplicate(t *testing.T) {
	wh, _ := newHandlers(t)

	c, rec := request(http.MethodPost, "/api/v1/workshops", createBody("WS_00100"))
	require.NoError(t, wh.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = request(http.MethodPost, "/api/v1/workshops", createBody("WS_00100"))
	require.NoError(t, wh.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "WorkshopAlreadyExist", body.Header)
	assert.False(t, body.IsSuccess)
}

func TestWorkshopCreateInvalid(t *testing.T) {
	wh, _ := newHandlers(t)

	// Start in the past.
	start := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
	end := time.Now().UTC().Add(26 * time.Hour).Format(time.RFC3339)
	body := `{"code":"WS_00100","name":"n","description":"d",` +
		`"startTime":"` + start + `","endTime":"` + end + `","capacity":8}`

	c, rec := request(http.MethodPost, "/api/v1/workshops", body)
	require.NoError(t, wh.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "InvalidWorkshopData", decodeError(t, rec).Header)
}

func TestWorkshopGetNotFound(t *testing.T) {
	wh, _ := newHandlers(t)

	c, rec := request(http.MethodGet, "/", "")
	c.SetPath("/api/v1/workshops/:code")
	c.SetParamNames("code")
	c.SetParamValues("WS_99999")
	require.NoError(t, wh.GetByCode(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "WorkshopNotFound", decodeError(t, rec).Header)
}

func TestWorkshopUpdate(t *testing.T) {
	wh, _ := newHandlers(t)

	c, rec := request(http.MethodPost, "/api/v1/workshops", createBody("WS_00100"))
	require.NoError(t, wh.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = request(http.MethodPut, "/", `{"capacity":0}`)
	c.SetPath("/api/v1/workshops/:code")
	c.SetParamNames("code")
	c.SetParamValues("WS_00100")
	require.NoError(t, wh.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Workshop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 0, updated.Capacity)

	c, rec = request(http.MethodPut, "/", `{"capacity":-2}`)
	c.SetPath("/api/v1/workshops/:code")
	c.SetParamNames("code")
	c.SetParamValues("WS_00100")
	require.NoError(t, wh.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkshopDelete(t *testing.T) {
	wh, _ := newHandlers(t)

	c, rec := request(http.MethodPost, "/api/v1/workshops", createBody("WS_00100"))
	require.NoError(t, wh.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = request(http.MethodDelete, "/", "")
	c.SetPath("/api/v1/workshops/:code")
	c.SetParamNames("code")
	c.SetParamValues("WS_00100")
	require.NoError(t, wh.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestWorkshopListUpcomingEmpty(t *testing.T) {
	wh, _ := newHandlers(t)

	c, rec := request(http.MethodGet, "/api/v1/workshops/upcoming", "")
	require.NoError(t, wh.ListUpcoming(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var msg apiMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "no upcoming workshops", msg.Message)
}

func TestWorkshopListAllEmpty(t *testing.T) {
	wh, _ := newHandlers(t)

	c, rec := request(http.MethodGet, "/api/v1/workshops", "")
	require.NoError(t, wh.ListAll(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var msg apiMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "no workshops found", msg.Message)
}
