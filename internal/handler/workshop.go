package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/workshop-registration/internal/model"
	"github.com/iliyamo/workshop-registration/internal/service"
)

// WorkshopHandler exposes workshop management over HTTP.
type WorkshopHandler struct {
	Workshops *service.WorkshopService
}

func NewWorkshopHandler(w *service.WorkshopService) *WorkshopHandler {
	return &WorkshopHandler{Workshops: w}
}

type createWorkshopReq struct {
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Capacity    int        `json:"capacity"`
}

type updateWorkshopReq struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Capacity    *int       `json:"capacity"`
}

// Create registers a new workshop.
func (h *WorkshopHandler) Create(c echo.Context) error {
	var req createWorkshopReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiError{
			Header: service.KindInvalidWorkshopData.Label(), Message: "invalid body", IsSuccess: false,
		})
	}

	w := &model.Workshop{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
	}
	if req.StartTime != nil {
		w.StartTime = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		w.EndTime = req.EndTime.UTC()
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	created, err := h.Workshops.Create(ctx, w)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update partially modifies a workshop identified by its code.
func (h *WorkshopHandler) Update(c echo.Context) error {
	var req updateWorkshopReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiError{
			Header: service.KindInvalidWorkshopData.Label(), Message: "invalid body", IsSuccess: false,
		})
	}

	upd := service.WorkshopUpdate{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
	}
	if req.StartTime != nil {
		t := req.StartTime.UTC()
		upd.StartTime = &t
	}
	if req.EndTime != nil {
		t := req.EndTime.UTC()
		upd.EndTime = &t
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	updated, err := h.Workshops.Update(ctx, c.Param("code"), upd)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a workshop that has no registrations.
func (h *WorkshopHandler) Delete(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Workshops.Delete(ctx, c.Param("code")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetByCode returns one workshop.
func (h *WorkshopHandler) GetByCode(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	w, err := h.Workshops.GetByCode(ctx, c.Param("code"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, w)
}

// ListAll returns every workshop with its registrations attached.
func (h *WorkshopHandler) ListAll(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	list, err := h.Workshops.ListAll(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	if len(list) == 0 {
		return c.JSON(http.StatusOK, apiMessage{Message: "no workshops found"})
	}
	return c.JSON(http.StatusOK, list)
}

// ListUpcoming returns workshops that have not ended yet.  Public.
func (h *WorkshopHandler) ListUpcoming(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	list, err := h.Workshops.ListUpcoming(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	if len(list) == 0 {
		return c.JSON(http.StatusOK, apiMessage{Message: "no upcoming workshops"})
	}
	return c.JSON(http.StatusOK, list)
}
