package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/workshop-registration/internal/model"
	"github.com/iliyamo/workshop-registration/internal/queue"
	"github.com/iliyamo/workshop-registration/internal/service"
)

// RegistrationHandler exposes admission control over HTTP.
type RegistrationHandler struct {
	Admissions *service.AdmissionService
	Workshops  *service.WorkshopService

	// publish is swappable in tests; defaults to the RabbitMQ publisher.
	publish func(context.Context, queue.RegistrationConfirmedEvent) error
}

func NewRegistrationHandler(a *service.AdmissionService, w *service.WorkshopService) *RegistrationHandler {
	return &RegistrationHandler{
		Admissions: a,
		Workshops:  w,
		publish:    queue.PublishRegistrationConfirmed,
	}
}

type registerWorkshopReq struct {
	Code             string  `json:"code"`
	Phone            *string `json:"phone"`
	PreferredContact string  `json:"preferredContact"`
}

// Register admits the calling user into a workshop.
func (h *RegistrationHandler) Register(c echo.Context) error {
	var req registerWorkshopReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiError{
			Header: service.KindInvalidWorkshopData.Label(), Message: "invalid body", IsSuccess: false,
		})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	reg, err := h.Admissions.Register(ctx, req.Code, currentIdentity(c), service.RegistrationDetails{
		Phone:            req.Phone,
		PreferredContact: model.PreferredContact(req.PreferredContact),
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	h.publishConfirmed(ctx, reg)
	return c.JSON(http.StatusCreated, reg)
}

// publishConfirmed emits the confirmation event in the background.
// Failures are logged inside the publisher and never surface here.
func (h *RegistrationHandler) publishConfirmed(ctx context.Context, reg *model.Registration) {
	ev := queue.RegistrationConfirmedEvent{
		RegistrationID:   reg.ID,
		WorkshopCode:     reg.WorkshopCode,
		UserName:         reg.UserName,
		UserEmail:        reg.UserEmail,
		PreferredContact: string(reg.PreferredContact),
		ConfirmedAt:      reg.CreatedAt.UTC().Format(time.RFC3339),
	}
	if w, err := h.Workshops.GetByCode(ctx, reg.WorkshopCode); err == nil {
		ev.WorkshopName = w.Name
		ev.StartsAt = w.StartTime.UTC().Format(time.RFC3339)
		ev.EndsAt = w.EndTime.UTC().Format(time.RFC3339)
	}
	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.publish(pctx, ev)
	}()
}

// Unregister deletes a registration by id.
func (h *RegistrationHandler) Unregister(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiError{
			Header: service.KindRegistrationNotFound.Label(), Message: "invalid registration id", IsSuccess: false,
		})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Admissions.Unregister(ctx, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAll returns every registration across workshops.
func (h *RegistrationHandler) ListAll(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	list, err := h.Admissions.ListAll(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	if len(list) == 0 {
		return c.JSON(http.StatusOK, apiMessage{Message: "no registrations found"})
	}
	return c.JSON(http.StatusOK, list)
}

// ListByWorkshop returns the registrations of one workshop.
func (h *RegistrationHandler) ListByWorkshop(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	list, err := h.Admissions.ListByWorkshop(ctx, c.Param("code"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if len(list) == 0 {
		return c.JSON(http.StatusOK, apiMessage{Message: "no registrations for this workshop"})
	}
	return c.JSON(http.StatusOK, list)
}

// ListMine returns the calling user's registrations.
func (h *RegistrationHandler) ListMine(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	list, err := h.Admissions.ListByUser(ctx, currentIdentity(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	if len(list) == 0 {
		return c.JSON(http.StatusOK, apiMessage{Message: "no registrations for this user"})
	}
	return c.JSON(http.StatusOK, list)
}
