package prescription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/frontdesk/internal/domain/dose"
	"github.com/frontdesk/frontdesk/internal/platform/httperr"
	"github.com/frontdesk/frontdesk/internal/platform/session"
	"github.com/frontdesk/frontdesk/internal/platform/upstream"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the composer under /prescriptions. Composing is a
// doctor-only activity.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	p := g.Group("/prescriptions", session.RequireRole(session.RoleDoctor))
	p.POST("/:patientId", h.Start)
	p.GET("/:patientId", h.GetSession)
	p.DELETE("/:patientId", h.Discard)
	p.PUT("/:patientId/disease", h.SelectDisease)
	p.POST("/:patientId/rows/:index/edit", h.ToggleEdit)
	p.PUT("/:patientId/rows/:index/fields", h.SetRowField)
	p.PUT("/:patientId/rows/:index/days", h.SetDays)
	p.PUT("/:patientId/rows/:index/dose", h.SetDose)
	p.POST("/:patientId/rows/:index/select", h.ToggleSelect)
	p.PUT("/:patientId/tests/:index", h.SetTest)
	p.POST("/:patientId/save", h.Save)
}

func (h *Handler) Start(c echo.Context) error {
	sess, err := h.service.Start(c.Request().Context(), c.Param("patientId"))
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no patient selected")
		}
		return httperr.Translate(err)
	}
	return c.JSON(http.StatusCreated, sess)
}

func (h *Handler) GetSession(c echo.Context) error {
	sess, ok := h.service.Get(c.Param("patientId"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, ErrNoSession.Error())
	}
	return c.JSON(http.StatusOK, sess)
}

func (h *Handler) Discard(c echo.Context) error {
	h.service.Drop(c.Param("patientId"))
	return c.NoContent(http.StatusNoContent)
}

type diseaseRequest struct {
	Disease string `json:"disease" validate:"required"`
}

func (h *Handler) SelectDisease(c echo.Context) error {
	var req diseaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	sess, err := h.service.SelectDisease(c.Request().Context(), c.Param("patientId"), req.Disease)
	if err != nil {
		return translateSessionErr(err)
	}
	return c.JSON(http.StatusOK, sess)
}

func (h *Handler) ToggleEdit(c echo.Context) error {
	index, err := rowIndex(c)
	if err != nil {
		return err
	}
	sess, err := h.service.ToggleEdit(c.Param("patientId"), index)
	if err != nil {
		return translateSessionErr(err)
	}
	return c.JSON(http.StatusOK, sess)
}

type fieldRequest struct {
	Field string `json:"field" validate:"required,oneof=medicineName medicineType"`
	Value string `json:"value"`
}

func (h *Handler) SetRowField(c echo.Context) error {
	index, err := rowIndex(c)
	if err != nil {
		return err
	}
	var req fieldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	sess, err := h.service.SetRowField(c.Param("patientId"), index, req.Field, req.Value)
	if err != nil {
		return translateSessionErr(err)
	}
	return c.JSON(http.StatusOK, sess)
}

type daysRequest struct {
	Days string `json:"days"`
}

func (h *Handler) SetDays(c echo.Context) error {
	index, err := rowIndex(c)
	if err != nil {
		return err
	}
	var req daysRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	sess, err := h.service.SetDays(c.Param("patientId"), index, req.Days)
	if err != nil {
		return translateSessionErr(err)
	}
	return c.JSON(http.StatusOK, sess)
}

func (h *Handler) SetDose(c echo.Context) error {
	index, err := rowIndex(c)
	if err != nil {
		return err
	}
	var action dose.Action
	if err := c.Bind(&action); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	sess, err := h.service.SetDose(c.Param("patientId"), index, action)
	if err != nil {
		return translateSessionErr(err)
	}
	return c.JSON(http.StatusOK, sess)
}

func (h *Handler) ToggleSelect(c echo.Context) error {
	index, err := rowIndex(c)
	if err != nil {
		return err
	}
	sess, err := h.service.ToggleSelect(c.Param("patientId"), index)
	if err != nil {
		return translateSessionErr(err)
	}
	return c.JSON(http.StatusOK, sess)
}

type testRequest struct {
	Required bool `json:"required"`
}

func (h *Handler) SetTest(c echo.Context) error {
	index, err := rowIndex(c)
	if err != nil {
		return err
	}
	var req testRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	sess, err := h.service.SetTest(c.Param("patientId"), index, req.Required)
	if err != nil {
		return translateSessionErr(err)
	}
	return c.JSON(http.StatusOK, sess)
}

func (h *Handler) Save(c echo.Context) error {
	sess, err := h.service.Save(c.Request().Context(), c.Param("patientId"))
	if err != nil {
		return translateSessionErr(err)
	}
	return c.JSON(http.StatusOK, sess)
}

func rowIndex(c echo.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid row index")
	}
	return index, nil
}

func translateSessionErr(err error) error {
	switch {
	case errors.Is(err, ErrNoSession):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrRowIndex):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return httperr.Translate(err)
	}
}
