package appointment

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/frontdesk/internal/platform/httperr"
	"github.com/frontdesk/frontdesk/internal/platform/session"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", session.RequireRole(session.RoleDoctor, session.RoleReceptionist))
	read.GET("/appointments", h.ListAppointments)
	read.GET("/appointments/count", h.CountAppointments)
	read.GET("/appointments/departments", h.ListDepartments)
	read.GET("/appointments/:id", h.GetAppointment)

	write := api.Group("", session.RequireRole(session.RoleReceptionist))
	write.POST("/appointments/add", h.CreateAppointment)
	write.PUT("/appointments/:id", h.UpdateAppointment)
	write.DELETE("/appointments/:id", h.DeleteAppointment)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	records, err := h.svc.List(c.Request().Context())
	if err != nil {
		return httperr.Translate(err)
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	rec, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httperr.Translate(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) CountAppointments(c echo.Context) error {
	count, err := h.svc.Count(c.Request().Context())
	if err != nil {
		return httperr.Translate(err)
	}
	return c.JSON(http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) ListDepartments(c echo.Context) error {
	return c.JSON(http.StatusOK, Departments)
}

type createRequest struct {
	Patient    string `json:"patient" validate:"required"`
	Doctor     string `json:"doctor" validate:"required"`
	Department string `json:"department" validate:"required"`
	Date       string `json:"date" validate:"required"`
	Problem    string `json:"problem"`
	Status     string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rec := Record{
		Patient:    req.Patient,
		Doctor:     req.Doctor,
		Department: req.Department,
		Date:       req.Date,
		Problem:    req.Problem,
		Status:     req.Status,
	}
	if err := h.svc.Create(c.Request().Context(), rec); err != nil {
		return httperr.Translate(err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	rec.ID = c.Param("id")

	if err := h.svc.Update(c.Request().Context(), rec); err != nil {
		return httperr.Translate(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httperr.Translate(err)
	}
	return c.NoContent(http.StatusNoContent)
}
