package patient

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
	// Both roles read; only the front desk writes demographics.
	read := api.Group("", session.RequireRole(session.RoleDoctor, session.RoleReceptionist))
	read.GET("/patients", h.ListPatients)
	read.GET("/patients/count", h.CountPatients)
	read.GET("/patients/:id", h.GetPatient)

	write := api.Group("", session.RequireRole(session.RoleReceptionist))
	write.POST("/patients/add", h.CreatePatient)
	write.PUT("/patients/:id", h.UpdatePatient)
	write.DELETE("/patients/:id", h.DeletePatient)
}

func (h *Handler) ListPatients(c echo.Context) error {
	records, err := h.svc.List(c.Request().Context())
	if err != nil {
		return httperr.Translate(err)
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) GetPatient(c echo.Context) error {
	rec, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httperr.Translate(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) CountPatients(c echo.Context) error {
	count, err := h.svc.Count(c.Request().Context())
	if err != nil {
		return httperr.Translate(err)
	}
	return c.JSON(http.StatusOK, map[string]int{"count": count})
}

type createRequest struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
	Weight      string `json:"weight"`
	BP          string `json:"bp"`
	Temperature string `json:"temperature"`
	SpO2        string `json:"spo2"`
	BloodSugar  string `json:"bloodSugar"`
}

func (r createRequest) record() Record {
	return Record{
		Name:        r.Name,
		Phone:       r.Phone,
		Gender:      r.Gender,
		Address:     r.Address,
		Status:      r.Status,
		Weight:      r.Weight,
		BP:          r.BP,
		Temperature: r.Temperature,
		SpO2:        r.SpO2,
		BloodSugar:  r.BloodSugar,
	}
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.svc.Create(c.Request().Context(), req.record()); err != nil {
		return httperr.Translate(err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
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

func (h *Handler) DeletePatient(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httperr.Translate(err)
	}
	return c.NoContent(http.StatusNoContent)
}
