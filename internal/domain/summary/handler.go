package summary

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/frontdesk/internal/domain/patient"
	"github.com/frontdesk/frontdesk/internal/platform/httperr"
	"github.com/frontdesk/frontdesk/internal/platform/session"
)

// PatientSource is the patient lookup surface the summary views read from.
type PatientSource interface {
	Get(ctx context.Context, id string) (*patient.Record, error)
	FindByPhone(ctx context.Context, phone string) (*patient.Record, bool, error)
}

type Handler struct {
	patients PatientSource
	now      func() time.Time
}

func NewHandler(patients PatientSource) *Handler {
	return &Handler{patients: patients, now: time.Now}
}

// RegisterRoutes mounts the summary views. The medication check is public:
// it serves the walk-up kiosk where a patient types their own phone number.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	staff := session.RequireRole(session.RoleDoctor, session.RoleReceptionist)
	g.GET("/patients/:id/summary", h.GetSummary, staff)
	g.GET("/patients/:id/summary/print", h.PrintSummary, staff)
	g.GET("/medication-check", h.MedicationCheck)
}

func (h *Handler) GetSummary(c echo.Context) error {
	rec, err := h.patients.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httperr.Translate(err)
	}
	return c.JSON(http.StatusOK, Build(rec))
}

func (h *Handler) PrintSummary(c echo.Context) error {
	rec, err := h.patients.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httperr.Translate(err)
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return RenderDocument(c.Response(), Build(rec), h.now())
}

type medicationCheckResponse struct {
	Found   bool     `json:"found"`
	Summary *Summary `json:"summary,omitempty"`
}

// MedicationCheck looks a patient up by exact phone match. An unknown number
// is a successful lookup with found=false; only an unreachable upstream is
// an error.
func (h *Handler) MedicationCheck(c echo.Context) error {
	phone := c.QueryParam("phone")
	if phone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phone is required")
	}
	rec, found, err := h.patients.FindByPhone(c.Request().Context(), phone)
	if err != nil {
		return httperr.Translate(err)
	}
	if !found {
		return c.JSON(http.StatusOK, medicationCheckResponse{Found: false})
	}
	s := Build(rec)
	return c.JSON(http.StatusOK, medicationCheckResponse{Found: true, Summary: &s})
}
