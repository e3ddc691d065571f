// Package dashboard serves the landing-page counters.
package dashboard

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/frontdesk/internal/platform/httperr"
	"github.com/frontdesk/frontdesk/internal/platform/session"
)

// Counter is any domain that can report how many records it holds.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Stats is the dashboard payload.
type Stats struct {
	Patients     int `json:"patients"`
	Appointments int `json:"appointments"`
}

type Service struct {
	patients     Counter
	appointments Counter
}

func NewService(patients, appointments Counter) *Service {
	return &Service{patients: patients, appointments: appointments}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	patients, err := s.patients.Count(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointments.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{Patients: patients, Appointments: appointments}, nil
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.GetStats, session.RequireRole(session.RoleDoctor, session.RoleReceptionist))
}

func (h *Handler) GetStats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return httperr.Translate(err)
	}
	return c.JSON(http.StatusOK, stats)
}
