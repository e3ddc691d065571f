package appointment

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	return s.repo.Get(ctx, id)
}

func validate(r Record) error {
	if strings.TrimSpace(r.Patient) == "" {
		return fmt.Errorf("patient is required")
	}
	if strings.TrimSpace(r.Doctor) == "" {
		return fmt.Errorf("doctor is required")
	}
	if !ValidDepartment(r.Department) {
		return fmt.Errorf("department must be one of: %s", strings.Join(Departments, ", "))
	}
	if strings.TrimSpace(r.Date) == "" {
		return fmt.Errorf("date is required")
	}
	if r.Status != StatusActive && r.Status != StatusInactive {
		return fmt.Errorf("status must be %q or %q", StatusActive, StatusInactive)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, r Record) error {
	if r.Status == "" {
		r.Status = StatusActive
	}
	if err := validate(r); err != nil {
		return err
	}
	return s.repo.Create(ctx, r)
}

func (s *Service) Update(ctx context.Context, r Record) error {
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	if err := validate(r); err != nil {
		return err
	}
	return s.repo.Update(ctx, r)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
