// Package auth fronts the upstream credential endpoints. The upstream issues
// and verifies tokens; this service only shapes the requests, forces the
// registration role, and relays the outcome.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/frontdesk/frontdesk/internal/platform/session"
	"github.com/frontdesk/frontdesk/internal/platform/upstream"
)

// Credentials is a login attempt. The requested role is part of the check:
// valid credentials under the wrong role are still rejected upstream.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Grant is what a successful login yields.
type Grant struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// Registration creates a new staff account. The role is not caller-supplied;
// every self-registration is a receptionist, and doctor accounts are
// provisioned out of band.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Repository interface {
	Login(ctx context.Context, creds Credentials) (*Grant, error)
	Register(ctx context.Context, reg Registration) error
}

type HTTPRepository struct {
	client *upstream.Client
}

func NewHTTPRepository(client *upstream.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) Login(ctx context.Context, creds Credentials) (*Grant, error) {
	var grant Grant
	if err := r.client.Post(ctx, "/api/auth/login", creds, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *HTTPRepository) Register(ctx context.Context, reg Registration) error {
	return r.client.Post(ctx, "/api/auth/register", reg, nil)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Login(ctx context.Context, creds Credentials) (*Grant, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	switch creds.Role {
	case session.RoleDoctor, session.RoleReceptionist:
	default:
		return nil, fmt.Errorf("unknown role %q", creds.Role)
	}
	return s.repo.Login(ctx, creds)
}

// Register creates a receptionist account regardless of what the caller
// asked for.
func (s *Service) Register(ctx context.Context, reg Registration) error {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		return fmt.Errorf("name, email and password are required")
	}
	reg.Role = session.RoleReceptionist
	return s.repo.Register(ctx, reg)
}
