package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the full catalog.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.repo.List(ctx)
}

// Grouped returns the catalog keyed by lowercased disease name. The grouping
// is a derived view, never persisted.
func (s *Service) Grouped(ctx context.Context) (map[string][]Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]Entry)
	for _, e := range entries {
		grouped[e.GroupKey()] = append(grouped[e.GroupKey()], e)
	}
	return grouped, nil
}

// Diseases returns the distinct lowercased disease names, sorted.
func (s *Service) Diseases(ctx context.Context) ([]string, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var diseases []string
	for _, e := range entries {
		key := e.GroupKey()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		diseases = append(diseases, key)
	}
	sort.Strings(diseases)
	return diseases, nil
}

// ByDisease returns the entries for one disease, matched case-insensitively.
func (s *Service) ByDisease(ctx context.Context, disease string) ([]Entry, error) {
	return s.repo.ListByDisease(ctx, strings.ToLower(disease))
}

func (s *Service) Get(ctx context.Context, id string) (*Entry, error) {
	return s.repo.Get(ctx, id)
}

func validateEntry(e Entry) error {
	if strings.TrimSpace(e.MedicineName) == "" {
		return fmt.Errorf("medicineName is required")
	}
	if strings.TrimSpace(e.MedicineType) == "" {
		return fmt.Errorf("medicineType is required")
	}
	if e.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}
	return nil
}

// SubmitBatch validates every row, stamps the shared disease name on each,
// and persists the batch with a single upstream call. All validation happens
// before anything goes on the wire.
func (s *Service) SubmitBatch(ctx context.Context, disease string, rows []Entry) error {
	if strings.TrimSpace(disease) == "" {
		return fmt.Errorf("disease is required")
	}
	if len(rows) == 0 {
		return fmt.Errorf("at least one medicine is required")
	}
	for i, row := range rows {
		if err := validateEntry(row); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	stamped := make([]Entry, len(rows))
	for i, row := range rows {
		row.Disease = disease
		stamped[i] = row
	}
	return s.repo.CreateBatch(ctx, stamped)
}

// Update rewrites one catalog entry, any field included. Editing an entry
// fetched without a dose is safe: the decoded zero value is already the
// all-false four-slot schedule.
func (s *Service) Update(ctx context.Context, e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(e.Disease) == "" {
		return fmt.Errorf("disease is required")
	}
	if err := validateEntry(e); err != nil {
		return err
	}
	return s.repo.Update(ctx, e)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}
	return s.repo.Delete(ctx, id)
}
