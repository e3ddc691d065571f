package patient

import (
	"context"

	"github.com/frontdesk/frontdesk/internal/domain/catalog"
)

type Repository interface {
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id string) (*Record, error)
	Create(ctx context.Context, r Record) error
	Update(ctx context.Context, r Record) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	// ReplacePrescription overwrites the patient's medicineList and testList
	// wholesale. The upstream merges nothing; the snapshot is the prescription.
	ReplacePrescription(ctx context.Context, id string, meds []catalog.Entry, tests []TestEntry) error
}
