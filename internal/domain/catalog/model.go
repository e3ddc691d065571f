package catalog

import (
	"strings"

	"github.com/frontdesk/frontdesk/internal/domain/dose"
)

// Entry is one medicine in the catalog. Field names follow the upstream wire
// contract. The identity key is assigned upstream and treated as opaque.
type Entry struct {
	ID           string        `json:"_id,omitempty"`
	MedicineName string        `json:"medicineName"`
	MedicineType string        `json:"medicineType"`
	Dose         dose.Schedule `json:"dose"`
	Days         int           `json:"days"`
	Disease      string        `json:"disease,omitempty"`
}

// GroupKey is the disease name as used for grouping and filtering. Disease is
// stored case-sensitively but always compared lowercased.
func (e Entry) GroupKey() string {
	return strings.ToLower(e.Disease)
}
