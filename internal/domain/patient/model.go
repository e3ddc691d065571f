package patient

import (
	"github.com/frontdesk/frontdesk/internal/domain/catalog"
)

// TestEntry is one diagnostic test on a patient's prescription. Only the
// selected subset is ever persisted; there is no durable test catalog beyond
// the upstream seed list.
type TestEntry struct {
	TestName string `json:"testName"`
	Required bool   `json:"required"`
}

// Record is the patient as the upstream holds it: demographics, free-text
// vitals, and the prescription snapshot written wholesale by the last save
// from the prescription composer.
type Record struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	Status      string `json:"status"`
	Weight      string `json:"weight"`
	BP          string `json:"bp"`
	Temperature string `json:"temperature"`
	SpO2        string `json:"spo2"`
	BloodSugar  string `json:"bloodSugar"`

	MedicineList []catalog.Entry `json:"medicineList"`
	TestList     []TestEntry     `json:"testList"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)
