// Package summary projects a patient record into the read-only views the
// front desk hands out: the on-screen prescription summary and the printable
// document. Both views render dose schedules through the same formatter, so
// what the clinician reads on screen is byte for byte what prints.
package summary

import (
	"github.com/frontdesk/frontdesk/internal/domain/patient"
)

// MedicineLine is one prescribed medicine with its dose schedule already
// rendered as text.
type MedicineLine struct {
	MedicineName string `json:"medicineName"`
	MedicineType string `json:"medicineType"`
	Days         int    `json:"days"`
	DoseText     string `json:"doseText"`
}

// Summary is the flattened prescription view for a single patient.
type Summary struct {
	PatientID   string `json:"patientId"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Gender      string `json:"gender,omitempty"`
	Address     string `json:"address,omitempty"`
	Weight      string `json:"weight,omitempty"`
	BP          string `json:"bp,omitempty"`
	Temperature string `json:"temperature,omitempty"`
	SpO2        string `json:"spo2,omitempty"`
	BloodSugar  string `json:"bloodSugar,omitempty"`

	Medicines []MedicineLine `json:"medicines"`
	Tests     []string       `json:"tests"`
}

// Build flattens a patient record. Tests carry only their names; the
// required flag already filtered membership at save time, so anything on the
// record is listed.
func Build(rec *patient.Record) Summary {
	s := Summary{
		PatientID:   rec.ID,
		Name:        rec.Name,
		Phone:       rec.Phone,
		Gender:      rec.Gender,
		Address:     rec.Address,
		Weight:      rec.Weight,
		BP:          rec.BP,
		Temperature: rec.Temperature,
		SpO2:        rec.SpO2,
		BloodSugar:  rec.BloodSugar,
		Medicines:   []MedicineLine{},
		Tests:       []string{},
	}
	for _, med := range rec.MedicineList {
		s.Medicines = append(s.Medicines, MedicineLine{
			MedicineName: med.MedicineName,
			MedicineType: med.MedicineType,
			Days:         med.Days,
			DoseText:     med.Dose.Summarize(),
		})
	}
	for _, t := range rec.TestList {
		s.Tests = append(s.Tests, t.TestName)
	}
	return s
}
