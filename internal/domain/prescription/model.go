package prescription

import (
	"strconv"

	"github.com/frontdesk/frontdesk/internal/domain/catalog"
	"github.com/frontdesk/frontdesk/internal/domain/dose"
	"github.com/frontdesk/frontdesk/internal/domain/patient"
)

// State is where a composing session currently stands. A failed save never
// moves the session out of its editable state.
type State string

const (
	StateIdle            State = "idle"
	StateDiseaseSelected State = "disease-selected"
	StateSaved           State = "saved"
)

// DefaultTests seeds a session's test list when the upstream seed catalog is
// empty.
var DefaultTests = []string{
	"Blood Sugar",
	"Blood Pressure",
	"CBC",
	"LFT",
	"KFT",
	"ECG",
	"X-Ray",
	"Urine Test",
	"Lipid Profile",
	"Thyroid Panel",
}

// Row is one catalog medicine inside a session. Editing gates only the
// name/type fields; days and dose stay editable regardless, and Selected
// membership is independent of both.
type Row struct {
	catalog.Entry
	DaysInput string `json:"daysInput"`
	Editing   bool   `json:"editing"`
	Selected  bool   `json:"selected"`
}

func newRow(e catalog.Entry) Row {
	if e.Days < 1 {
		e.Days = 1
	}
	return Row{Entry: e, DaysInput: strconv.Itoa(e.Days)}
}

// coerceDays turns the clinician's raw day input into a positive integer,
// defaulting to 1 on parse failure or non-positive input.
func coerceDays(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Payload is exactly what a save writes onto the patient record: the
// selected medicines and the required tests, nothing else.
type Payload struct {
	MedicineList []catalog.Entry     `json:"medicineList"`
	TestList     []patient.TestEntry `json:"testList"`
}

// Session is one uninterrupted pass through the composer for a single
// patient, from disease selection to save.
type Session struct {
	PatientID string              `json:"patientId"`
	Patient   patient.Record      `json:"patient"`
	State     State               `json:"state"`
	Diseases  []string            `json:"diseases"`
	Disease   string              `json:"disease,omitempty"`
	Rows      []Row               `json:"rows"`
	Tests     []patient.TestEntry `json:"tests"`
	Saved     *Payload            `json:"saved,omitempty"`
}

// buildPayload projects the session onto the wire shape: selected rows with
// coerced days and their dose carried verbatim, tests filtered to required.
// Unselected rows and unchecked tests are absent, not present-with-false.
func (s *Session) buildPayload() Payload {
	p := Payload{
		MedicineList: []catalog.Entry{},
		TestList:     []patient.TestEntry{},
	}
	for _, row := range s.Rows {
		if !row.Selected {
			continue
		}
		p.MedicineList = append(p.MedicineList, catalog.Entry{
			MedicineName: row.MedicineName,
			MedicineType: row.MedicineType,
			Days:         coerceDays(row.DaysInput),
			Dose:         row.Dose,
		})
	}
	for _, t := range s.Tests {
		if !t.Required {
			continue
		}
		p.TestList = append(p.TestList, patient.TestEntry{TestName: t.TestName, Required: true})
	}
	return p
}

// ApplyDose is a convenience for applying a validated dose action to a row.
func (r *Row) ApplyDose(a dose.Action) error {
	updated, err := a.Apply(r.Dose)
	if err != nil {
		return err
	}
	r.Dose = updated
	return nil
}
