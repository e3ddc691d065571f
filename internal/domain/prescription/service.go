package prescription

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/frontdesk/frontdesk/internal/domain/catalog"
	"github.com/frontdesk/frontdesk/internal/domain/dose"
	"github.com/frontdesk/frontdesk/internal/domain/patient"
)

// PatientDirectory is the slice of the patient domain the composer needs:
// resolving the patient a session is opened for and writing the finished
// prescription back onto their record.
type PatientDirectory interface {
	Get(ctx context.Context, id string) (*patient.Record, error)
	ReplacePrescription(ctx context.Context, id string, medicines []catalog.Entry, tests []patient.TestEntry) error
}

// Catalog is the slice of the medicine catalog the composer reads from.
type Catalog interface {
	Diseases(ctx context.Context) ([]string, error)
	ByDisease(ctx context.Context, disease string) ([]catalog.Entry, error)
}

// TestSource lists the investigations a new session offers for ticking.
type TestSource interface {
	ListTests(ctx context.Context) ([]patient.TestEntry, error)
}

// ErrNoSession is returned when an operation targets a patient with no open
// composing session.
var ErrNoSession = fmt.Errorf("no open prescription session")

// ErrRowIndex is returned when a row or test index falls outside the session.
var ErrRowIndex = fmt.Errorf("row index out of range")

// Service holds the open composing sessions, one per patient, so the map is
// bounded by the patient population: Start replaces any session already open
// for the same patient, and Start refuses patients the upstream does not
// know. Sessions are transient; only a successful save touches the upstream
// record.
//
// Every method that hands a *Session out returns a deep copy taken under the
// mutex. The live session never leaves the service, so callers can marshal
// the result while other requests mutate the same session.
type Service struct {
	patients PatientDirectory
	catalog  Catalog
	tests    TestSource

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewService(patients PatientDirectory, cat Catalog, tests TestSource) *Service {
	return &Service{
		patients: patients,
		catalog:  cat,
		tests:    tests,
		sessions: make(map[string]*Session),
	}
}

// clone deep-copies the session. Row and test elements are plain value
// structs, so copying the slices is a full copy.
func (s *Session) clone() *Session {
	cp := *s
	cp.Diseases = append([]string(nil), s.Diseases...)
	cp.Rows = append([]Row(nil), s.Rows...)
	cp.Tests = append([]patient.TestEntry(nil), s.Tests...)
	if s.Saved != nil {
		saved := Payload{
			MedicineList: append([]catalog.Entry(nil), s.Saved.MedicineList...),
			TestList:     append([]patient.TestEntry(nil), s.Saved.TestList...),
		}
		cp.Saved = &saved
	}
	return &cp
}

// update runs fn on the live session and returns a snapshot, all under the
// mutex. fn must not block.
func (s *Service) update(patientID string, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[patientID]
	if !ok {
		return nil, ErrNoSession
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	return sess.clone(), nil
}

// Start opens a fresh session for the patient, replacing any session already
// open for them. The test list is seeded from the upstream catalog, falling
// back to the built-in defaults when it is empty.
func (s *Service) Start(ctx context.Context, patientID string) (*Session, error) {
	rec, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	diseases, err := s.catalog.Diseases(ctx)
	if err != nil {
		return nil, err
	}
	tests, err := s.tests.ListTests(ctx)
	if err != nil {
		return nil, err
	}
	if len(tests) == 0 {
		tests = make([]patient.TestEntry, 0, len(DefaultTests))
		for _, name := range DefaultTests {
			tests = append(tests, patient.TestEntry{TestName: name})
		}
	}
	sess := &Session{
		PatientID: patientID,
		Patient:   *rec,
		State:     StateIdle,
		Diseases:  diseases,
		Rows:      []Row{},
		Tests:     tests,
	}
	s.mu.Lock()
	s.sessions[patientID] = sess
	snap := sess.clone()
	s.mu.Unlock()
	return snap, nil
}

// Get returns a snapshot of the open session for the patient, if any.
func (s *Service) Get(patientID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[patientID]
	if !ok {
		return nil, false
	}
	return sess.clone(), true
}

// Drop discards the patient's session without saving.
func (s *Service) Drop(patientID string) {
	s.mu.Lock()
	delete(s.sessions, patientID)
	s.mu.Unlock()
}

// SelectDisease loads the medicines for the disease into the session and
// moves it to the disease-selected state. Rows arrive unselected and not in
// edit mode; switching disease discards the previous rows entirely.
func (s *Service) SelectDisease(ctx context.Context, patientID, disease string) (*Session, error) {
	disease = strings.ToLower(strings.TrimSpace(disease))
	if disease == "" {
		return nil, fmt.Errorf("disease is required")
	}
	if _, ok := s.Get(patientID); !ok {
		return nil, ErrNoSession
	}
	entries, err := s.catalog.ByDisease(ctx, disease)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, newRow(e))
	}
	return s.update(patientID, func(sess *Session) error {
		sess.Disease = disease
		sess.Rows = rows
		sess.State = StateDiseaseSelected
		sess.Saved = nil
		return nil
	})
}

func (s *Service) updateRow(patientID string, index int, fn func(*Row) error) (*Session, error) {
	return s.update(patientID, func(sess *Session) error {
		if index < 0 || index >= len(sess.Rows) {
			return ErrRowIndex
		}
		return fn(&sess.Rows[index])
	})
}

// ToggleEdit flips edit mode on a single row. Other rows are untouched.
func (s *Service) ToggleEdit(patientID string, index int) (*Session, error) {
	return s.updateRow(patientID, index, func(row *Row) error {
		row.Editing = !row.Editing
		return nil
	})
}

// SetRowField updates a row's medicine name or type. The write lands only
// while the row is in edit mode; otherwise it is silently ignored and the
// session is returned unchanged.
func (s *Service) SetRowField(patientID string, index int, field, value string) (*Session, error) {
	switch field {
	case "medicineName", "medicineType":
	default:
		return nil, fmt.Errorf("unknown field %q", field)
	}
	return s.updateRow(patientID, index, func(row *Row) error {
		if !row.Editing {
			return nil
		}
		if field == "medicineName" {
			row.MedicineName = value
		} else {
			row.MedicineType = value
		}
		return nil
	})
}

// SetDays records the raw day input on a row. Unlike name and type it is
// accepted whether or not the row is in edit mode; coercion to a positive
// integer happens at save.
func (s *Service) SetDays(patientID string, index int, raw string) (*Session, error) {
	return s.updateRow(patientID, index, func(row *Row) error {
		row.DaysInput = raw
		return nil
	})
}

// SetDose applies a single checkbox action to a row's dose schedule. Like
// days it does not require edit mode.
func (s *Service) SetDose(patientID string, index int, action dose.Action) (*Session, error) {
	if err := action.Validate(); err != nil {
		return nil, err
	}
	return s.updateRow(patientID, index, func(row *Row) error {
		return row.ApplyDose(action)
	})
}

// ToggleSelect flips whether a row is part of the prescription being built.
func (s *Service) ToggleSelect(patientID string, index int) (*Session, error) {
	return s.updateRow(patientID, index, func(row *Row) error {
		row.Selected = !row.Selected
		return nil
	})
}

// SetTest marks an investigation as required or not.
func (s *Service) SetTest(patientID string, index int, required bool) (*Session, error) {
	return s.update(patientID, func(sess *Session) error {
		if index < 0 || index >= len(sess.Tests) {
			return ErrRowIndex
		}
		sess.Tests[index].Required = required
		return nil
	})
}

// Save writes the selected medicines and required tests onto the patient
// record, replacing whatever prescription was there before. On success the
// session moves to saved and holds the exact payload written; on failure the
// session stays in its editable state untouched.
func (s *Service) Save(ctx context.Context, patientID string) (*Session, error) {
	var payload Payload
	if _, err := s.update(patientID, func(sess *Session) error {
		if sess.State == StateIdle {
			return fmt.Errorf("select a disease before saving")
		}
		payload = sess.buildPayload()
		return nil
	}); err != nil {
		return nil, err
	}

	// The upstream call happens outside the mutex; the session is only
	// committed to saved once the write is acknowledged.
	if err := s.patients.ReplacePrescription(ctx, patientID, payload.MedicineList, payload.TestList); err != nil {
		return nil, err
	}

	return s.update(patientID, func(sess *Session) error {
		sess.State = StateSaved
		sess.Saved = &payload
		return nil
	})
}
