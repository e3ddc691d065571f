package prescription

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/frontdesk/frontdesk/internal/domain/catalog"
	"github.com/frontdesk/frontdesk/internal/domain/dose"
	"github.com/frontdesk/frontdesk/internal/domain/patient"
)

type fakePatients struct {
	record     *patient.Record
	getErr     error
	replaceErr error

	replacedID    string
	replacedMeds  []catalog.Entry
	replacedTests []patient.TestEntry
	replaceCalls  int
}

func (f *fakePatients) Get(ctx context.Context, id string) (*patient.Record, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.record, nil
}

func (f *fakePatients) ReplacePrescription(ctx context.Context, id string, medicines []catalog.Entry, tests []patient.TestEntry) error {
	f.replaceCalls++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replacedID = id
	f.replacedMeds = medicines
	f.replacedTests = tests
	return nil
}

type fakeCatalog struct {
	diseases []string
	entries  map[string][]catalog.Entry
}

func (f *fakeCatalog) Diseases(ctx context.Context) ([]string, error) {
	return f.diseases, nil
}

func (f *fakeCatalog) ByDisease(ctx context.Context, disease string) ([]catalog.Entry, error) {
	return f.entries[disease], nil
}

type fakeTests struct {
	tests []patient.TestEntry
}

func (f *fakeTests) ListTests(ctx context.Context) ([]patient.TestEntry, error) {
	return f.tests, nil
}

func newTestService() (*Service, *fakePatients) {
	patients := &fakePatients{
		record: &patient.Record{ID: "p1", Name: "Ramesh Kumar", Phone: "9876543210"},
	}
	cat := &fakeCatalog{
		diseases: []string{"fever", "migraine"},
		entries: map[string][]catalog.Entry{
			"fever": {
				{ID: "m1", MedicineName: "Paracetamol", MedicineType: "Tablet", Days: 3, Disease: "fever"},
				{ID: "m2", MedicineName: "Cough Syrup", MedicineType: "Syrup", Days: 5, Disease: "fever"},
			},
		},
	}
	return NewService(patients, cat, &fakeTests{}), patients
}

func startSession(t *testing.T, svc *Service) *Session {
	t.Helper()
	sess, err := svc.Start(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return sess
}

func TestStart_SeedsDefaultTestsWhenUpstreamEmpty(t *testing.T) {
	svc, _ := newTestService()
	sess := startSession(t, svc)

	if sess.State != StateIdle {
		t.Fatalf("state = %q, want %q", sess.State, StateIdle)
	}
	if len(sess.Tests) != len(DefaultTests) {
		t.Fatalf("got %d tests, want %d", len(sess.Tests), len(DefaultTests))
	}
	for i, name := range DefaultTests {
		if sess.Tests[i].TestName != name {
			t.Errorf("test %d = %q, want %q", i, sess.Tests[i].TestName, name)
		}
		if sess.Tests[i].Required {
			t.Errorf("test %q starts required", name)
		}
	}
}

func TestStart_UpstreamTestsWin(t *testing.T) {
	svc, _ := newTestService()
	svc.tests = &fakeTests{tests: []patient.TestEntry{{TestName: "MRI"}}}

	sess := startSession(t, svc)
	if len(sess.Tests) != 1 || sess.Tests[0].TestName != "MRI" {
		t.Fatalf("tests = %+v, want the upstream list", sess.Tests)
	}
}

func TestStart_UnknownPatient(t *testing.T) {
	svc, patients := newTestService()
	patients.getErr = errors.New("boom")

	if _, err := svc.Start(context.Background(), "missing"); err == nil {
		t.Fatal("expected patient lookup error to surface")
	}
	if _, ok := svc.Get("missing"); ok {
		t.Fatal("failed start must not leave a session behind")
	}
}

func TestSelectDisease_LoadsRowsUnselected(t *testing.T) {
	svc, _ := newTestService()
	startSession(t, svc)

	sess, err := svc.SelectDisease(context.Background(), "p1", "Fever")
	if err != nil {
		t.Fatalf("SelectDisease: %v", err)
	}
	if sess.State != StateDiseaseSelected {
		t.Fatalf("state = %q, want %q", sess.State, StateDiseaseSelected)
	}
	if sess.Disease != "fever" {
		t.Fatalf("disease = %q, want lowercased %q", sess.Disease, "fever")
	}
	if len(sess.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(sess.Rows))
	}
	for i, row := range sess.Rows {
		if row.Selected || row.Editing {
			t.Errorf("row %d arrives selected=%v editing=%v, want both false", i, row.Selected, row.Editing)
		}
	}
	if sess.Rows[0].DaysInput != "3" {
		t.Errorf("row 0 daysInput = %q, want %q", sess.Rows[0].DaysInput, "3")
	}
}

func TestSetRowField_RequiresEditMode(t *testing.T) {
	svc, _ := newTestService()
	startSession(t, svc)
	if _, err := svc.SelectDisease(context.Background(), "p1", "fever"); err != nil {
		t.Fatalf("SelectDisease: %v", err)
	}

	// Not editing: the write is silently dropped, not rejected.
	sess, err := svc.SetRowField("p1", 0, "medicineName", "Ibuprofen")
	if err != nil {
		t.Fatalf("SetRowField: %v", err)
	}
	if got := sess.Rows[0].MedicineName; got != "Paracetamol" {
		t.Fatalf("name changed to %q without edit mode", got)
	}

	if _, err := svc.ToggleEdit("p1", 0); err != nil {
		t.Fatalf("ToggleEdit: %v", err)
	}
	sess, err = svc.SetRowField("p1", 0, "medicineName", "Ibuprofen")
	if err != nil {
		t.Fatalf("SetRowField: %v", err)
	}
	if got := sess.Rows[0].MedicineName; got != "Ibuprofen" {
		t.Fatalf("name = %q, want %q", got, "Ibuprofen")
	}
	if sess.Rows[1].Editing {
		t.Fatal("edit mode leaked to another row")
	}
}

func TestDaysAndDose_IgnoreEditMode(t *testing.T) {
	svc, _ := newTestService()
	startSession(t, svc)
	if _, err := svc.SelectDisease(context.Background(), "p1", "fever"); err != nil {
		t.Fatalf("SelectDisease: %v", err)
	}

	sess, err := svc.SetDays("p1", 0, "7")
	if err != nil {
		t.Fatalf("SetDays: %v", err)
	}
	if sess.Rows[0].DaysInput != "7" {
		t.Fatalf("daysInput = %q, want %q", sess.Rows[0].DaysInput, "7")
	}

	action := dose.Action{Slot: dose.Morning, Flag: dose.BeforeFood, Value: true}
	sess, err = svc.SetDose("p1", 0, action)
	if err != nil {
		t.Fatalf("SetDose: %v", err)
	}
	if !sess.Rows[0].Dose.Morning.BF {
		t.Fatal("morning BF not set")
	}
}

func TestSetDose_InvalidSlot(t *testing.T) {
	svc, _ := newTestService()
	startSession(t, svc)
	if _, err := svc.SelectDisease(context.Background(), "p1", "fever"); err != nil {
		t.Fatalf("SelectDisease: %v", err)
	}

	if _, err := svc.SetDose("p1", 0, dose.Action{Slot: "afternoon", Flag: dose.BeforeFood, Value: true}); err == nil {
		t.Fatal("expected unknown slot to be rejected")
	}
}

func TestRowIndex_OutOfRange(t *testing.T) {
	svc, _ := newTestService()
	startSession(t, svc)
	if _, err := svc.SelectDisease(context.Background(), "p1", "fever"); err != nil {
		t.Fatalf("SelectDisease: %v", err)
	}

	for _, index := range []int{-1, 2, 99} {
		if _, err := svc.ToggleEdit("p1", index); !errors.Is(err, ErrRowIndex) {
			t.Errorf("index %d: err = %v, want ErrRowIndex", index, err)
		}
	}
}

func TestSave_WritesSelectedRowsAndRequiredTests(t *testing.T) {
	svc, patients := newTestService()
	startSession(t, svc)
	if _, err := svc.SelectDisease(context.Background(), "p1", "fever"); err != nil {
		t.Fatalf("SelectDisease: %v", err)
	}

	if _, err := svc.ToggleSelect("p1", 0); err != nil {
		t.Fatalf("ToggleSelect: %v", err)
	}
	if _, err := svc.SetDays("p1", 0, "3"); err != nil {
		t.Fatalf("SetDays: %v", err)
	}
	if _, err := svc.SetDose("p1", 0, dose.Action{Slot: dose.Night, Flag: dose.AfterFood, Value: true}); err != nil {
		t.Fatalf("SetDose: %v", err)
	}
	if _, err := svc.SetTest("p1", 2, true); err != nil {
		t.Fatalf("SetTest: %v", err)
	}

	sess, err := svc.Save(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if sess.State != StateSaved {
		t.Fatalf("state = %q, want %q", sess.State, StateSaved)
	}
	if patients.replacedID != "p1" {
		t.Fatalf("replaced patient = %q, want %q", patients.replacedID, "p1")
	}
	if len(patients.replacedMeds) != 1 {
		t.Fatalf("got %d medicines, want only the selected row", len(patients.replacedMeds))
	}
	med := patients.replacedMeds[0]
	if med.MedicineName != "Paracetamol" || med.Days != 3 {
		t.Fatalf("medicine = %+v", med)
	}
	if !med.Dose.Night.AF {
		t.Fatal("saved dose lost the night AF flag")
	}
	if len(patients.replacedTests) != 1 || patients.replacedTests[0].TestName != "CBC" {
		t.Fatalf("tests = %+v, want only CBC", patients.replacedTests)
	}
	if !patients.replacedTests[0].Required {
		t.Fatal("saved test must carry required=true")
	}
	if sess.Saved == nil || len(sess.Saved.MedicineList) != 1 {
		t.Fatalf("session saved payload = %+v", sess.Saved)
	}
}

func TestSave_CoercesBadDaysToOne(t *testing.T) {
	svc, patients := newTestService()
	startSession(t, svc)
	if _, err := svc.SelectDisease(context.Background(), "p1", "fever"); err != nil {
		t.Fatalf("SelectDisease: %v", err)
	}
	if _, err := svc.ToggleSelect("p1", 1); err != nil {
		t.Fatalf("ToggleSelect: %v", err)
	}
	if _, err := svc.SetDays("p1", 1, "xyz"); err != nil {
		t.Fatalf("SetDays: %v", err)
	}

	if _, err := svc.Save(context.Background(), "p1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := patients.replacedMeds[0].Days; got != 1 {
		t.Fatalf("days = %d, want 1 after failed parse", got)
	}
}

func TestSave_FailureKeepsEditableState(t *testing.T) {
	svc, patients := newTestService()
	startSession(t, svc)
	if _, err := svc.SelectDisease(context.Background(), "p1", "fever"); err != nil {
		t.Fatalf("SelectDisease: %v", err)
	}
	if _, err := svc.ToggleSelect("p1", 0); err != nil {
		t.Fatalf("ToggleSelect: %v", err)
	}
	patients.replaceErr = errors.New("upstream down")

	if _, err := svc.Save(context.Background(), "p1"); err == nil {
		t.Fatal("expected save to fail")
	}
	sess, ok := svc.Get("p1")
	if !ok {
		t.Fatal("session dropped after failed save")
	}
	if sess.State != StateDiseaseSelected {
		t.Fatalf("state = %q after failed save, want %q", sess.State, StateDiseaseSelected)
	}
	if sess.Saved != nil {
		t.Fatal("failed save recorded a payload")
	}
	if !sess.Rows[0].Selected {
		t.Fatal("failed save lost the row selection")
	}
}

func TestSave_RequiresDiseaseSelection(t *testing.T) {
	svc, patients := newTestService()
	startSession(t, svc)

	if _, err := svc.Save(context.Background(), "p1"); err == nil {
		t.Fatal("expected save from the idle state to be rejected")
	}
	if patients.replaceCalls != 0 {
		t.Fatal("idle save must not reach the upstream")
	}
}

func TestReturnedSessionIsASnapshot(t *testing.T) {
	svc, _ := newTestService()
	startSession(t, svc)
	if _, err := svc.SelectDisease(context.Background(), "p1", "fever"); err != nil {
		t.Fatalf("SelectDisease: %v", err)
	}

	before, err := svc.SetDays("p1", 0, "3")
	if err != nil {
		t.Fatalf("SetDays: %v", err)
	}
	if _, err := svc.SetDays("p1", 0, "9"); err != nil {
		t.Fatalf("SetDays: %v", err)
	}

	if got := before.Rows[0].DaysInput; got != "3" {
		t.Fatalf("earlier snapshot mutated: daysInput = %q, want %q", got, "3")
	}
	after, _ := svc.Get("p1")
	if got := after.Rows[0].DaysInput; got != "9" {
		t.Fatalf("live session lost the write: daysInput = %q, want %q", got, "9")
	}
}

// Overlapping requests for the same patient must be able to render one
// response while another mutates the session. Run with the race detector.
func TestConcurrentEditsAndReads(t *testing.T) {
	svc, _ := newTestService()
	startSession(t, svc)
	if _, err := svc.SelectDisease(context.Background(), "p1", "fever"); err != nil {
		t.Fatalf("SelectDisease: %v", err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				sess, err := svc.SetDays("p1", 0, strconv.Itoa(i))
				if err != nil && !errors.Is(err, ErrRowIndex) {
					t.Errorf("SetDays: %v", err)
					return
				}
				if sess != nil {
					if _, err := json.Marshal(sess); err != nil {
						t.Errorf("marshal: %v", err)
						return
					}
				}
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if sess, ok := svc.Get("p1"); ok {
					if _, err := json.Marshal(sess); err != nil {
						t.Errorf("marshal: %v", err)
						return
					}
				}
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if _, err := svc.SelectDisease(context.Background(), "p1", "fever"); err != nil {
					t.Errorf("SelectDisease: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestOperations_WithoutSession(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.SelectDisease(context.Background(), "ghost", "fever"); !errors.Is(err, ErrNoSession) {
		t.Errorf("SelectDisease err = %v, want ErrNoSession", err)
	}
	if _, err := svc.ToggleEdit("ghost", 0); !errors.Is(err, ErrNoSession) {
		t.Errorf("ToggleEdit err = %v, want ErrNoSession", err)
	}
	if _, err := svc.Save(context.Background(), "ghost"); !errors.Is(err, ErrNoSession) {
		t.Errorf("Save err = %v, want ErrNoSession", err)
	}
}
