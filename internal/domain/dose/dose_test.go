package dose

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewSchedule_AllSlotsPresentAllFalse(t *testing.T) {
	s := NewSchedule()
	for _, slot := range Slots() {
		f := s.At(slot)
		if f.BF || f.AF {
			t.Errorf("slot %s: expected both flags false, got %+v", slot, f)
		}
	}

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]map[string]bool
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, slot := range []string{"morning", "lunch", "evening", "night"} {
		flags, ok := m[slot]
		if !ok {
			t.Fatalf("expected slot %q in wire form", slot)
		}
		if flags["bf"] || flags["af"] {
			t.Errorf("slot %q: expected bf/af false on the wire", slot)
		}
	}
}

func TestSet_ChangesExactlyOneFlag(t *testing.T) {
	base := NewSchedule().Set(Morning, BeforeFood, true).Set(Night, AfterFood, true)

	for _, slot := range Slots() {
		for _, flag := range []Flag{BeforeFood, AfterFood} {
			got := base.Set(slot, flag, true)

			for _, checkSlot := range Slots() {
				want := base.At(checkSlot)
				if checkSlot == slot {
					if flag == BeforeFood {
						want.BF = true
					} else {
						want.AF = true
					}
				}
				if got.At(checkSlot) != want {
					t.Errorf("Set(%s,%s): slot %s = %+v, want %+v",
						slot, flag, checkSlot, got.At(checkSlot), want)
				}
			}
		}
	}
}

func TestSet_DoesNotAliasReceiver(t *testing.T) {
	a := NewSchedule()
	b := a.Set(Lunch, AfterFood, true)
	if a.Lunch.AF {
		t.Error("Set mutated its receiver")
	}
	if !b.Lunch.AF {
		t.Error("Set did not apply the change to the returned copy")
	}
}

func TestSet_UnknownSlotPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown slot")
		}
	}()
	NewSchedule().Set(Slot("afternoon"), BeforeFood, true)
}

func TestSet_UnknownFlagPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown flag")
		}
	}()
	NewSchedule().Set(Morning, Flag("before"), true)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		s    Schedule
		want string
	}{
		{"empty", NewSchedule(), ""},
		{
			"single slot both flags",
			NewSchedule().Set(Morning, BeforeFood, true).Set(Morning, AfterFood, true),
			"Morning (BF, AF)",
		},
		{
			"before food only",
			NewSchedule().Set(Lunch, BeforeFood, true),
			"Lunch (BF)",
		},
		{
			"after food only",
			NewSchedule().Set(Night, AfterFood, true),
			"Night (AF)",
		},
		{
			"multiple slots in canonical order",
			NewSchedule().
				Set(Night, AfterFood, true).
				Set(Morning, BeforeFood, true).
				Set(Evening, BeforeFood, true).
				Set(Evening, AfterFood, true),
			"Morning (BF), Evening (BF, AF), Night (AF)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Summarize(); got != tt.want {
				t.Errorf("Summarize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarize_OmitsSlotIffBothFlagsFalse(t *testing.T) {
	s := NewSchedule().Set(Morning, BeforeFood, true)
	out := s.Summarize()
	for _, slot := range Slots() {
		label := slotLabel(slot)
		has := strings.Contains(out, label)
		if s.At(slot).Any() != has {
			t.Errorf("slot %s: active=%v but present-in-summary=%v (%q)",
				slot, s.At(slot).Any(), has, out)
		}
	}
}

func TestJSONRoundTrip_PreservesSummary(t *testing.T) {
	s := NewSchedule().
		Set(Morning, BeforeFood, true).
		Set(Lunch, AfterFood, true).
		Set(Night, BeforeFood, true).
		Set(Night, AfterFood, true)
	before := s.Summarize()

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Schedule
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back != s {
		t.Errorf("round-trip changed the schedule: %+v != %+v", back, s)
	}
	if back.Summarize() != before {
		t.Errorf("round-trip changed the summary: %q != %q", back.Summarize(), before)
	}
}

func TestAction_Validate(t *testing.T) {
	valid := Action{Slot: Evening, Flag: AfterFood, Value: true}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := (Action{Slot: "afternoon", Flag: BeforeFood}).Validate(); err == nil {
		t.Error("expected error for unknown slot")
	}
	if err := (Action{Slot: Morning, Flag: "beforeFood"}).Validate(); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestAction_Apply(t *testing.T) {
	s, err := Action{Slot: Morning, Flag: BeforeFood, Value: true}.Apply(NewSchedule())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Morning.BF {
		t.Error("expected morning bf set")
	}

	if _, err := (Action{Slot: "midnight", Flag: BeforeFood}).Apply(NewSchedule()); err == nil {
		t.Error("expected error for invalid action")
	}
}
