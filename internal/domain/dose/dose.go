// Package dose holds the canonical dose schedule: four fixed times of day,
// each with a before-food and an after-food flag. Every screen that creates,
// edits or renders a prescription goes through this one model so the wire
// shape and the human-readable text never drift apart.
package dose

import (
	"fmt"
	"strings"
)

// Slot is one of the four fixed times of day a medicine can be taken.
type Slot string

const (
	Morning Slot = "morning"
	Lunch   Slot = "lunch"
	Evening Slot = "evening"
	Night   Slot = "night"
)

// Flag selects one of the two booleans held per slot.
type Flag string

const (
	BeforeFood Flag = "bf"
	AfterFood  Flag = "af"
)

// Flags is the per-slot pair. Both false means "not prescribed at this time" --
// a slot is never absent from a schedule.
type Flags struct {
	BF bool `json:"bf"`
	AF bool `json:"af"`
}

// Any reports whether at least one flag is set.
func (f Flags) Any() bool {
	return f.BF || f.AF
}

// Schedule maps each of the four slots to its flags. The struct form
// guarantees all slots are present on construction and after JSON decoding
// of a complete document.
type Schedule struct {
	Morning Flags `json:"morning"`
	Lunch   Flags `json:"lunch"`
	Evening Flags `json:"evening"`
	Night   Flags `json:"night"`
}

// NewSchedule returns the empty schedule: all four slots present, all flags
// false. Call this whenever an entry is created or fetched without a dose.
func NewSchedule() Schedule {
	return Schedule{}
}

// Slots returns the four slots in canonical rendering order.
func Slots() []Slot {
	return []Slot{Morning, Lunch, Evening, Night}
}

// At returns the flags for the given slot. Unknown slots are a programming
// error and panic.
func (s Schedule) At(slot Slot) Flags {
	switch slot {
	case Morning:
		return s.Morning
	case Lunch:
		return s.Lunch
	case Evening:
		return s.Evening
	case Night:
		return s.Night
	}
	panic(fmt.Sprintf("dose: unknown slot %q", slot))
}

// Set returns a copy of the schedule with exactly one flag at one slot
// replaced. Everything else is untouched. Unknown slot or flag values are a
// programming error and panic; callers accepting external input must validate
// with Action.Validate first.
func (s Schedule) Set(slot Slot, flag Flag, value bool) Schedule {
	f := s.At(slot)
	switch flag {
	case BeforeFood:
		f.BF = value
	case AfterFood:
		f.AF = value
	default:
		panic(fmt.Sprintf("dose: unknown flag %q", flag))
	}
	switch slot {
	case Morning:
		s.Morning = f
	case Lunch:
		s.Lunch = f
	case Evening:
		s.Evening = f
	case Night:
		s.Night = f
	}
	return s
}

// Active reports whether any slot has any flag set.
func (s Schedule) Active() bool {
	for _, slot := range Slots() {
		if s.At(slot).Any() {
			return true
		}
	}
	return false
}

// Summarize renders the schedule as compact text: one "<Slot> (<BF>, <AF>)"
// fragment per slot with at least one flag set, joined by ", ". Slots with
// both flags false are omitted entirely. The on-screen summary and the
// printable document both use this and nothing else, so the two renderings
// are byte-identical for the same schedule.
func (s Schedule) Summarize() string {
	var parts []string
	for _, slot := range Slots() {
		f := s.At(slot)
		if !f.Any() {
			continue
		}
		var marks []string
		if f.BF {
			marks = append(marks, "BF")
		}
		if f.AF {
			marks = append(marks, "AF")
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", slotLabel(slot), strings.Join(marks, ", ")))
	}
	return strings.Join(parts, ", ")
}

func slotLabel(slot Slot) string {
	switch slot {
	case Morning:
		return "Morning"
	case Lunch:
		return "Lunch"
	case Evening:
		return "Evening"
	case Night:
		return "Night"
	}
	panic(fmt.Sprintf("dose: unknown slot %q", slot))
}

// Action is a typed request to flip one flag of one slot. It replaces the
// old stringly "morning-bf" field-name dispatch with an explicit value that
// can be validated at the edge.
type Action struct {
	Slot  Slot `json:"slot"`
	Flag  Flag `json:"flag"`
	Value bool `json:"value"`
}

// Validate rejects slots and flags outside the fixed sets. Use it on any
// Action decoded from a request before applying it.
func (a Action) Validate() error {
	switch a.Slot {
	case Morning, Lunch, Evening, Night:
	default:
		return fmt.Errorf("invalid slot: %q", a.Slot)
	}
	switch a.Flag {
	case BeforeFood, AfterFood:
	default:
		return fmt.Errorf("invalid flag: %q", a.Flag)
	}
	return nil
}

// Apply validates the action and returns the updated schedule.
func (a Action) Apply(s Schedule) (Schedule, error) {
	if err := a.Validate(); err != nil {
		return s, err
	}
	return s.Set(a.Slot, a.Flag, a.Value), nil
}
