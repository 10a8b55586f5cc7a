package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// MinPollDays is the smallest number of proposed days a poll can be created with.
const MinPollDays = 2

// ControlState is the validation feedback shown on a form control.
type ControlState int

const (
	ControlNeutral ControlState = iota
	ControlValid
	ControlInvalid
)

type DayEntry struct {
	ID    uuid.UUID
	Value Day
	// Min is the earliest selectable day for this entry.
	Min     Day
	Invalid bool
}

// DayList is the creator's list of proposed days. Entries are kept sorted
// ascending by value after every Add, Reorder and Remove. Duplicates are
// allowed in the list and reported by Validate.
type DayList struct {
	entries   []DayEntry
	validated bool
	addButton ControlState
	picker    uuid.UUID
}

func NewDayList() *DayList {
	return &DayList{}
}

// Add appends a new entry defaulted to today, with today as the earliest
// selectable day, at its sorted position. The entry becomes the pending
// date picker target.
func (l *DayList) Add(today Day) DayEntry {
	entry := DayEntry{
		ID:    uuid.New(),
		Value: today,
		Min:   today,
	}
	l.validated = false
	l.insertSorted(entry)
	l.picker = entry.ID
	return entry
}

// Reorder applies a new value to the entry and moves it to keep the list
// sorted. An empty value removes the entry.
func (l *DayList) Reorder(id uuid.UUID, value string) error {
	l.validated = false

	idx := l.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("reorder %s: %w", id, ErrEntryNotFound)
	}
	if value == "" {
		l.removeAt(idx)
		return nil
	}
	day, err := ParseDay(value)
	if err != nil {
		return err
	}

	entry := l.entries[idx]
	entry.Value = day
	l.removeAt(idx)
	l.insertSorted(entry)
	return nil
}

func (l *DayList) Remove(id uuid.UUID) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrEntryNotFound)
	}
	l.removeAt(idx)
	return nil
}

// DayValidation is the outcome of validating the day list.
type DayValidation struct {
	TooFewDays bool
	// Duplicates holds every entry repeating a value seen earlier in the
	// list. The first occurrence of a value is never included.
	Duplicates []uuid.UUID
	PastDays   []uuid.UUID
}

func (v DayValidation) Valid() bool {
	return !v.TooFewDays && len(v.Duplicates) == 0 && len(v.PastDays) == 0
}

// Validate checks the day count, duplicate values and min bounds, and
// updates the feedback state of the add button and of each entry.
func (l *DayList) Validate() DayValidation {
	var result DayValidation

	if len(l.entries) < MinPollDays {
		result.TooFewDays = true
		l.addButton = ControlInvalid
	} else {
		l.addButton = ControlValid
	}

	seen := make(map[Day]bool, len(l.entries))
	for i := range l.entries {
		entry := &l.entries[i]
		entry.Invalid = false
		if seen[entry.Value] {
			entry.Invalid = true
			result.Duplicates = append(result.Duplicates, entry.ID)
		}
		seen[entry.Value] = true

		if entry.Value.Before(entry.Min) {
			entry.Invalid = true
			result.PastDays = append(result.PastDays, entry.ID)
		}
	}

	l.validated = true
	return result
}

func (l *DayList) Entries() []DayEntry {
	out := make([]DayEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *DayList) Len() int {
	return len(l.entries)
}

// Days returns the current values in list order.
func (l *DayList) Days() []Day {
	days := make([]Day, len(l.entries))
	for i, e := range l.entries {
		days[i] = e.Value
	}
	return days
}

// WasValidated reports whether Validate ran since the last change.
func (l *DayList) WasValidated() bool {
	return l.validated
}

func (l *DayList) AddButtonState() ControlState {
	return l.addButton
}

// TakePickerRequest returns the entry whose date picker should be opened,
// at most once per Add.
func (l *DayList) TakePickerRequest() (uuid.UUID, bool) {
	id := l.picker
	l.picker = uuid.Nil
	if id == uuid.Nil || l.indexOf(id) < 0 {
		return uuid.Nil, false
	}
	return id, true
}

// insertSorted places entry before the first entry with a strictly greater
// value, or at the end.
func (l *DayList) insertSorted(entry DayEntry) {
	for i, other := range l.entries {
		if other.Value > entry.Value {
			l.entries = append(l.entries, DayEntry{})
			copy(l.entries[i+1:], l.entries[i:])
			l.entries[i] = entry
			return
		}
	}
	l.entries = append(l.entries, entry)
}

func (l *DayList) removeAt(idx int) {
	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
}

func (l *DayList) indexOf(id uuid.UUID) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
