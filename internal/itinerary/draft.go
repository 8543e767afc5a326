// Package itinerary holds the visitor's unsaved itinerary: an ordered list
// of park items plus one staged selection waiting to be added.
package itinerary

import (
	"fmt"
	"infinity-park/internal/apperr"
	"infinity-park/internal/model"
	"time"
)

type State string

const (
	StateEmpty    State = "empty"
	StateStaging  State = "staging"
	StateHasItems State = "has_items"
	StateSaved    State = "saved"
)

// Selection is a catalog item picked in the browser but not yet added.
type Selection struct {
	Kind  model.ItemKind
	RefID uint
	Name  string
}

type Entry struct {
	RefID       uint
	Name        string
	PlannedTime string // HH:MM
	Kind        model.ItemKind
}

// Draft is not safe for concurrent use; Store serialises access per user.
type Draft struct {
	entries []Entry
	staged  *Selection
	saved   bool
	now     func() time.Time
}

func NewDraft(now func() time.Time) *Draft {
	if now == nil {
		now = time.Now
	}
	return &Draft{now: now}
}

// Select stages sel, replacing any earlier selection. The list is untouched.
func (d *Draft) Select(sel Selection) {
	d.staged = &sel
	d.saved = false
}

func (d *Draft) Staged() (Selection, bool) {
	if d.staged == nil {
		return Selection{}, false
	}
	return *d.staged, true
}

// AddStaged appends the staged selection with the current wall-clock time
// and clears the stage.
func (d *Draft) AddStaged() (Entry, error) {
	if d.staged == nil {
		return Entry{}, apperr.ErrNoSelection
	}

	entry := Entry{
		RefID:       d.staged.RefID,
		Name:        d.staged.Name,
		PlannedTime: d.now().Format(model.TimeLayout),
		Kind:        d.staged.Kind,
	}
	d.entries = append(d.entries, entry)
	d.staged = nil
	d.saved = false

	return entry, nil
}

func (d *Draft) UpdateTime(index int, plannedTime string) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	if _, err := time.Parse(model.TimeLayout, plannedTime); err != nil {
		return apperr.Validation("planned_time", "must be HH:MM")
	}

	d.entries[index].PlannedTime = plannedTime
	return nil
}

// Remove deletes the entry at index; later entries shift down by one.
func (d *Draft) Remove(index int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}

	d.entries = append(d.entries[:index], d.entries[index+1:]...)
	return nil
}

// Entries returns a copy of the list in its current order.
func (d *Draft) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

func (d *Draft) Len() int {
	return len(d.entries)
}

func (d *Draft) State() State {
	switch {
	case d.saved:
		return StateSaved
	case d.staged != nil:
		return StateStaging
	case len(d.entries) > 0:
		return StateHasItems
	default:
		return StateEmpty
	}
}

// MarkSaved clears the draft after its contents were persisted.
func (d *Draft) MarkSaved() {
	d.Reset()
	d.saved = true
}

func (d *Draft) Reset() {
	d.entries = nil
	d.staged = nil
	d.saved = false
}

func (d *Draft) checkIndex(index int) error {
	if index < 0 || index >= len(d.entries) {
		return apperr.Validation("index", fmt.Sprintf("no item at position %d", index))
	}
	return nil
}
