package itinerary

import (
	"infinity-park/internal/apperr"
	"infinity-park/internal/model"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 1, hour, minute, 0, 0, time.Local)
	}
}

func addItem(t *testing.T, d *Draft, id uint, name string) {
	t.Helper()
	d.Select(Selection{Kind: model.KindAttraction, RefID: id, Name: name})
	_, err := d.AddStaged()
	require.NoError(t, err)
}

func TestAddStagedWithoutSelection(t *testing.T) {
	d := NewDraft(fixedClock(10, 0))

	_, err := d.AddStaged()
	assert.ErrorIs(t, err, apperr.ErrNoSelection)
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, StateEmpty, d.State())
}

func TestAddStagedStampsClockAndClearsStage(t *testing.T) {
	d := NewDraft(fixedClock(9, 5))

	d.Select(Selection{Kind: model.KindShow, RefID: 3, Name: "Fire Acrobats"})
	assert.Equal(t, StateStaging, d.State())
	assert.Equal(t, 0, d.Len())

	entry, err := d.AddStaged()
	require.NoError(t, err)
	assert.Equal(t, Entry{RefID: 3, Name: "Fire Acrobats", PlannedTime: "09:05", Kind: model.KindShow}, entry)
	assert.Equal(t, StateHasItems, d.State())

	_, staged := d.Staged()
	assert.False(t, staged)

	_, err = d.AddStaged()
	assert.ErrorIs(t, err, apperr.ErrNoSelection)
	assert.Equal(t, 1, d.Len())
}

func TestSelectReplacesStagedItem(t *testing.T) {
	d := NewDraft(fixedClock(10, 0))

	d.Select(Selection{Kind: model.KindAttraction, RefID: 1, Name: "A"})
	d.Select(Selection{Kind: model.KindFoodCourt, RefID: 2, Name: "B"})

	sel, ok := d.Staged()
	require.True(t, ok)
	assert.Equal(t, uint(2), sel.RefID)
	assert.Equal(t, 0, d.Len())
}

func TestRemoveFirstKeepsRelativeOrder(t *testing.T) {
	d := NewDraft(fixedClock(10, 0))
	addItem(t, d, 1, "A")
	addItem(t, d, 2, "B")
	addItem(t, d, 3, "C")

	require.NoError(t, d.Remove(0))

	entries := d.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "B", entries[0].Name)
	assert.Equal(t, "C", entries[1].Name)
}

func TestRemoveOutOfRange(t *testing.T) {
	d := NewDraft(fixedClock(10, 0))
	addItem(t, d, 1, "A")

	for _, idx := range []int{-1, 1, 5} {
		err := d.Remove(idx)
		assert.True(t, apperr.IsValidation(err), "index %d", idx)
	}
	assert.Equal(t, 1, d.Len())
}

func TestUpdateTime(t *testing.T) {
	d := NewDraft(fixedClock(10, 0))
	addItem(t, d, 1, "A")
	addItem(t, d, 2, "B")

	require.NoError(t, d.UpdateTime(1, "11:30"))
	entries := d.Entries()
	assert.Equal(t, "10:00", entries[0].PlannedTime)
	assert.Equal(t, "11:30", entries[1].PlannedTime)

	assert.True(t, apperr.IsValidation(d.UpdateTime(0, "25:00")))
	assert.True(t, apperr.IsValidation(d.UpdateTime(0, "noon")))
	assert.True(t, apperr.IsValidation(d.UpdateTime(2, "12:00")))
	assert.Equal(t, "10:00", d.Entries()[0].PlannedTime)
}

func TestEntriesReturnsCopy(t *testing.T) {
	d := NewDraft(fixedClock(10, 0))
	addItem(t, d, 1, "A")

	entries := d.Entries()
	entries[0].Name = "changed"

	assert.Equal(t, "A", d.Entries()[0].Name)
}

func TestMarkSavedAndReset(t *testing.T) {
	d := NewDraft(fixedClock(10, 0))
	addItem(t, d, 1, "A")

	d.MarkSaved()
	assert.Equal(t, StateSaved, d.State())
	assert.Equal(t, 0, d.Len())

	addItem(t, d, 2, "B")
	assert.Equal(t, StateHasItems, d.State())

	d.Reset()
	assert.Equal(t, StateEmpty, d.State())
}

func TestStoreKeepsOneDraftPerUser(t *testing.T) {
	store := NewStore(fixedClock(10, 0))

	require.NoError(t, store.With(1, func(d *Draft) error {
		d.Select(Selection{Kind: model.KindAttraction, RefID: 7, Name: "A"})
		_, err := d.AddStaged()
		return err
	}))

	require.NoError(t, store.With(1, func(d *Draft) error {
		assert.Equal(t, 1, d.Len())
		return nil
	}))
	require.NoError(t, store.With(2, func(d *Draft) error {
		assert.Equal(t, 0, d.Len())
		return nil
	}))

	store.Discard(1)
	require.NoError(t, store.With(1, func(d *Draft) error {
		assert.Equal(t, StateEmpty, d.State())
		return nil
	}))
}

func TestStoreSerialisesAccess(t *testing.T) {
	store := NewStore(fixedClock(10, 0))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_ = store.With(1, func(d *Draft) error {
				d.Select(Selection{Kind: model.KindShow, RefID: id, Name: "show"})
				_, err := d.AddStaged()
				return err
			})
		}(uint(i + 1))
	}
	wg.Wait()

	require.NoError(t, store.With(1, func(d *Draft) error {
		assert.Equal(t, 50, d.Len())
		return nil
	}))
}
