package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name       string
		a, b       [2]string
		wantResult bool
	}{
		{"adjacent after", [2]string{"09:00", "10:00"}, [2]string{"10:00", "11:00"}, false},
		{"adjacent before", [2]string{"10:00", "11:00"}, [2]string{"09:00", "10:00"}, false},
		{"partial overlap", [2]string{"09:00", "10:00"}, [2]string{"09:30", "10:30"}, true},
		{"contained", [2]string{"09:00", "12:00"}, [2]string{"10:00", "11:00"}, true},
		{"identical", [2]string{"09:00", "10:00"}, [2]string{"09:00", "10:00"}, true},
		{"disjoint", [2]string{"08:00", "09:00"}, [2]string{"14:00", "15:00"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantResult, Overlaps(tt.a[0], tt.a[1], tt.b[0], tt.b[1]))
			assert.Equal(t, tt.wantResult, Overlaps(tt.b[0], tt.b[1], tt.a[0], tt.a[1]), "symmetric")
		})
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"valid", "09:00", "09:30", false},
		{"equal endpoints", "09:00", "09:00", true},
		{"reversed", "10:00", "09:00", true},
		{"single digit hour", "9:00", "10:00", true},
		{"out of range hour", "24:00", "24:30", true},
		{"garbage", "morning", "noon", true},
		{"empty", "", "10:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange(tt.start, tt.end)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRange))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateSelection(t *testing.T) {
	assert.NoError(t, ValidateSelection(ScheduleKey{DoctorID: "doc-1", Date: "2025-03-01"}))
	assert.ErrorIs(t, ValidateSelection(ScheduleKey{Date: "2025-03-01"}), ErrMissingSelection)
	assert.ErrorIs(t, ValidateSelection(ScheduleKey{DoctorID: "doc-1", Date: "  "}), ErrMissingSelection)
}

func TestSortSlots(t *testing.T) {
	slots := []Slot{
		{ID: "b", StartTime: "14:00", EndTime: "15:00"},
		{ID: "a", StartTime: "09:00", EndTime: "10:00"},
		{ID: "c", StartTime: "11:30", EndTime: "12:00"},
	}
	SortSlots(slots)
	assert.Equal(t, []string{"a", "c", "b"}, []string{slots[0].ID, slots[1].ID, slots[2].ID})
}

func TestValidateSlotSet(t *testing.T) {
	ok := []Slot{{StartTime: "09:00", EndTime: "10:00"}, {StartTime: "10:00", EndTime: "11:00"}}
	require.NoError(t, ValidateSlotSet(ok))

	overlapping := []Slot{{StartTime: "09:00", EndTime: "10:00"}, {StartTime: "09:30", EndTime: "10:30"}}
	assert.ErrorIs(t, ValidateSlotSet(overlapping), ErrOverlap)

	badRange := []Slot{{StartTime: "11:00", EndTime: "10:00"}}
	assert.ErrorIs(t, ValidateSlotSet(badRange), ErrInvalidRange)
}

func TestDaySchedule_CloneIsIndependent(t *testing.T) {
	orig := &DaySchedule{
		ID:       "s-1",
		DoctorID: "doc-1",
		Date:     "2025-03-01",
		Doctor:   &DoctorRef{ID: "doc-1", Name: "Dr. A"},
		Slots:    []Slot{{ID: "x", StartTime: "09:00", EndTime: "10:00"}},
	}
	c := orig.Clone()
	c.Slots[0].IsBooked = true
	c.Slots = append(c.Slots, Slot{ID: "y"})
	c.Doctor.Name = "changed"

	assert.False(t, orig.Slots[0].IsBooked)
	assert.Len(t, orig.Slots, 1)
	assert.Equal(t, "Dr. A", orig.Doctor.Name)
	assert.Equal(t, ScheduleKey{DoctorID: "doc-1", Date: "2025-03-01"}, c.Key())
}

func TestValidationError(t *testing.T) {
	assert.Nil(t, NewValidationError(nil))
	err := NewValidationError([]string{"doctor is required", "date is required"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "doctor is required; date is required", err.Error())
}
