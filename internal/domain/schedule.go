package domain

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Wall-clock layouts used by schedule documents.
const (
	ClockLayout = "15:04"
	DateLayout  = "2006-01-02"
)

// Slot is a bookable time interval within a day. Times are "HH:MM".
// swagger:model Slot
type Slot struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsBooked  bool   `json:"isBooked"`
}

// SlotCandidate is a slot that has not been assigned an id yet.
type SlotCandidate struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ScheduleKey identifies a DaySchedule: one doctor on one calendar date.
type ScheduleKey struct {
	DoctorID string
	Date     string
}

func (k ScheduleKey) String() string {
	return k.DoctorID + "/" + k.Date
}

// DoctorRef is the subset of doctor fields resolved into schedule listings.
type DoctorRef struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Contact        string `json:"contact"`
	Email          string `json:"email"`
}

// DaySchedule is the full set of slots for one doctor on one date.
// swagger:model DaySchedule
type DaySchedule struct {
	ID        string     `json:"id"`
	DoctorID  string     `json:"doctorId"`
	Doctor    *DoctorRef `json:"doctor,omitempty"`
	Date      string     `json:"date"`
	Slots     []Slot     `json:"slots"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewDaySchedule returns an empty DaySchedule for key. ID is set by the repository on create.
func NewDaySchedule(key ScheduleKey, createdAt, updatedAt time.Time) *DaySchedule {
	return &DaySchedule{
		DoctorID:  key.DoctorID,
		Date:      key.Date,
		Slots:     []Slot{},
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Key returns the (doctor, date) key of the schedule.
func (d *DaySchedule) Key() ScheduleKey {
	return ScheduleKey{DoctorID: d.DoctorID, Date: d.Date}
}

// Clone returns a deep copy so callers never share a slot slice with a cache entry.
func (d *DaySchedule) Clone() *DaySchedule {
	if d == nil {
		return nil
	}
	c := *d
	c.Slots = append([]Slot(nil), d.Slots...)
	if c.Slots == nil {
		c.Slots = []Slot{}
	}
	if d.Doctor != nil {
		ref := *d.Doctor
		c.Doctor = &ref
	}
	return &c
}

// ValidateClock reports whether s is a 24h "HH:MM" time of day.
func ValidateClock(s string) bool {
	if len(s) != len(ClockLayout) {
		return false
	}
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// ValidateDate reports whether s is a "YYYY-MM-DD" calendar date.
func ValidateDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidateRange checks both endpoints and that start < end. Because the clock format is
// fixed width, string comparison orders times chronologically.
func ValidateRange(startTime, endTime string) error {
	if !ValidateClock(startTime) || !ValidateClock(endTime) {
		return fmt.Errorf("%w: times must be HH:MM", ErrInvalidRange)
	}
	if startTime >= endTime {
		return ErrInvalidRange
	}
	return nil
}

// ValidateSelection checks that a doctor and date were chosen.
func ValidateSelection(key ScheduleKey) error {
	if strings.TrimSpace(key.DoctorID) == "" || strings.TrimSpace(key.Date) == "" {
		return ErrMissingSelection
	}
	return nil
}

// Overlaps uses half-open intervals: touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// FindOverlap returns the first slot in slots overlapping [start, end).
func FindOverlap(slots []Slot, start, end string) (Slot, bool) {
	for _, s := range slots {
		if Overlaps(s.StartTime, s.EndTime, start, end) {
			return s, true
		}
	}
	return Slot{}, false
}

// SortSlots orders slots by start time ascending. The sort is stable so equal starts keep
// insertion order.
func SortSlots(slots []Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})
}

// ValidateSlotSet checks every slot's range and that no two slots overlap.
func ValidateSlotSet(slots []Slot) error {
	for i, s := range slots {
		if err := ValidateRange(s.StartTime, s.EndTime); err != nil {
			return fmt.Errorf("slot %d (%s-%s): %w", i+1, s.StartTime, s.EndTime, err)
		}
		if other, ok := FindOverlap(slots[:i], s.StartTime, s.EndTime); ok {
			return fmt.Errorf("slot %s-%s overlaps %s-%s: %w", s.StartTime, s.EndTime, other.StartTime, other.EndTime, ErrOverlap)
		}
	}
	return nil
}

// ScheduleFilter narrows schedule listings. Empty fields match everything.
type ScheduleFilter struct {
	DoctorID string
	Date     string
}

// ScheduleRepository defines durable storage for schedule documents
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *DaySchedule) error
	GetByID(ctx context.Context, id string) (*DaySchedule, error)
	GetByKey(ctx context.Context, key ScheduleKey) (*DaySchedule, error)
	List(ctx context.Context, filter ScheduleFilter) ([]*DaySchedule, error)
	// Upsert writes the full slot set keyed by (doctor, date) and fills ID and timestamps.
	Upsert(ctx context.Context, schedule *DaySchedule) error
	Update(ctx context.Context, schedule *DaySchedule) error
	Delete(ctx context.Context, id string) error
}

// DayScheduleCache holds in-memory DaySchedules in front of the repository.
type DayScheduleCache interface {
	Get(key ScheduleKey) (*DaySchedule, bool)
	Put(schedule *DaySchedule)
	Invalidate(key ScheduleKey)
	InvalidateDoctor(doctorID string) int
	Len() int
}

// ScheduleStore owns the (doctor, date) -> DaySchedule mapping and mediates slot mutations.
type ScheduleStore interface {
	GetDaySchedule(ctx context.Context, doctorID, date string) ([]Slot, error)
	ListSlotsSorted(ctx context.Context, doctorID, date string) ([]Slot, error)
	AddSlot(ctx context.Context, doctorID, date string, candidate SlotCandidate) (*Slot, error)
	DeleteSlot(ctx context.Context, doctorID, date, slotID string) error
	MarkBooked(ctx context.Context, doctorID, date, slotID string) (*Slot, error)
	Invalidate(key ScheduleKey)
	// InvalidateDoctor drops every cached date of a doctor, e.g. after the doctor is deleted.
	InvalidateDoctor(doctorID string)
}

// ScheduleUpdate carries the optional fields of PUT /api/schedules/{id}.
type ScheduleUpdate struct {
	DoctorID *string
	Date     *string
	Slots    []SlotCandidate
}

// ScheduleService defines the business logic for whole schedule documents.
type ScheduleService interface {
	List(ctx context.Context, filter ScheduleFilter) ([]*DaySchedule, error)
	Create(ctx context.Context, key ScheduleKey, slots []SlotCandidate) (*DaySchedule, error)
	Update(ctx context.Context, id string, update ScheduleUpdate) (*DaySchedule, error)
	Delete(ctx context.Context, id string) error
}
