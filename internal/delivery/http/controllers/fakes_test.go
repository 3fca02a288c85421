package controllers

import (
	"context"
	"io"
	"log/slog"

	"hospitaladmin/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testDoctorID   = "10000000-0000-0000-0000-000000000001"
	testScheduleID = "00000000-0000-0000-0000-000000000001"
)

// fakeScheduleService implements domain.ScheduleService for handler tests.
type fakeScheduleService struct {
	listResult []*domain.DaySchedule
	result     *domain.DaySchedule
	err        error

	lastFilter domain.ScheduleFilter
	lastKey    domain.ScheduleKey
	lastSlots  []domain.SlotCandidate
	lastID     string
	lastUpdate domain.ScheduleUpdate
}

func (f *fakeScheduleService) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.DaySchedule, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	if f.listResult == nil {
		return []*domain.DaySchedule{}, nil
	}
	return f.listResult, nil
}

func (f *fakeScheduleService) Create(ctx context.Context, key domain.ScheduleKey, slots []domain.SlotCandidate) (*domain.DaySchedule, error) {
	f.lastKey = key
	f.lastSlots = slots
	if f.err != nil {
		return nil, f.err
	}
	s := domain.NewDaySchedule(key, testNow, testNow)
	s.ID = testScheduleID
	for i, c := range slots {
		s.Slots = append(s.Slots, domain.Slot{ID: string(rune('a' + i)), StartTime: c.StartTime, EndTime: c.EndTime})
	}
	return s, nil
}

func (f *fakeScheduleService) Update(ctx context.Context, id string, update domain.ScheduleUpdate) (*domain.DaySchedule, error) {
	f.lastID = id
	f.lastUpdate = update
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeScheduleService) Delete(ctx context.Context, id string) error {
	f.lastID = id
	return f.err
}

// fakeStore implements domain.ScheduleStore for slot handler tests.
type fakeStore struct {
	slots []domain.Slot
	slot  *domain.Slot
	err   error

	calls         int
	lastDoctorID  string
	lastDate      string
	lastSlotID    string
	lastCandidate domain.SlotCandidate
}

func (f *fakeStore) record(doctorID, date string) {
	f.calls++
	f.lastDoctorID = doctorID
	f.lastDate = date
}

func (f *fakeStore) GetDaySchedule(ctx context.Context, doctorID, date string) ([]domain.Slot, error) {
	return f.ListSlotsSorted(ctx, doctorID, date)
}

func (f *fakeStore) ListSlotsSorted(ctx context.Context, doctorID, date string) ([]domain.Slot, error) {
	f.record(doctorID, date)
	if f.err != nil {
		return nil, f.err
	}
	if f.slots == nil {
		return []domain.Slot{}, nil
	}
	return f.slots, nil
}

func (f *fakeStore) AddSlot(ctx context.Context, doctorID, date string, candidate domain.SlotCandidate) (*domain.Slot, error) {
	f.record(doctorID, date)
	f.lastCandidate = candidate
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Slot{ID: "slot-new", StartTime: candidate.StartTime, EndTime: candidate.EndTime}, nil
}

func (f *fakeStore) DeleteSlot(ctx context.Context, doctorID, date, slotID string) error {
	f.record(doctorID, date)
	f.lastSlotID = slotID
	return f.err
}

func (f *fakeStore) MarkBooked(ctx context.Context, doctorID, date, slotID string) (*domain.Slot, error) {
	f.record(doctorID, date)
	f.lastSlotID = slotID
	if f.err != nil {
		return nil, f.err
	}
	return f.slot, nil
}

func (f *fakeStore) Invalidate(key domain.ScheduleKey) {}

func (f *fakeStore) InvalidateDoctor(doctorID string) {}
