package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"hospitaladmin/internal/domain"

	"github.com/google/uuid"
)

// scheduleStore mediates every slot mutation of a (doctor, date) DaySchedule.
//
// Reads go through the cache and fall back to the repository. Writes modify a private copy,
// upsert it, and only then refresh the cache, so a failed upsert leaves the cached state as it
// was before the call. mu serializes the read-modify-write inside this process; across
// processes the repository upsert is last-writer-wins.
type scheduleStore struct {
	mu             sync.Mutex
	repo           domain.ScheduleRepository
	cache          domain.DayScheduleCache
	publisher      domain.ScheduleEventPublisher
	logger         *slog.Logger
	contextTimeout time.Duration

	now   func() time.Time
	newID func() string
}

// NewScheduleStore builds the process-wide store. publisher may be nil.
func NewScheduleStore(repo domain.ScheduleRepository,
	cache domain.DayScheduleCache,
	publisher domain.ScheduleEventPublisher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ScheduleStore {
	return &scheduleStore{
		repo:           repo,
		cache:          cache,
		publisher:      publisher,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

func normalizeKey(doctorID, date string) domain.ScheduleKey {
	return domain.ScheduleKey{DoctorID: strings.TrimSpace(doctorID), Date: strings.TrimSpace(date)}
}

// load returns a copy of the DaySchedule for key, filling the cache on a miss.
// A key with no stored document yields an empty schedule.
func (s *scheduleStore) load(ctx context.Context, key domain.ScheduleKey) (*domain.DaySchedule, error) {
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}
	schedule, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("load schedule %s: %w", key, err)
		}
		schedule = domain.NewDaySchedule(key, time.Time{}, time.Time{})
	}
	if schedule.Slots == nil {
		schedule.Slots = []domain.Slot{}
	}
	s.cache.Put(schedule)
	return schedule.Clone(), nil
}

// persist upserts schedule and refreshes the cache entry on success.
func (s *scheduleStore) persist(ctx context.Context, schedule *domain.DaySchedule) error {
	now := s.now()
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = now
	}
	schedule.UpdatedAt = now
	if err := s.repo.Upsert(ctx, schedule); err != nil {
		if errors.Is(err, domain.ErrUnknownDoctor) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrUpstreamPersistence, err)
	}
	s.cache.Put(schedule)
	return nil
}

func (s *scheduleStore) GetDaySchedule(ctx context.Context, doctorID, date string) ([]domain.Slot, error) {
	key := normalizeKey(doctorID, date)
	if domain.ValidateSelection(key) != nil {
		return []domain.Slot{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	schedule, err := s.load(ctx, key)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	domain.SortSlots(schedule.Slots)
	return schedule.Slots, nil
}

// ListSlotsSorted is GetDaySchedule with an explicit ordering guarantee for display.
func (s *scheduleStore) ListSlotsSorted(ctx context.Context, doctorID, date string) ([]domain.Slot, error) {
	slots, err := s.GetDaySchedule(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	domain.SortSlots(slots)
	return slots, nil
}

func (s *scheduleStore) AddSlot(ctx context.Context, doctorID, date string, candidate domain.SlotCandidate) (*domain.Slot, error) {
	key := normalizeKey(doctorID, date)
	if err := domain.ValidateSelection(key); err != nil {
		return nil, err
	}
	if err := domain.ValidateRange(candidate.StartTime, candidate.EndTime); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	schedule, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing, ok := domain.FindOverlap(schedule.Slots, candidate.StartTime, candidate.EndTime); ok {
		return nil, fmt.Errorf("%w: %s-%s conflicts with %s-%s", domain.ErrOverlap,
			candidate.StartTime, candidate.EndTime, existing.StartTime, existing.EndTime)
	}

	slot := domain.Slot{
		ID:        s.newID(),
		StartTime: candidate.StartTime,
		EndTime:   candidate.EndTime,
	}
	schedule.Slots = append(schedule.Slots, slot)
	domain.SortSlots(schedule.Slots)
	if err := s.persist(ctx, schedule); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.ScheduleEventSlotAdded, schedule, &slot)
	return &slot, nil
}

func (s *scheduleStore) DeleteSlot(ctx context.Context, doctorID, date, slotID string) error {
	key := normalizeKey(doctorID, date)
	if err := domain.ValidateSelection(key); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	schedule, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	idx := indexOfSlot(schedule.Slots, slotID)
	if idx < 0 {
		return domain.ErrNotFound
	}
	removed := schedule.Slots[idx]
	if removed.IsBooked {
		return domain.ErrBookedSlotImmutable
	}

	schedule.Slots = append(schedule.Slots[:idx], schedule.Slots[idx+1:]...)
	if err := s.persist(ctx, schedule); err != nil {
		return err
	}

	s.publish(ctx, domain.ScheduleEventSlotDeleted, schedule, &removed)
	return nil
}

// MarkBooked flips a slot to booked. Booking an already booked slot is a no-op.
func (s *scheduleStore) MarkBooked(ctx context.Context, doctorID, date, slotID string) (*domain.Slot, error) {
	key := normalizeKey(doctorID, date)
	if err := domain.ValidateSelection(key); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	schedule, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	idx := indexOfSlot(schedule.Slots, slotID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	if schedule.Slots[idx].IsBooked {
		slot := schedule.Slots[idx]
		return &slot, nil
	}

	schedule.Slots[idx].IsBooked = true
	if err := s.persist(ctx, schedule); err != nil {
		return nil, err
	}

	slot := schedule.Slots[idx]
	s.publish(ctx, domain.ScheduleEventSlotBooked, schedule, &slot)
	return &slot, nil
}

func (s *scheduleStore) Invalidate(key domain.ScheduleKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Invalidate(normalizeKey(key.DoctorID, key.Date))
}

func (s *scheduleStore) InvalidateDoctor(doctorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := s.cache.InvalidateDoctor(strings.TrimSpace(doctorID)); n > 0 {
		s.logger.Debug("invalidated cached schedules", "doctor_id", doctorID, "count", n)
	}
}

func (s *scheduleStore) publish(ctx context.Context, typ domain.ScheduleEventType, schedule *domain.DaySchedule, slot *domain.Slot) {
	publishScheduleEvent(ctx, s.publisher, s.logger, domain.ScheduleEvent{
		Type:       typ,
		ScheduleID: schedule.ID,
		DoctorID:   schedule.DoctorID,
		Date:       schedule.Date,
		Slot:       slot,
		OccurredAt: s.now(),
	})
}

// publishScheduleEvent never fails the caller; delivery errors are only logged.
func publishScheduleEvent(ctx context.Context, publisher domain.ScheduleEventPublisher, logger *slog.Logger, event domain.ScheduleEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "publish schedule event failed",
			"type", string(event.Type), "doctor_id", event.DoctorID, "date", event.Date, "err", err)
	}
}

func indexOfSlot(slots []domain.Slot, id string) int {
	for i := range slots {
		if slots[i].ID == id {
			return i
		}
	}
	return -1
}
