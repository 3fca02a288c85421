package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hospitaladmin/internal/domain"

	"github.com/google/uuid"
)

type scheduleService struct {
	repo           domain.ScheduleRepository
	doctorRepo     domain.DoctorRepository
	store          domain.ScheduleStore
	publisher      domain.ScheduleEventPublisher
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewScheduleService handles whole schedule documents. Every mutation invalidates the
// store's cached copy of the affected (doctor, date) keys.
func NewScheduleService(repo domain.ScheduleRepository,
	doctorRepo domain.DoctorRepository,
	store domain.ScheduleStore,
	publisher domain.ScheduleEventPublisher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ScheduleService {
	return &scheduleService{
		repo:           repo,
		doctorRepo:     doctorRepo,
		store:          store,
		publisher:      publisher,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *scheduleService) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.DaySchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var problems []string
	if filter.DoctorID != "" && requireID(filter.DoctorID) != nil {
		problems = append(problems, "doctor must be a valid id")
	}
	if filter.Date != "" && !domain.ValidateDate(filter.Date) {
		problems = append(problems, "date must be YYYY-MM-DD")
	}
	if err := domain.NewValidationError(problems); err != nil {
		return nil, err
	}

	schedules, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	if schedules == nil {
		schedules = []*domain.DaySchedule{}
	}
	for _, sc := range schedules {
		domain.SortSlots(sc.Slots)
	}
	return schedules, nil
}

func (s *scheduleService) Create(ctx context.Context, key domain.ScheduleKey, candidates []domain.SlotCandidate) (*domain.DaySchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key = normalizeKey(key.DoctorID, key.Date)
	problems := validateKey(key)
	if len(candidates) == 0 {
		problems = append(problems, "slots must be a non-empty array")
	}
	problems = append(problems, validateCandidates(candidates)...)
	if err := domain.NewValidationError(problems); err != nil {
		return nil, err
	}

	slots := buildSlots(candidates, nil)
	if err := domain.ValidateSlotSet(slots); err != nil {
		return nil, err
	}

	doctor, err := s.requireDoctor(ctx, key.DoctorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByKey(ctx, key); err == nil {
		return nil, domain.ErrDuplicateSchedule
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check existing schedule: %w", err)
	}

	now := time.Now()
	schedule := domain.NewDaySchedule(key, now, now)
	schedule.Slots = slots
	if err := s.repo.Create(ctx, schedule); err != nil {
		if errors.Is(err, domain.ErrDuplicateSchedule) {
			return nil, err
		}
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	schedule.Doctor = doctor.Ref()

	s.store.Invalidate(key)
	s.publish(ctx, domain.ScheduleEventScheduleCreated, schedule)
	return schedule, nil
}

func (s *scheduleService) Update(ctx context.Context, id string, update domain.ScheduleUpdate) (*domain.DaySchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireID(id); err != nil {
		return nil, err
	}
	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	oldKey := schedule.Key()

	newKey := oldKey
	if update.DoctorID != nil {
		newKey.DoctorID = strings.TrimSpace(*update.DoctorID)
	}
	if update.Date != nil {
		newKey.Date = strings.TrimSpace(*update.Date)
	}
	problems := validateKey(newKey)
	if update.Slots != nil {
		if len(update.Slots) == 0 {
			problems = append(problems, "slots must be a non-empty array")
		}
		problems = append(problems, validateCandidates(update.Slots)...)
	}
	if err := domain.NewValidationError(problems); err != nil {
		return nil, err
	}

	if update.Slots != nil {
		slots := buildSlots(update.Slots, schedule.Slots)
		if err := domain.ValidateSlotSet(slots); err != nil {
			return nil, err
		}
		if err := keepsBookedSlots(schedule.Slots, slots); err != nil {
			return nil, err
		}
		schedule.Slots = slots
	}

	doctor, err := s.requireDoctor(ctx, newKey.DoctorID)
	if err != nil {
		return nil, err
	}

	if newKey != oldKey {
		existing, err := s.repo.GetByKey(ctx, newKey)
		if err == nil && existing.ID != schedule.ID {
			return nil, domain.ErrDuplicateSchedule
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("check existing schedule: %w", err)
		}
	}

	schedule.DoctorID = newKey.DoctorID
	schedule.Date = newKey.Date
	schedule.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, schedule); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicateSchedule) {
			return nil, err
		}
		return nil, fmt.Errorf("update schedule: %w", err)
	}
	schedule.Doctor = doctor.Ref()

	s.store.Invalidate(oldKey)
	if newKey != oldKey {
		s.store.Invalidate(newKey)
	}
	s.publish(ctx, domain.ScheduleEventScheduleUpdated, schedule)
	return schedule, nil
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireID(id); err != nil {
		return err
	}
	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get schedule: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete schedule: %w", err)
	}

	s.store.Invalidate(schedule.Key())
	s.publish(ctx, domain.ScheduleEventScheduleDeleted, schedule)
	return nil
}

func (s *scheduleService) requireDoctor(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError([]string{"doctor does not exist"})
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return doctor, nil
}

func (s *scheduleService) publish(ctx context.Context, typ domain.ScheduleEventType, schedule *domain.DaySchedule) {
	publishScheduleEvent(ctx, s.publisher, s.logger, domain.ScheduleEvent{
		Type:       typ,
		ScheduleID: schedule.ID,
		DoctorID:   schedule.DoctorID,
		Date:       schedule.Date,
		OccurredAt: time.Now(),
	})
}

func validateKey(key domain.ScheduleKey) []string {
	var problems []string
	if key.DoctorID == "" {
		problems = append(problems, "doctor is required")
	} else if requireID(key.DoctorID) != nil {
		problems = append(problems, "doctor must be a valid id")
	}
	if key.Date == "" {
		problems = append(problems, "date is required")
	} else if !domain.ValidateDate(key.Date) {
		problems = append(problems, "date must be YYYY-MM-DD")
	}
	return problems
}

func validateCandidates(candidates []domain.SlotCandidate) []string {
	var problems []string
	for i, c := range candidates {
		if strings.TrimSpace(c.StartTime) == "" || strings.TrimSpace(c.EndTime) == "" {
			problems = append(problems, fmt.Sprintf("slot %d must have startTime and endTime", i+1))
		}
	}
	return problems
}

// buildSlots assigns ids to candidates. A candidate matching an existing slot's interval keeps
// that slot's id and booked state.
func buildSlots(candidates []domain.SlotCandidate, existing []domain.Slot) []domain.Slot {
	prior := make(map[[2]string]domain.Slot, len(existing))
	for _, s := range existing {
		prior[[2]string{s.StartTime, s.EndTime}] = s
	}
	slots := make([]domain.Slot, 0, len(candidates))
	for _, c := range candidates {
		if p, ok := prior[[2]string{c.StartTime, c.EndTime}]; ok {
			slots = append(slots, p)
			delete(prior, [2]string{c.StartTime, c.EndTime})
			continue
		}
		slots = append(slots, domain.Slot{ID: uuid.NewString(), StartTime: c.StartTime, EndTime: c.EndTime})
	}
	domain.SortSlots(slots)
	return slots
}

// keepsBookedSlots rejects a replacement set that leaves out a booked slot.
func keepsBookedSlots(existing, replacement []domain.Slot) error {
	for _, old := range existing {
		if old.IsBooked && indexOfSlot(replacement, old.ID) < 0 {
			return fmt.Errorf("%w: %s-%s", domain.ErrBookedSlotImmutable, old.StartTime, old.EndTime)
		}
	}
	return nil
}
