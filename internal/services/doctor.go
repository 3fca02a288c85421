package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"hospitaladmin/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type doctorService struct {
	doctorRepo     domain.DoctorRepository
	store          domain.ScheduleStore
	contextTimeout time.Duration
}

// NewDoctorService creates a DoctorService. store is told to drop cached schedules of deleted doctors.
func NewDoctorService(doctorRepo domain.DoctorRepository, store domain.ScheduleStore, timeout time.Duration) domain.DoctorService {
	return &doctorService{
		doctorRepo:     doctorRepo,
		store:          store,
		contextTimeout: timeout,
	}
}

func normalizeDoctor(d *domain.Doctor) {
	d.Name = strings.TrimSpace(d.Name)
	d.Specialization = strings.TrimSpace(d.Specialization)
	d.Experience = strings.TrimSpace(d.Experience)
	d.Contact = strings.TrimSpace(d.Contact)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Availability = strings.TrimSpace(d.Availability)
	d.Qualifications = strings.TrimSpace(d.Qualifications)
	d.Charges = strings.TrimSpace(d.Charges)
	d.ProfilePicture = strings.TrimSpace(d.ProfilePicture)
}

func validateDoctor(d *domain.Doctor) error {
	var problems []string
	required := []struct{ field, value string }{
		{"name", d.Name},
		{"specialization", d.Specialization},
		{"experience", d.Experience},
		{"contact", d.Contact},
		{"email", d.Email},
		{"availability", d.Availability},
		{"qualifications", d.Qualifications},
		{"charges", d.Charges},
		{"profilePicture", d.ProfilePicture},
	}
	for _, r := range required {
		if r.value == "" {
			problems = append(problems, r.field+" is required")
		}
	}
	if d.Email != "" && !emailRegexp.MatchString(d.Email) {
		problems = append(problems, "invalid email format")
	}
	return domain.NewValidationError(problems)
}

func (s *doctorService) Create(ctx context.Context, d *domain.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	normalizeDoctor(d)
	if err := validateDoctor(d); err != nil {
		return err
	}
	if _, err := s.doctorRepo.GetByEmail(ctx, d.Email); err == nil {
		return domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check doctor email: %w", err)
	}

	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	if err := s.doctorRepo.Create(ctx, d); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return err
		}
		return fmt.Errorf("create doctor: %w", err)
	}
	return nil
}

func (s *doctorService) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireID(id); err != nil {
		return nil, err
	}
	d, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

func (s *doctorService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Doctor, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	doctors, total, err := s.doctorRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, total, nil
}

func (s *doctorService) Update(ctx context.Context, d *domain.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireID(d.ID); err != nil {
		return err
	}
	normalizeDoctor(d)
	if err := validateDoctor(d); err != nil {
		return err
	}
	if other, err := s.doctorRepo.GetByEmail(ctx, d.Email); err == nil && other.ID != d.ID {
		return domain.ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check doctor email: %w", err)
	}

	d.UpdatedAt = time.Now()
	if err := s.doctorRepo.Update(ctx, d); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update doctor: %w", err)
	}
	return nil
}

// Delete removes the doctor. Their schedules go with them (ON DELETE CASCADE).
func (s *doctorService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireID(id); err != nil {
		return err
	}
	if err := s.doctorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete doctor: %w", err)
	}
	if s.store != nil {
		s.store.InvalidateDoctor(id)
	}
	return nil
}
