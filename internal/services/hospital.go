package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hospitaladmin/internal/domain"
)

type hospitalService struct {
	hospitalRepo   domain.HospitalRepository
	contextTimeout time.Duration
}

func NewHospitalService(hospitalRepo domain.HospitalRepository, timeout time.Duration) domain.HospitalService {
	return &hospitalService{
		hospitalRepo:   hospitalRepo,
		contextTimeout: timeout,
	}
}

func validateHospital(h *domain.Hospital) error {
	h.Name = strings.TrimSpace(h.Name)
	h.Location = strings.TrimSpace(h.Location)
	h.Description = strings.TrimSpace(h.Description)
	h.Image = strings.TrimSpace(h.Image)

	var problems []string
	if h.Name == "" {
		problems = append(problems, "name is required")
	}
	if h.Location == "" {
		problems = append(problems, "location is required")
	}
	if h.Description == "" {
		problems = append(problems, "description is required")
	}
	if h.Image == "" {
		problems = append(problems, "image is required")
	}
	return domain.NewValidationError(problems)
}

func (s *hospitalService) Create(ctx context.Context, h *domain.Hospital) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateHospital(h); err != nil {
		return err
	}
	h.CreatedAt = time.Now()
	h.UpdatedAt = h.CreatedAt
	if err := s.hospitalRepo.Create(ctx, h); err != nil {
		return fmt.Errorf("create hospital: %w", err)
	}
	return nil
}

func (s *hospitalService) GetByID(ctx context.Context, id string) (*domain.Hospital, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireID(id); err != nil {
		return nil, err
	}
	h, err := s.hospitalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get hospital: %w", err)
	}
	return h, nil
}

func (s *hospitalService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Hospital, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	hospitals, total, err := s.hospitalRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list hospitals: %w", err)
	}
	return hospitals, total, nil
}

func (s *hospitalService) Update(ctx context.Context, h *domain.Hospital) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireID(h.ID); err != nil {
		return err
	}
	if err := validateHospital(h); err != nil {
		return err
	}
	h.UpdatedAt = time.Now()
	if err := s.hospitalRepo.Update(ctx, h); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update hospital: %w", err)
	}
	return nil
}

func (s *hospitalService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireID(id); err != nil {
		return err
	}
	if err := s.hospitalRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete hospital: %w", err)
	}
	return nil
}
