package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"hospitaladmin/internal/domain"
)

const (
	minRating = 1
	maxRating = 5
)

type feedbackService struct {
	feedbackRepo   domain.FeedbackRepository
	emailService   domain.EmailService
	adminAddress   string
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewFeedbackService creates a FeedbackService. When adminAddress is set, every new submission
// is mailed to it through emailService.
func NewFeedbackService(feedbackRepo domain.FeedbackRepository,
	emailService domain.EmailService,
	adminAddress string,
	logger *slog.Logger,
	timeout time.Duration,
) domain.FeedbackService {
	return &feedbackService{
		feedbackRepo:   feedbackRepo,
		emailService:   emailService,
		adminAddress:   strings.TrimSpace(adminAddress),
		logger:         logger,
		contextTimeout: timeout,
	}
}

func validateFeedback(f *domain.Feedback) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.VisitReason = strings.TrimSpace(f.VisitReason)

	var problems []string
	if f.VisitDate.IsZero() {
		problems = append(problems, "visitDate is required")
	}
	if f.VisitReason == "" {
		problems = append(problems, "visitReason is required")
	}
	if f.Email != "" && !emailRegexp.MatchString(f.Email) {
		problems = append(problems, "invalid email format")
	}

	ratings := f.Ratings()
	names := make([]string, 0, len(ratings))
	for name := range ratings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if v := ratings[name]; v < minRating || v > maxRating {
			problems = append(problems, fmt.Sprintf("%s must be between %d and %d", name, minRating, maxRating))
		}
	}
	return domain.NewValidationError(problems)
}

func (s *feedbackService) Create(ctx context.Context, f *domain.Feedback) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateFeedback(f); err != nil {
		return err
	}
	f.CreatedAt = time.Now()
	f.UpdatedAt = f.CreatedAt
	if err := s.feedbackRepo.Create(ctx, f); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	s.notifyAdmin(ctx, f)
	return nil
}

// notifyAdmin is best-effort: the feedback is already stored.
func (s *feedbackService) notifyAdmin(ctx context.Context, f *domain.Feedback) {
	if s.emailService == nil || s.adminAddress == "" {
		return
	}
	data := &domain.FeedbackReceivedEmailData{
		To:                  s.adminAddress,
		FeedbackID:          f.ID,
		PatientName:         f.Name,
		VisitDate:           f.VisitDate.Format(domain.DateLayout),
		VisitReason:         f.VisitReason,
		OverallSatisfaction: f.OverallSatisfaction,
		NotedIssues:         f.NotedIssues,
	}
	if err := s.emailService.SendFeedbackReceived(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "feedback notification failed", "feedback_id", f.ID, "err", err)
	}
}

func (s *feedbackService) GetByID(ctx context.Context, id string) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireID(id); err != nil {
		return nil, err
	}
	f, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	return f, nil
}

func (s *feedbackService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Feedback, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, total, err := s.feedbackRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list feedback: %w", err)
	}
	return list, total, nil
}

func (s *feedbackService) Update(ctx context.Context, f *domain.Feedback) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireID(f.ID); err != nil {
		return err
	}
	if err := validateFeedback(f); err != nil {
		return err
	}
	f.UpdatedAt = time.Now()
	if err := s.feedbackRepo.Update(ctx, f); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update feedback: %w", err)
	}
	return nil
}

func (s *feedbackService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireID(id); err != nil {
		return err
	}
	if err := s.feedbackRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}
