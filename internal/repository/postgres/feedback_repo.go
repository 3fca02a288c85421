package postgres

import (
	"context"
	"database/sql"
	"errors"

	"hospitaladmin/internal/domain"
)

type feedbackRepository struct {
	DB *sql.DB
}

func NewFeedbackRepository(db *sql.DB) domain.FeedbackRepository {
	return &feedbackRepository{
		DB: db,
	}
}

const feedbackColumns = `id, name, email, visit_date, visit_reason, visit_companions,
	cleanliness, staff_helpfulness, waiting_areas, educational_info, food_services, overall_satisfaction,
	most_enjoyed_aspect, improvement_suggestions, noted_issues, would_recommend, wants_updates,
	additional_comments, created_at, updated_at`

func scanFeedback(row rowScanner) (*domain.Feedback, error) {
	f := &domain.Feedback{}
	err := row.Scan(&f.ID, &f.Name, &f.Email, &f.VisitDate, &f.VisitReason, &f.VisitCompanions,
		&f.Cleanliness, &f.StaffHelpfulness, &f.WaitingAreas, &f.EducationalInfo, &f.FoodServices, &f.OverallSatisfaction,
		&f.MostEnjoyedAspect, &f.ImprovementSuggestions, &f.NotedIssues, &f.WouldRecommend, &f.WantsUpdates,
		&f.AdditionalComments, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *feedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	query := `
		INSERT INTO feedback (name, email, visit_date, visit_reason, visit_companions,
			cleanliness, staff_helpfulness, waiting_areas, educational_info, food_services, overall_satisfaction,
			most_enjoyed_aspect, improvement_suggestions, noted_issues, would_recommend, wants_updates,
			additional_comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, f.Name, f.Email, f.VisitDate, f.VisitReason, f.VisitCompanions,
		f.Cleanliness, f.StaffHelpfulness, f.WaitingAreas, f.EducationalInfo, f.FoodServices, f.OverallSatisfaction,
		f.MostEnjoyedAspect, f.ImprovementSuggestions, f.NotedIssues, f.WouldRecommend, f.WantsUpdates,
		f.AdditionalComments, f.CreatedAt, f.UpdatedAt).Scan(&f.ID)
}

func (r *feedbackRepository) GetByID(ctx context.Context, id string) (*domain.Feedback, error) {
	f, err := scanFeedback(r.DB.QueryRowContext(ctx, `SELECT `+feedbackColumns+` FROM feedback WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *feedbackRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Feedback, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query, args := paginate(`SELECT `+feedbackColumns+` FROM feedback ORDER BY created_at DESC`, params)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*domain.Feedback, 0)
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *feedbackRepository) Update(ctx context.Context, f *domain.Feedback) error {
	query := `
		UPDATE feedback
		SET name = $2, email = $3, visit_date = $4, visit_reason = $5, visit_companions = $6,
			cleanliness = $7, staff_helpfulness = $8, waiting_areas = $9, educational_info = $10,
			food_services = $11, overall_satisfaction = $12, most_enjoyed_aspect = $13,
			improvement_suggestions = $14, noted_issues = $15, would_recommend = $16, wants_updates = $17,
			additional_comments = $18, updated_at = $19
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, f.ID, f.Name, f.Email, f.VisitDate, f.VisitReason, f.VisitCompanions,
		f.Cleanliness, f.StaffHelpfulness, f.WaitingAreas, f.EducationalInfo, f.FoodServices, f.OverallSatisfaction,
		f.MostEnjoyedAspect, f.ImprovementSuggestions, f.NotedIssues, f.WouldRecommend, f.WantsUpdates,
		f.AdditionalComments, f.UpdatedAt)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *feedbackRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
