package domain

import (
	"context"
	"time"
)

// Feedback is a patient's survey about a hospital visit.
// swagger:model Feedback
type Feedback struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name,omitempty"`
	Email                  string    `json:"email,omitempty"`
	VisitDate              time.Time `json:"visitDate"`
	VisitReason            string    `json:"visitReason"`
	VisitCompanions        string    `json:"visitCompanions"`
	Cleanliness            int       `json:"cleanliness"`
	StaffHelpfulness       int       `json:"staffHelpfulness"`
	WaitingAreas           int       `json:"waitingAreas"`
	EducationalInfo        int       `json:"educationalInfo"`
	FoodServices           int       `json:"foodServices"`
	OverallSatisfaction    int       `json:"overallSatisfaction"`
	MostEnjoyedAspect      string    `json:"mostEnjoyedAspect"`
	ImprovementSuggestions string    `json:"improvementSuggestions"`
	NotedIssues            string    `json:"notedIssues"`
	WouldRecommend         string    `json:"wouldRecommend"`
	WantsUpdates           string    `json:"wantsUpdates"`
	AdditionalComments     string    `json:"additionalComments,omitempty"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// Ratings returns the 1-5 scores keyed by their JSON names.
func (f *Feedback) Ratings() map[string]int {
	return map[string]int{
		"cleanliness":         f.Cleanliness,
		"staffHelpfulness":    f.StaffHelpfulness,
		"waitingAreas":        f.WaitingAreas,
		"educationalInfo":     f.EducationalInfo,
		"foodServices":        f.FoodServices,
		"overallSatisfaction": f.OverallSatisfaction,
	}
}

// FeedbackRepository defines the interface for feedback storage
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *Feedback) error
	GetByID(ctx context.Context, id string) (*Feedback, error)
	List(ctx context.Context, params PaginationParams) ([]*Feedback, int, error)
	Update(ctx context.Context, feedback *Feedback) error
	Delete(ctx context.Context, id string) error
}

// FeedbackService defines the business logic for patient feedback.
type FeedbackService interface {
	Create(ctx context.Context, feedback *Feedback) error
	GetByID(ctx context.Context, id string) (*Feedback, error)
	List(ctx context.Context, params PaginationParams) ([]*Feedback, int, error)
	Update(ctx context.Context, feedback *Feedback) error
	Delete(ctx context.Context, id string) error
}
