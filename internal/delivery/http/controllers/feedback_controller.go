package controllers

import (
	"cmp"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"hospitaladmin/internal/delivery/http/helpers"
	"hospitaladmin/internal/domain"
)

// parseVisitDate accepts a calendar date or a full RFC 3339 timestamp. Blank yields the zero time.
func parseVisitDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return t, true
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, err == nil
}

// FeedbackRequest is the request body for POST /api/feedback. Ratings are 1 to 5.
// animalEnclosures and recommendPark are the older names of waitingAreas and wouldRecommend
// and are still read from existing survey clients.
type FeedbackRequest struct {
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	VisitDate              string `json:"visitDate"`
	VisitReason            string `json:"visitReason"`
	VisitCompanions        string `json:"visitCompanions"`
	Cleanliness            int    `json:"cleanliness"`
	StaffHelpfulness       int    `json:"staffHelpfulness"`
	WaitingAreas           int    `json:"waitingAreas"`
	EducationalInfo        int    `json:"educationalInfo"`
	FoodServices           int    `json:"foodServices"`
	OverallSatisfaction    int    `json:"overallSatisfaction"`
	MostEnjoyedAspect      string `json:"mostEnjoyedAspect"`
	ImprovementSuggestions string `json:"improvementSuggestions"`
	NotedIssues            string `json:"notedIssues"`
	WouldRecommend         string `json:"wouldRecommend"`
	WantsUpdates           string `json:"wantsUpdates"`
	AdditionalComments     string `json:"additionalComments"`

	AnimalEnclosures *int    `json:"animalEnclosures,omitempty" swaggerignore:"true"`
	RecommendPark    *string `json:"recommendPark,omitempty" swaggerignore:"true"`
}

// Validate implements Validator. Ratings and required fields are checked by the service.
func (f FeedbackRequest) Validate() []string {
	if _, ok := parseVisitDate(f.VisitDate); !ok {
		return []string{"visitDate must be YYYY-MM-DD or RFC 3339"}
	}
	return nil
}

func (f FeedbackRequest) toFeedback() *domain.Feedback {
	visitDate, _ := parseVisitDate(f.VisitDate)
	fb := &domain.Feedback{
		Name:                   f.Name,
		Email:                  f.Email,
		VisitDate:              visitDate,
		VisitReason:            f.VisitReason,
		VisitCompanions:        f.VisitCompanions,
		Cleanliness:            f.Cleanliness,
		StaffHelpfulness:       f.StaffHelpfulness,
		WaitingAreas:           f.WaitingAreas,
		EducationalInfo:        f.EducationalInfo,
		FoodServices:           f.FoodServices,
		OverallSatisfaction:    f.OverallSatisfaction,
		MostEnjoyedAspect:      f.MostEnjoyedAspect,
		ImprovementSuggestions: f.ImprovementSuggestions,
		NotedIssues:            f.NotedIssues,
		WouldRecommend:         f.WouldRecommend,
		WantsUpdates:           f.WantsUpdates,
		AdditionalComments:     f.AdditionalComments,
	}
	if fb.WaitingAreas == 0 && f.AnimalEnclosures != nil {
		fb.WaitingAreas = *f.AnimalEnclosures
	}
	if fb.WouldRecommend == "" && f.RecommendPark != nil {
		fb.WouldRecommend = *f.RecommendPark
	}
	return fb
}

// UpdateFeedbackRequest is the request body for PUT /api/feedback/{id}. Omitted fields are unchanged.
type UpdateFeedbackRequest struct {
	Name                   *string `json:"name"`
	Email                  *string `json:"email"`
	VisitDate              *string `json:"visitDate"`
	VisitReason            *string `json:"visitReason"`
	VisitCompanions        *string `json:"visitCompanions"`
	Cleanliness            *int    `json:"cleanliness"`
	StaffHelpfulness       *int    `json:"staffHelpfulness"`
	WaitingAreas           *int    `json:"waitingAreas"`
	EducationalInfo        *int    `json:"educationalInfo"`
	FoodServices           *int    `json:"foodServices"`
	OverallSatisfaction    *int    `json:"overallSatisfaction"`
	MostEnjoyedAspect      *string `json:"mostEnjoyedAspect"`
	ImprovementSuggestions *string `json:"improvementSuggestions"`
	NotedIssues            *string `json:"notedIssues"`
	WouldRecommend         *string `json:"wouldRecommend"`
	WantsUpdates           *string `json:"wantsUpdates"`
	AdditionalComments     *string `json:"additionalComments"`

	AnimalEnclosures *int    `json:"animalEnclosures,omitempty" swaggerignore:"true"`
	RecommendPark    *string `json:"recommendPark,omitempty" swaggerignore:"true"`
}

// Validate implements Validator.
func (u UpdateFeedbackRequest) Validate() []string {
	if u.VisitDate == nil {
		return nil
	}
	if _, ok := parseVisitDate(*u.VisitDate); !ok {
		return []string{"visitDate must be YYYY-MM-DD or RFC 3339"}
	}
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func (u UpdateFeedbackRequest) apply(f *domain.Feedback) {
	setString(&f.Name, u.Name)
	setString(&f.Email, u.Email)
	if u.VisitDate != nil {
		f.VisitDate, _ = parseVisitDate(*u.VisitDate)
	}
	setString(&f.VisitReason, u.VisitReason)
	setString(&f.VisitCompanions, u.VisitCompanions)
	setInt(&f.Cleanliness, u.Cleanliness)
	setInt(&f.StaffHelpfulness, u.StaffHelpfulness)
	setInt(&f.WaitingAreas, cmp.Or(u.WaitingAreas, u.AnimalEnclosures))
	setInt(&f.EducationalInfo, u.EducationalInfo)
	setInt(&f.FoodServices, u.FoodServices)
	setInt(&f.OverallSatisfaction, u.OverallSatisfaction)
	setString(&f.MostEnjoyedAspect, u.MostEnjoyedAspect)
	setString(&f.ImprovementSuggestions, u.ImprovementSuggestions)
	setString(&f.NotedIssues, u.NotedIssues)
	setString(&f.WouldRecommend, cmp.Or(u.WouldRecommend, u.RecommendPark))
	setString(&f.WantsUpdates, u.WantsUpdates)
	setString(&f.AdditionalComments, u.AdditionalComments)
}

// FeedbackListResponse is the paginated envelope for GET /api/feedback.
type FeedbackListResponse struct {
	Success    bool                   `json:"success"`
	Data       []*domain.Feedback     `json:"data"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// FeedbackResponse is the success envelope for a single feedback entry.
type FeedbackResponse struct {
	Success bool             `json:"success"`
	Data    *domain.Feedback `json:"data"`
}

type FeedbackController struct {
	Logger  *slog.Logger
	Service domain.FeedbackService
}

func NewFeedbackController(logger *slog.Logger, svc domain.FeedbackService) *FeedbackController {
	return &FeedbackController{Logger: logger, Service: svc}
}

// ListFeedback godoc
// @Summary List patient feedback
// @Description Newest first.
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20 when paging, max 100; omit page and page_size to list all)"
// @Success 200 {object} controllers.FeedbackListResponse
// @Router /api/feedback [get]
func (c *FeedbackController) ListFeedback(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	entries, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONPage(w, entries, helpers.NewPaginationMeta(params.Page, params.PageSize, total))
}

// GetFeedback godoc
// @Summary Get one feedback entry
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID (UUID)"
// @Success 200 {object} controllers.FeedbackResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/feedback/{id} [get]
func (c *FeedbackController) GetFeedback(w http.ResponseWriter, r *http.Request) {
	entry, err := c.Service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entry)
}

// CreateFeedback godoc
// @Summary Submit patient feedback
// @Description Public endpoint. Administrators are notified by email when a notification address is configured.
// @Tags feedback
// @Accept json
// @Produce json
// @Param feedback body FeedbackRequest true "Survey answers"
// @Success 201 {object} controllers.FeedbackResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/feedback [post]
func (c *FeedbackController) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	entry := req.toFeedback()
	if err := c.Service.Create(r.Context(), entry); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, entry)
}

// UpdateFeedback godoc
// @Summary Update a feedback entry
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID (UUID)"
// @Param feedback body UpdateFeedbackRequest true "Fields to change"
// @Success 200 {object} controllers.FeedbackResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/feedback/{id} [put]
func (c *FeedbackController) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	var req UpdateFeedbackRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	entry, err := c.Service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	req.apply(entry)
	if err := c.Service.Update(r.Context(), entry); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entry)
}

// DeleteFeedback godoc
// @Summary Delete a feedback entry
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID (UUID)"
// @Success 200 {object} helpers.APIResponse "message: Feedback deleted"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/feedback/{id} [delete]
func (c *FeedbackController) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONMessage(w, http.StatusOK, "Feedback deleted")
}
