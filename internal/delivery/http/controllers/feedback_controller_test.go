package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospitaladmin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeedbackID = "30000000-0000-0000-0000-000000000001"

type fakeFeedbackService struct {
	entry      *domain.Feedback
	err        error
	lastSaved  *domain.Feedback
	lastDelete string
}

func (f *fakeFeedbackService) Create(ctx context.Context, fb *domain.Feedback) error {
	f.lastSaved = fb
	if f.err != nil {
		return f.err
	}
	fb.ID = testFeedbackID
	return nil
}

func (f *fakeFeedbackService) GetByID(ctx context.Context, id string) (*domain.Feedback, error) {
	if f.entry == nil || f.entry.ID != id {
		return nil, domain.ErrNotFound
	}
	cp := *f.entry
	return &cp, nil
}

func (f *fakeFeedbackService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Feedback, int, error) {
	return []*domain.Feedback{}, 0, f.err
}

func (f *fakeFeedbackService) Update(ctx context.Context, fb *domain.Feedback) error {
	f.lastSaved = fb
	return f.err
}

func (f *fakeFeedbackService) Delete(ctx context.Context, id string) error {
	f.lastDelete = id
	return f.err
}

func TestParseVisitDate(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{in: "2026-02-14", want: time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), wantOK: true},
		{in: "2026-02-14T10:30:00Z", want: time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC), wantOK: true},
		{in: "  ", wantOK: true},
		{in: "14/02/2026", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseVisitDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			}
		})
	}
}

func TestFeedbackController_CreateFeedback(t *testing.T) {
	body := `{"name":"Anil","visitDate":"2026-02-14","visitReason":"Checkup","visitCompanions":"Alone",` +
		`"cleanliness":5,"staffHelpfulness":4,"waitingAreas":3,"educationalInfo":4,"foodServices":2,"overallSatisfaction":4,` +
		`"mostEnjoyedAspect":"Staff","improvementSuggestions":"Food","notedIssues":"None","wouldRecommend":"Yes","wantsUpdates":"No"}`

	t.Run("created", func(t *testing.T) {
		fake := &fakeFeedbackService{}
		ctrl := NewFeedbackController(testLogger, fake)
		rr := httptest.NewRecorder()

		ctrl.CreateFeedback(rr, httptest.NewRequest(http.MethodPost, "/api/feedback", bytes.NewBufferString(body)))

		require.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, fake.lastSaved)
		assert.Equal(t, 3, fake.lastSaved.WaitingAreas)
		assert.Equal(t, "Yes", fake.lastSaved.WouldRecommend)
		assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), fake.lastSaved.VisitDate)
	})

	t.Run("older field names", func(t *testing.T) {
		fake := &fakeFeedbackService{}
		ctrl := NewFeedbackController(testLogger, fake)
		older := `{"visitDate":"2026-02-14","visitReason":"Checkup","visitCompanions":"Family",` +
			`"cleanliness":5,"staffHelpfulness":4,"animalEnclosures":2,"educationalInfo":4,"foodServices":3,"overallSatisfaction":4,` +
			`"mostEnjoyedAspect":"Staff","improvementSuggestions":"Food","notedIssues":"None","recommendPark":"Yes","wantsUpdates":"No"}`
		rr := httptest.NewRecorder()

		ctrl.CreateFeedback(rr, httptest.NewRequest(http.MethodPost, "/api/feedback", bytes.NewBufferString(older)))

		require.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, fake.lastSaved)
		assert.Equal(t, 2, fake.lastSaved.WaitingAreas)
		assert.Equal(t, "Yes", fake.lastSaved.WouldRecommend)
		assert.NotContains(t, rr.Body.String(), "animalEnclosures")
		assert.Contains(t, rr.Body.String(), `"waitingAreas":2`)
	})

	t.Run("bad visit date", func(t *testing.T) {
		fake := &fakeFeedbackService{}
		ctrl := NewFeedbackController(testLogger, fake)
		rr := httptest.NewRecorder()

		ctrl.CreateFeedback(rr, httptest.NewRequest(http.MethodPost, "/api/feedback", bytes.NewBufferString(`{"visitDate":"yesterday"}`)))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Nil(t, fake.lastSaved)
	})

	t.Run("rating out of range", func(t *testing.T) {
		fake := &fakeFeedbackService{err: domain.NewValidationError([]string{"cleanliness must be between 1 and 5"})}
		ctrl := NewFeedbackController(testLogger, fake)
		rr := httptest.NewRecorder()

		ctrl.CreateFeedback(rr, httptest.NewRequest(http.MethodPost, "/api/feedback", bytes.NewBufferString(body)))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Contains(t, envelope.Error.Message, "cleanliness")
	})
}

func TestFeedbackController_GetUpdateDelete(t *testing.T) {
	stored := &domain.Feedback{ID: testFeedbackID, VisitReason: "Checkup", Cleanliness: 3, OverallSatisfaction: 3}
	fake := &fakeFeedbackService{entry: stored}
	ctrl := NewFeedbackController(testLogger, fake)

	req := httptest.NewRequest(http.MethodGet, "/api/feedback/"+testFeedbackID, nil)
	req.SetPathValue("id", testFeedbackID)
	rr := httptest.NewRecorder()
	ctrl.GetFeedback(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodPut, "/api/feedback/"+testFeedbackID, bytes.NewBufferString(`{"cleanliness":5}`))
	req.SetPathValue("id", testFeedbackID)
	rr = httptest.NewRecorder()
	ctrl.UpdateFeedback(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, fake.lastSaved)
	assert.Equal(t, 5, fake.lastSaved.Cleanliness)
	assert.Equal(t, 3, fake.lastSaved.OverallSatisfaction)

	req = httptest.NewRequest(http.MethodPut, "/api/feedback/"+testFeedbackID, bytes.NewBufferString(`{"recommendPark":"No"}`))
	req.SetPathValue("id", testFeedbackID)
	rr = httptest.NewRecorder()
	ctrl.UpdateFeedback(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "No", fake.lastSaved.WouldRecommend)

	req = httptest.NewRequest(http.MethodDelete, "/api/feedback/"+testFeedbackID, nil)
	req.SetPathValue("id", testFeedbackID)
	rr = httptest.NewRecorder()
	ctrl.DeleteFeedback(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, testFeedbackID, fake.lastDelete)

	req = httptest.NewRequest(http.MethodGet, "/api/feedback/missing", nil)
	req.SetPathValue("id", "missing")
	rr = httptest.NewRecorder()
	ctrl.GetFeedback(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}
