package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hospitaladmin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHospitalRepo is an in-memory HospitalRepository for tests.
type fakeHospitalRepo struct {
	byID   map[string]*domain.Hospital
	nextID int
	err    error
}

func newFakeHospitalRepo() *fakeHospitalRepo {
	return &fakeHospitalRepo{byID: make(map[string]*domain.Hospital), nextID: 1}
}

func (f *fakeHospitalRepo) Create(ctx context.Context, h *domain.Hospital) error {
	if f.err != nil {
		return f.err
	}
	h.ID = fmt.Sprintf("20000000-0000-0000-0000-%012d", f.nextID)
	f.nextID++
	cp := *h
	f.byID[h.ID] = &cp
	return nil
}

func (f *fakeHospitalRepo) GetByID(ctx context.Context, id string) (*domain.Hospital, error) {
	if h, ok := f.byID[id]; ok {
		cp := *h
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeHospitalRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Hospital, int, error) {
	out := make([]*domain.Hospital, 0, len(f.byID))
	for _, h := range f.byID {
		cp := *h
		out = append(out, &cp)
	}
	return out, len(out), f.err
}

func (f *fakeHospitalRepo) Update(ctx context.Context, h *domain.Hospital) error {
	if _, ok := f.byID[h.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *h
	f.byID[h.ID] = &cp
	return nil
}

func (f *fakeHospitalRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestHospitalService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		hospital *domain.Hospital
		repoErr  error
		wantErr  error
	}{
		{
			name:     "success",
			hospital: &domain.Hospital{Name: " City General ", Location: "Pune", Description: "Tertiary care", Image: "city.png"},
		},
		{
			name:     "missing fields",
			hospital: &domain.Hospital{Name: "City General"},
			wantErr:  domain.ErrValidation,
		},
		{
			name:     "repository failure",
			hospital: &domain.Hospital{Name: "City General", Location: "Pune", Description: "Tertiary care", Image: "city.png"},
			repoErr:  errors.New("db down"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeHospitalRepo()
			repo.err = tt.repoErr
			svc := NewHospitalService(repo, time.Second)
			err := svc.Create(ctx, tt.hospital)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.repoErr != nil:
				require.ErrorIs(t, err, tt.repoErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, "City General", tt.hospital.Name)
				assert.NotEmpty(t, tt.hospital.ID)
			}
		})
	}
}

func TestHospitalService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeHospitalRepo()
	svc := NewHospitalService(repo, time.Second)

	h := &domain.Hospital{Name: "City General", Location: "Pune", Description: "Tertiary care", Image: "city.png"}
	require.NoError(t, svc.Create(ctx, h))

	h.Location = "Mumbai"
	require.NoError(t, svc.Update(ctx, h))
	got, err := svc.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", got.Location)

	h.Image = ""
	require.ErrorIs(t, svc.Update(ctx, h), domain.ErrValidation)

	require.ErrorIs(t, svc.Delete(ctx, "nope"), domain.ErrInvalidID)
	require.NoError(t, svc.Delete(ctx, h.ID))
	require.ErrorIs(t, svc.Delete(ctx, h.ID), domain.ErrNotFound)
	_, err = svc.GetByID(ctx, h.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
