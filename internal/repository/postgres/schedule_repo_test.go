package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"hospitaladmin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scheduleCols = []string{"id", "doctor_id", "date", "slots", "created_at", "updated_at"}

func TestScheduleRepository_Create(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	slots := []domain.Slot{{ID: "slot-1", StartTime: "09:00", EndTime: "10:00"}}
	wantJSON := []byte(`[{"id":"slot-1","startTime":"09:00","endTime":"10:00","isBooked":false}]`)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO schedules`).
					WithArgs("doc-1", "2025-03-01", wantJSON, ts, ts).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sched-1"))
			},
			wantID: "sched-1",
		},
		{
			name: "unique violation maps to duplicate",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO schedules`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateSchedule,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO schedules`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewScheduleRepository(db)
			s := &domain.DaySchedule{DoctorID: "doc-1", Date: "2025-03-01", Slots: slots, CreatedAt: ts, UpdatedAt: ts}
			err = repo.Create(ctx, s)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, s.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestScheduleRepository_GetByKey(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	key := domain.ScheduleKey{DoctorID: "doc-1", Date: "2025-03-01"}

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM schedules WHERE doctor_id = \$1 AND date = \$2`).
			WithArgs("doc-1", "2025-03-01").
			WillReturnRows(sqlmock.NewRows(scheduleCols).
				AddRow("sched-1", "doc-1", "2025-03-01", `[{"id":"a","startTime":"09:00","endTime":"10:00","isBooked":true}]`, ts, ts))

		s, err := NewScheduleRepository(db).GetByKey(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "sched-1", s.ID)
		require.Len(t, s.Slots, 1)
		assert.True(t, s.Slots[0].IsBooked)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM schedules`).WillReturnRows(sqlmock.NewRows(scheduleCols))

		_, err = NewScheduleRepository(db).GetByKey(ctx, key)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("corrupt slots", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM schedules`).
			WillReturnRows(sqlmock.NewRows(scheduleCols).AddRow("sched-1", "doc-1", "2025-03-01", `{not json`, ts, ts))

		_, err = NewScheduleRepository(db).GetByKey(ctx, key)
		require.Error(t, err)
		assert.False(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestScheduleRepository_List(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("resolves doctors", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM schedules ORDER BY date, created_at`).
			WillReturnRows(sqlmock.NewRows(scheduleCols).
				AddRow("s-1", "doc-1", "2025-03-01", `[]`, ts, ts).
				AddRow("s-2", "doc-1", "2025-03-02", `[]`, ts, ts).
				AddRow("s-3", "doc-2", "2025-03-02", `[]`, ts, ts))
		mock.ExpectQuery(`SELECT id, name, specialization, contact, email FROM doctors WHERE id = ANY`).
			WithArgs(pq.Array([]string{"doc-1", "doc-2"})).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialization", "contact", "email"}).
				AddRow("doc-1", "Dr. Rao", "Cardiology", "555-0101", "rao@example.com"))

		list, err := NewScheduleRepository(db).List(ctx, domain.ScheduleFilter{})
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.NotNil(t, list[0].Doctor)
		assert.Equal(t, "Dr. Rao", list[0].Doctor.Name)
		assert.Same(t, list[0].Doctor, list[1].Doctor)
		assert.Nil(t, list[2].Doctor, "unknown doctor stays unresolved")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filters", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM schedules WHERE doctor_id = \$1 AND date = \$2 ORDER BY`).
			WithArgs("doc-9", "2025-03-01").
			WillReturnRows(sqlmock.NewRows(scheduleCols))

		list, err := NewScheduleRepository(db).List(ctx, domain.ScheduleFilter{DoctorID: "doc-9", Date: "2025-03-01"})
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestScheduleRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO schedules (.+) ON CONFLICT \(doctor_id, date\) DO UPDATE`).
		WithArgs("doc-1", "2025-03-01", []byte(`[]`), ts, ts).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("sched-1", created))

	s := &domain.DaySchedule{DoctorID: "doc-1", Date: "2025-03-01", CreatedAt: ts, UpdatedAt: ts}
	require.NoError(t, NewScheduleRepository(db).Upsert(ctx, s))
	assert.Equal(t, "sched-1", s.ID)
	assert.Equal(t, created, s.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_Upsert_UnknownDoctor(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO schedules (.+) ON CONFLICT \(doctor_id, date\) DO UPDATE`).
		WithArgs("doc-missing", "2025-03-01", []byte(`[]`), ts, ts).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "schedules_doctor_id_fkey"})

	s := &domain.DaySchedule{DoctorID: "doc-missing", Date: "2025-03-01", CreatedAt: ts, UpdatedAt: ts}
	err = NewScheduleRepository(db).Upsert(ctx, s)
	require.ErrorIs(t, err, domain.ErrUnknownDoctor)
	assert.Empty(t, s.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_Update(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE schedules`).
					WithArgs("sched-1", "doc-1", "2025-03-01", []byte(`[]`), ts).
					WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(ts))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE schedules`).WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "conflicting key",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE schedules`).WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateSchedule,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			s := &domain.DaySchedule{ID: "sched-1", DoctorID: "doc-1", Date: "2025-03-01", Slots: []domain.Slot{}, UpdatedAt: ts}
			err = NewScheduleRepository(db).Update(ctx, s)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestScheduleRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		result  sql.Result
		wantErr error
	}{
		{"deleted", sqlmock.NewResult(0, 1), nil},
		{"not found", sqlmock.NewResult(0, 0), domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(`DELETE FROM schedules WHERE id = \$1`).WithArgs("sched-1").WillReturnResult(tt.result)
			err = NewScheduleRepository(db).Delete(ctx, "sched-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
