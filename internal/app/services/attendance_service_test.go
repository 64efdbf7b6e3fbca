package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
)

func newAttendanceService(repo *mockAttendanceRepo, now time.Time) *attendanceServiceImpl {
	svc := NewAttendanceService(repo, nil, zerolog.Nop()).(*attendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func TestRecordAttendance_ComputesHoursAndRefreshesRate(t *testing.T) {
	repo := &mockAttendanceRepo{}
	ctx := context.Background()
	svc := newAttendanceService(repo, time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC))

	repo.On("Create", ctx, mock.AnythingOfType("*models.AttendanceRecord")).Return(nil)
	repo.On("RefreshAttendanceRate", ctx, int64(3), "2025-02-12").Return(90.0, nil)

	rec, err := svc.RecordAttendance(ctx, 3, &dto.CreateAttendanceRequest{
		Date: "2025-03-14", Status: "present", CheckIn: "09:00", CheckOut: "17:30", Location: "office",
	})
	require.NoError(t, err)
	require.NotNil(t, rec.HoursWorked)
	assert.Equal(t, 8.5, *rec.HoursWorked)
	repo.AssertExpectations(t)
}

func TestRecordAttendance_Validation(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := newAttendanceService(repo, time.Now())
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.CreateAttendanceRequest
	}{
		{"bad date", dto.CreateAttendanceRequest{Date: "14/03/2025", Status: "present"}},
		{"bad status", dto.CreateAttendanceRequest{Date: "2025-03-14", Status: "sick"}},
		{"checkout before checkin", dto.CreateAttendanceRequest{Date: "2025-03-14", Status: "present", CheckIn: "18:00", CheckOut: "09:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordAttendance(ctx, 3, &tt.req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordAttendance_RateFailureIsNotFatal(t *testing.T) {
	repo := &mockAttendanceRepo{}
	ctx := context.Background()
	svc := newAttendanceService(repo, time.Now())
	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("RefreshAttendanceRate", ctx, int64(3), mock.Anything).Return(0.0, assert.AnError)

	_, err := svc.RecordAttendance(ctx, 3, &dto.CreateAttendanceRequest{Date: "2025-03-14", Status: "absent"})
	assert.NoError(t, err)
}

func TestUpdateAttendance_OnlyOwnerOrAdmin(t *testing.T) {
	repo := &mockAttendanceRepo{}
	ctx := context.Background()
	svc := newAttendanceService(repo, time.Now())
	repo.On("GetByID", ctx, int64(8)).Return(&models.AttendanceRecord{ID: 8, UserID: 3, Status: models.AttendancePresent}, nil)

	status := "half_day"
	_, err := svc.UpdateAttendance(ctx, 8, &dto.UpdateAttendanceRequest{Status: &status}, 5, false)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	repo.On("Update", ctx, mock.Anything).Return(nil)
	repo.On("RefreshAttendanceRate", ctx, int64(3), mock.Anything).Return(85.0, nil)
	rec, err := svc.UpdateAttendance(ctx, 8, &dto.UpdateAttendanceRequest{Status: &status}, 5, true)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceHalfDay, rec.Status)
}

func TestSummary(t *testing.T) {
	repo := &mockAttendanceRepo{}
	ctx := context.Background()
	svc := newAttendanceService(repo, time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC))

	h := func(v float64) *float64 { return &v }
	repo.On("List", ctx, mock.MatchedBy(func(f models.AttendanceFilter) bool {
		return f.UserID != nil && *f.UserID == 3 && f.From == "2025-03-07" && f.To == "2025-03-14"
	})).Return([]models.AttendanceRecord{
		{Status: models.AttendancePresent, HoursWorked: h(8)},
		{Status: models.AttendancePresent, HoursWorked: h(9)},
		{Status: models.AttendanceHalfDay, HoursWorked: h(4)},
		{Status: models.AttendanceAbsent},
	}, nil)

	sum, err := svc.Summary(ctx, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.TotalDays)
	assert.Equal(t, 2, sum.PresentDays)
	assert.Equal(t, 1, sum.HalfDays)
	assert.Equal(t, 75.0, sum.AttendanceRate)
	assert.Equal(t, 7.0, sum.AverageHours)
}

func TestSummary_TooManyDays(t *testing.T) {
	svc := newAttendanceService(&mockAttendanceRepo{}, time.Now())
	_, err := svc.Summary(context.Background(), 3, 400)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestChat_EmptyQuestion(t *testing.T) {
	svc := newAttendanceService(&mockAttendanceRepo{}, time.Now())
	_, err := svc.Chat(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
