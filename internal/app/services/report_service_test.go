package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/reports"
)

type reportFixture struct {
	people     *mockConsultantRepo
	opps       *mockOpportunityRepo
	apps       *mockApplicationRepo
	attendance *mockAttendanceRepo
	resumes    *mockResumeRepo
	svc        ReportService
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		people:     &mockConsultantRepo{},
		opps:       &mockOpportunityRepo{},
		apps:       &mockApplicationRepo{},
		attendance: &mockAttendanceRepo{},
		resumes:    &mockResumeRepo{},
	}
	f.svc = NewReportService(f.people, f.opps, f.apps, f.attendance, f.resumes, zerolog.Nop())
	return f
}

func TestGenerateReport_UnknownType(t *testing.T) {
	f := newReportFixture()
	_, err := f.svc.GenerateReport(context.Background(), 1, "weekly")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	f.people.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGenerateReport_Comprehensive(t *testing.T) {
	f := newReportFixture()
	ctx := context.Background()
	userID := int64(10)
	consultant := consultantWithSkills(1, 4, "Go")
	consultant.UserID = &userID

	f.people.On("GetByID", ctx, int64(1)).Return(consultant, nil)
	f.opps.On("List", ctx, (*models.OpportunityStatus)(nil)).Return([]*models.Opportunity{
		{ID: 7, Title: "Payments", Status: models.OpportunityFilled, RequiredSkills: []string{"Go"}},
		{ID: 8, Title: "Data", Status: models.OpportunityOpen, RequiredSkills: []string{"Python"}},
	}, nil)
	f.apps.On("ListByConsultant", ctx, int64(1)).Return([]*models.Application{
		{ID: "app_7_a", OpportunityID: 7, ConsultantID: 1, Status: models.ApplicationAccepted},
	}, nil)
	f.attendance.On("List", ctx, mock.MatchedBy(func(flt models.AttendanceFilter) bool {
		return flt.UserID != nil && *flt.UserID == 10
	})).Return([]models.AttendanceRecord{{Date: "2025-03-14", Status: models.AttendancePresent}}, nil)
	f.resumes.On("GetLatest", ctx, int64(1)).Return(nil, apperrors.ErrResumeNotAnalyzed)

	report, err := f.svc.GenerateReport(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, reports.TypeComprehensive, report.Type)
	assert.Equal(t, int64(1), report.Overview.ConsultantID)
	assert.NotNil(t, report.Skills)
	assert.NotNil(t, report.Attendance)
	f.attendance.AssertExpectations(t)
}

func TestGenerateReport_SkipsAttendanceWithoutAccount(t *testing.T) {
	f := newReportFixture()
	ctx := context.Background()
	f.people.On("GetByID", ctx, int64(1)).Return(consultantWithSkills(1, 1), nil)
	f.opps.On("List", ctx, mock.Anything).Return([]*models.Opportunity{}, nil)
	f.apps.On("ListByConsultant", ctx, int64(1)).Return([]*models.Application{}, nil)
	f.resumes.On("GetLatest", ctx, int64(1)).Return(&models.ResumeAnalysis{ConsultantID: 1}, nil)

	_, err := f.svc.GenerateReport(ctx, 1, "skills")
	require.NoError(t, err)
	f.attendance.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGenerateReport_ConsultantMissing(t *testing.T) {
	f := newReportFixture()
	ctx := context.Background()
	f.people.On("GetByID", ctx, int64(9)).Return(nil, apperrors.ErrConsultantNotFound)

	_, err := f.svc.GenerateReport(ctx, 9, "performance")
	assert.ErrorIs(t, err, apperrors.ErrConsultantNotFound)
}
