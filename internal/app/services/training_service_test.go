package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/training"
)

type trainingFixture struct {
	people   *mockConsultantRepo
	opps     *mockOpportunityRepo
	repo     *mockTrainingRepo
	notifier *recordingNotifier
	svc      TrainingService
}

func newTrainingFixture() *trainingFixture {
	f := &trainingFixture{
		people:   &mockConsultantRepo{},
		opps:     &mockOpportunityRepo{},
		repo:     &mockTrainingRepo{},
		notifier: &recordingNotifier{},
	}
	f.svc = NewTrainingService(f.people, f.opps, f.repo, training.NewEngine(nil), f.notifier, zerolog.Nop())
	return f
}

func ptrFloat(v float64) *float64 { return &v }

func TestTrainingStatusFor(t *testing.T) {
	e := func(s models.EnrollmentStatus) *models.TrainingEnrollment {
		return &models.TrainingEnrollment{Status: s}
	}
	tests := []struct {
		name string
		in   []*models.TrainingEnrollment
		want string
	}{
		{"none", nil, models.TrainingStatusNotStarted},
		{"only enrolled", []*models.TrainingEnrollment{e(models.EnrollmentEnrolled)}, models.TrainingStatusNotStarted},
		{"one in progress", []*models.TrainingEnrollment{e(models.EnrollmentCompleted), e(models.EnrollmentInProgress)}, models.TrainingStatusInProgress},
		{"all completed", []*models.TrainingEnrollment{e(models.EnrollmentCompleted), e(models.EnrollmentCompleted)}, models.TrainingStatusCompleted},
		{"dropped ignored", []*models.TrainingEnrollment{e(models.EnrollmentCompleted), e(models.EnrollmentDropped)}, models.TrainingStatusCompleted},
		{"completed with one not started", []*models.TrainingEnrollment{e(models.EnrollmentCompleted), e(models.EnrollmentEnrolled)}, models.TrainingStatusInProgress},
		{"only dropped", []*models.TrainingEnrollment{e(models.EnrollmentDropped)}, models.TrainingStatusNotStarted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrainingStatusFor(tt.in))
		})
	}
}

func TestSkillGapsFor(t *testing.T) {
	open := []*models.Opportunity{
		{Title: "A", RequiredSkills: []string{"Go", "Kubernetes"}},
		{Title: "B", RequiredSkills: []string{"kubernetes", "AWS"}},
		{Title: "C", RequiredSkills: []string{"Kubernetes "}},
	}
	gaps := SkillGapsFor([]string{"go"}, open)
	require.Len(t, gaps, 2)
	assert.Equal(t, "Kubernetes", gaps[0].Skill)
	assert.Equal(t, []string{"A", "B", "C"}, gaps[0].Opportunities)
	assert.Equal(t, "High", gaps[0].Priority)
	assert.Equal(t, "AWS", gaps[1].Skill)
	assert.Equal(t, "Low", gaps[1].Priority)
}

func TestTrainingMetricsFor(t *testing.T) {
	m := TrainingMetricsFor([]*models.TrainingEnrollment{
		{Status: models.EnrollmentCompleted, Progress: 100, HoursSpent: 20},
		{Status: models.EnrollmentInProgress, Progress: 45, HoursSpent: 6},
		{Status: models.EnrollmentDropped, Progress: 10, HoursSpent: 1},
	}, 4, 2)
	assert.Equal(t, 1, m.CompletedTraining)
	assert.Equal(t, 1, m.ActiveTrainings)
	assert.Equal(t, 72.5, m.AverageProgress)
	assert.Equal(t, 26.0, m.HoursSpent)
	assert.Equal(t, 4, m.SkillsToDevelop)
	assert.Equal(t, 2, m.OpenOpportunities)
}

func TestEnroll_UnknownProgram(t *testing.T) {
	f := newTrainingFixture()
	_, err := f.svc.Enroll(context.Background(), 1, "basket_weaving")
	assert.ErrorIs(t, err, apperrors.ErrTrainingProgramNotFound)
	f.repo.AssertNotCalled(t, "CreateEnrollment", mock.Anything, mock.Anything)
}

func TestEnroll_CopiesCatalogProgram(t *testing.T) {
	f := newTrainingFixture()
	ctx := context.Background()
	f.people.On("GetByID", ctx, int64(1)).Return(consultantWithSkills(1, 2), nil)
	f.repo.On("CreateEnrollment", ctx, mock.MatchedBy(func(e *models.TrainingEnrollment) bool {
		return e.ProgramID == "kubernetes_fundamentals" && e.ProgramName == "Kubernetes Fundamentals" &&
			e.Status == models.EnrollmentEnrolled
	})).Return(nil)

	e, err := f.svc.Enroll(ctx, 1, "kubernetes_fundamentals")
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ConsultantID)
	f.repo.AssertExpectations(t)
}

func TestEnroll_DuplicateActive(t *testing.T) {
	f := newTrainingFixture()
	ctx := context.Background()
	f.people.On("GetByID", ctx, int64(1)).Return(consultantWithSkills(1, 2), nil)
	f.repo.On("CreateEnrollment", ctx, mock.Anything).Return(apperrors.ErrAlreadyEnrolled)

	_, err := f.svc.Enroll(ctx, 1, "kubernetes_fundamentals")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}

func TestUpdateProgress_RejectsOutOfRange(t *testing.T) {
	f := newTrainingFixture()
	_, err := f.svc.UpdateProgress(context.Background(), 5, &dto.ProgressRequest{Progress: ptrFloat(120)})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateProgress_StartsEnrollment(t *testing.T) {
	f := newTrainingFixture()
	ctx := context.Background()
	enrollment := &models.TrainingEnrollment{ID: 5, ConsultantID: 1, ProgramID: "kubernetes_fundamentals",
		ProgramName: "Kubernetes Fundamentals", Status: models.EnrollmentEnrolled}
	f.repo.On("GetEnrollment", ctx, int64(5)).Return(enrollment, nil)
	f.repo.On("UpdateProgress", ctx, enrollment).Return(nil)
	f.repo.On("ListEnrollments", ctx, int64(1)).Return([]*models.TrainingEnrollment{enrollment}, nil)
	f.people.On("UpdateTrainingStatus", ctx, int64(1), models.TrainingStatusInProgress).Return(nil)

	resp, err := f.svc.UpdateProgress(ctx, 5, &dto.ProgressRequest{Progress: ptrFloat(30), HoursSpent: ptrFloat(6)})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentInProgress, resp.Enrollment.Status)
	assert.NotNil(t, resp.Enrollment.StartedAt)
	assert.Nil(t, resp.Enrollment.CompletedAt)
	assert.Equal(t, "progressing_well", resp.Progress.Status)
	assert.Empty(t, f.notifier.sent)
	f.people.AssertExpectations(t)
}

func TestUpdateProgress_CompletionNotifies(t *testing.T) {
	f := newTrainingFixture()
	ctx := context.Background()
	enrollment := &models.TrainingEnrollment{ID: 5, ConsultantID: 1, ProgramID: "kubernetes_fundamentals",
		ProgramName: "Kubernetes Fundamentals", Status: models.EnrollmentInProgress, Progress: 60}
	f.repo.On("GetEnrollment", ctx, int64(5)).Return(enrollment, nil)
	f.repo.On("UpdateProgress", ctx, enrollment).Return(nil)
	f.repo.On("ListEnrollments", ctx, int64(1)).Return([]*models.TrainingEnrollment{enrollment}, nil)
	f.people.On("UpdateTrainingStatus", ctx, int64(1), models.TrainingStatusCompleted).Return(nil)

	resp, err := f.svc.UpdateProgress(ctx, 5, &dto.ProgressRequest{Progress: ptrFloat(100)})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentCompleted, resp.Enrollment.Status)
	assert.NotNil(t, resp.Enrollment.CompletedAt)
	assert.Equal(t, "Completed", resp.Progress.EstimatedCompletion)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, models.NotificationTrainingComplete, f.notifier.sent[0].Type)
	f.people.AssertExpectations(t)
}

func TestSkillGaps_DefaultsToOpenOpportunities(t *testing.T) {
	f := newTrainingFixture()
	ctx := context.Background()
	f.people.On("GetByID", ctx, int64(1)).Return(consultantWithSkills(1, 4, "Go"), nil)
	f.opps.On("List", ctx, mock.MatchedBy(func(s *models.OpportunityStatus) bool {
		return s != nil && *s == models.OpportunityOpen
	})).Return([]*models.Opportunity{{RequiredSkills: []string{"Go", "AWS"}}}, nil)

	gaps, err := f.svc.SkillGaps(ctx, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, gaps.MatchingSkills)
	assert.Equal(t, []string{"AWS"}, gaps.MissingSkills)
	assert.Equal(t, 50.0, gaps.CoveragePercentage)
}

func TestGetDashboard(t *testing.T) {
	f := newTrainingFixture()
	ctx := context.Background()
	f.people.On("GetByID", ctx, int64(1)).Return(consultantWithSkills(1, 4, "Go"), nil)
	f.opps.On("List", ctx, mock.Anything).Return([]*models.Opportunity{
		{Title: "Cloud", RequiredSkills: []string{"Go", "Kubernetes"}},
	}, nil)
	f.repo.On("ListEnrollments", ctx, int64(1)).Return([]*models.TrainingEnrollment{}, nil)

	resp, err := f.svc.GetDashboard(ctx, 1)
	require.NoError(t, err)
	require.Len(t, resp.MissingSkills, 1)
	assert.Equal(t, "Kubernetes", resp.MissingSkills[0].Skill)
	assert.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, 1, resp.Metrics.SkillsToDevelop)
	assert.Equal(t, 1, resp.Metrics.OpenOpportunities)
}
