package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
)

type opportunityFixture struct {
	opps     *mockOpportunityRepo
	apps     *mockApplicationRepo
	people   *mockConsultantRepo
	notifier *recordingNotifier
	svc      OpportunityService
}

func newOpportunityFixture() *opportunityFixture {
	f := &opportunityFixture{
		opps:     &mockOpportunityRepo{},
		apps:     &mockApplicationRepo{},
		people:   &mockConsultantRepo{},
		notifier: &recordingNotifier{},
	}
	f.svc = NewOpportunityService(f.opps, f.apps, f.people, f.notifier, nopMailer{}, zerolog.Nop())
	return f
}

func consultantWithSkills(id int64, years int, skills ...string) *models.Consultant {
	c := &models.Consultant{ID: id, Name: "Consultant", Email: "c@bench.example", ExperienceYears: years}
	for _, s := range skills {
		c.Skills = append(c.Skills, models.ConsultantSkill{SkillName: s, Category: models.SkillTechnical})
	}
	return c
}

func TestNewApplicationID(t *testing.T) {
	id := NewApplicationID(42)
	assert.Regexp(t, regexp.MustCompile(`^app_42_[0-9a-f]{8}$`), id)
	assert.NotEqual(t, id, NewApplicationID(42))
}

func TestCleanSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "docker"}, CleanSkills([]string{" Go ", "", "docker", "go", "Docker"}))
}

func TestApply_RejectsClosedOpportunity(t *testing.T) {
	f := newOpportunityFixture()
	ctx := context.Background()
	f.people.On("GetByID", ctx, int64(1)).Return(consultantWithSkills(1, 3, "Go"), nil)
	f.opps.On("GetByID", ctx, int64(7)).Return(&models.Opportunity{ID: 7, Status: models.OpportunityFilled}, nil)

	_, err := f.svc.Apply(ctx, 7, 1, "")
	assert.ErrorIs(t, err, apperrors.ErrOpportunityClosed)
	f.apps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApply_ScoresAndNotifies(t *testing.T) {
	f := newOpportunityFixture()
	ctx := context.Background()
	f.people.On("GetByID", ctx, int64(1)).Return(consultantWithSkills(1, 3, "Go", "docker"), nil)
	f.opps.On("GetByID", ctx, int64(7)).Return(&models.Opportunity{
		ID: 7, Title: "Payments", Status: models.OpportunityOpen,
		RequiredSkills: []string{"go", "Kubernetes", "Docker"},
	}, nil)
	f.apps.On("Create", ctx, mock.MatchedBy(func(a *models.Application) bool {
		return a.OpportunityID == 7 && a.ConsultantID == 1 && a.Status == models.ApplicationPending
	})).Return(nil)

	app, err := f.svc.Apply(ctx, 7, 1, "  ")
	require.NoError(t, err)
	assert.Equal(t, 66.7, app.MatchScore)
	assert.Nil(t, app.CoverLetter)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, models.NotificationApplication, f.notifier.sent[0].Type)
	f.apps.AssertExpectations(t)
}

func TestApply_DuplicatePassesThrough(t *testing.T) {
	f := newOpportunityFixture()
	ctx := context.Background()
	f.people.On("GetByID", ctx, int64(1)).Return(consultantWithSkills(1, 3), nil)
	f.opps.On("GetByID", ctx, int64(7)).Return(&models.Opportunity{ID: 7, Status: models.OpportunityOpen}, nil)
	f.apps.On("Create", ctx, mock.Anything).Return(apperrors.ErrAlreadyApplied)

	_, err := f.svc.Apply(ctx, 7, 1, "")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
	assert.Empty(t, f.notifier.sent)
}

func TestAcceptApplication(t *testing.T) {
	f := newOpportunityFixture()
	ctx := context.Background()
	app := &models.Application{ID: "app_7_deadbeef", OpportunityID: 7, ConsultantID: 1,
		Status: models.ApplicationAccepted, ConsultantName: "Priya"}
	assignment := &models.Assignment{ID: 3, ConsultantID: 1, OpportunityID: 7, Status: "active"}
	f.apps.On("Accept", ctx, "app_7_deadbeef", int64(99)).Return(app, assignment, nil)
	f.opps.On("GetByID", ctx, int64(7)).Return(&models.Opportunity{ID: 7, Title: "Payments"}, nil)

	resp, err := f.svc.AcceptApplication(ctx, "app_7_deadbeef", 99)
	require.NoError(t, err)
	assert.Equal(t, assignment, resp.Assignment)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, models.NotificationApplicationReply, f.notifier.sent[0].Type)
	assert.Contains(t, f.notifier.sent[0].Message, "Payments")
}

func TestAcceptApplication_NotPending(t *testing.T) {
	f := newOpportunityFixture()
	ctx := context.Background()
	f.apps.On("Accept", ctx, "app_1_x", int64(99)).Return(nil, nil, apperrors.ErrApplicationNotPending)

	_, err := f.svc.AcceptApplication(ctx, "app_1_x", 99)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotPending)
	assert.Empty(t, f.notifier.sent)
}

func TestMatchConsultants_RanksByScoreThenExperience(t *testing.T) {
	f := newOpportunityFixture()
	ctx := context.Background()
	f.opps.On("GetByID", ctx, int64(7)).Return(&models.Opportunity{
		ID: 7, Title: "Platform", RequiredSkills: []string{"Go", "Kubernetes"},
	}, nil)
	f.people.On("ListAll", ctx).Return([]*models.Consultant{
		consultantWithSkills(1, 2, "Go"),
		consultantWithSkills(2, 8, "go"),
		consultantWithSkills(3, 1, "Go", "kubernetes"),
		consultantWithSkills(4, 10),
	}, nil)

	resp, err := f.svc.MatchConsultants(ctx, 7)
	require.NoError(t, err)
	require.Len(t, resp.Matches, 4)

	ids := []int64{}
	for _, m := range resp.Matches {
		ids = append(ids, m.ConsultantID)
	}
	assert.Equal(t, []int64{3, 2, 1, 4}, ids)
	assert.Equal(t, 100.0, resp.Matches[0].MatchScore)
	assert.Equal(t, []string{"Go"}, resp.Matches[1].MatchingSkills)
	assert.Equal(t, []string{"Kubernetes"}, resp.Matches[1].MissingSkills)
}
