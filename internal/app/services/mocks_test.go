package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/repositories"
	"github.com/yigit/benchtrack/internal/pkg/auth"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	return m.Called(ctx, token, userID, expiresAt).Error(0)
}

func (m *mockTokenRepo) GetToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	t, _ := args.Get(0).(*models.RefreshToken)
	return t, args.Error(1)
}

func (m *mockTokenRepo) RevokeToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenRepo) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockTokenRepo) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockConsultantRepo struct{ mock.Mock }

func (m *mockConsultantRepo) Create(ctx context.Context, c *models.Consultant) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockConsultantRepo) CreateWithUser(ctx context.Context, user *models.User, c *models.Consultant) error {
	return m.Called(ctx, user, c).Error(0)
}

func (m *mockConsultantRepo) GetByID(ctx context.Context, id int64) (*models.Consultant, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Consultant)
	return c, args.Error(1)
}

func (m *mockConsultantRepo) GetByEmail(ctx context.Context, email string) (*models.Consultant, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*models.Consultant)
	return c, args.Error(1)
}

func (m *mockConsultantRepo) GetByUserID(ctx context.Context, userID int64) (*models.Consultant, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(*models.Consultant)
	return c, args.Error(1)
}

func (m *mockConsultantRepo) List(ctx context.Context, filter models.ConsultantFilter) ([]*models.Consultant, int64, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*models.Consultant)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockConsultantRepo) ListAll(ctx context.Context) ([]*models.Consultant, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*models.Consultant)
	return list, args.Error(1)
}

func (m *mockConsultantRepo) Update(ctx context.Context, c *models.Consultant, manualSkills []models.ConsultantSkill) error {
	return m.Called(ctx, c, manualSkills).Error(0)
}

func (m *mockConsultantRepo) UpdateTrainingStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockConsultantRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockConsultantRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockOpportunityRepo struct{ mock.Mock }

func (m *mockOpportunityRepo) Create(ctx context.Context, o *models.Opportunity) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOpportunityRepo) GetByID(ctx context.Context, id int64) (*models.Opportunity, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Opportunity)
	return o, args.Error(1)
}

func (m *mockOpportunityRepo) List(ctx context.Context, status *models.OpportunityStatus) ([]*models.Opportunity, error) {
	args := m.Called(ctx, status)
	list, _ := args.Get(0).([]*models.Opportunity)
	return list, args.Error(1)
}

func (m *mockOpportunityRepo) Update(ctx context.Context, o *models.Opportunity) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOpportunityRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockApplicationRepo struct{ mock.Mock }

func (m *mockApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.Application)
	return a, args.Error(1)
}

func (m *mockApplicationRepo) ListByOpportunities(ctx context.Context, ids []int64) (map[int64][]*models.Application, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).(map[int64][]*models.Application)
	return out, args.Error(1)
}

func (m *mockApplicationRepo) ListByConsultant(ctx context.Context, consultantID int64) ([]*models.Application, error) {
	args := m.Called(ctx, consultantID)
	list, _ := args.Get(0).([]*models.Application)
	return list, args.Error(1)
}

func (m *mockApplicationRepo) Accept(ctx context.Context, id string, reviewerID int64) (*models.Application, *models.Assignment, error) {
	args := m.Called(ctx, id, reviewerID)
	a, _ := args.Get(0).(*models.Application)
	as, _ := args.Get(1).(*models.Assignment)
	return a, as, args.Error(2)
}

func (m *mockApplicationRepo) Decline(ctx context.Context, id string, reviewerID int64) (*models.Application, error) {
	args := m.Called(ctx, id, reviewerID)
	a, _ := args.Get(0).(*models.Application)
	return a, args.Error(1)
}

func (m *mockApplicationRepo) ListActiveAssignments(ctx context.Context, consultantID int64) ([]*models.Assignment, error) {
	args := m.Called(ctx, consultantID)
	list, _ := args.Get(0).([]*models.Assignment)
	return list, args.Error(1)
}

type mockAttendanceRepo struct{ mock.Mock }

func (m *mockAttendanceRepo) Create(ctx context.Context, rec *models.AttendanceRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockAttendanceRepo) GetByID(ctx context.Context, id int64) (*models.AttendanceRecord, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.AttendanceRecord)
	return r, args.Error(1)
}

func (m *mockAttendanceRepo) Update(ctx context.Context, rec *models.AttendanceRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockAttendanceRepo) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]models.AttendanceRecord)
	return list, args.Error(1)
}

func (m *mockAttendanceRepo) RefreshAttendanceRate(ctx context.Context, userID int64, since string) (float64, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(float64), args.Error(1)
}

type mockTrainingRepo struct{ mock.Mock }

func (m *mockTrainingRepo) CreateEnrollment(ctx context.Context, e *models.TrainingEnrollment) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockTrainingRepo) GetEnrollment(ctx context.Context, id int64) (*models.TrainingEnrollment, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*models.TrainingEnrollment)
	return e, args.Error(1)
}

func (m *mockTrainingRepo) ListEnrollments(ctx context.Context, consultantID int64) ([]*models.TrainingEnrollment, error) {
	args := m.Called(ctx, consultantID)
	list, _ := args.Get(0).([]*models.TrainingEnrollment)
	return list, args.Error(1)
}

func (m *mockTrainingRepo) UpdateProgress(ctx context.Context, e *models.TrainingEnrollment) error {
	return m.Called(ctx, e).Error(0)
}

type mockResumeRepo struct{ mock.Mock }

func (m *mockResumeRepo) SaveAnalysis(ctx context.Context, a *models.ResumeAnalysis, skills []models.ConsultantSkill) error {
	return m.Called(ctx, a, skills).Error(0)
}

func (m *mockResumeRepo) GetLatest(ctx context.Context, consultantID int64) (*models.ResumeAnalysis, error) {
	args := m.Called(ctx, consultantID)
	a, _ := args.Get(0).(*models.ResumeAnalysis)
	return a, args.Error(1)
}

type mockDashboardRepo struct{ mock.Mock }

func (m *mockDashboardRepo) Counts(ctx context.Context) (*repositories.DashboardCounts, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(*repositories.DashboardCounts)
	return c, args.Error(1)
}

func (m *mockDashboardRepo) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// recordingNotifier keeps every notification in memory
type recordingNotifier struct {
	sent []models.Notification
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, kind, title, message string, consultantID *int64) (*models.Notification, error) {
	if r.err != nil {
		return nil, r.err
	}
	n := models.Notification{ID: int64(len(r.sent) + 1), Type: kind, Title: title, Message: message, ConsultantID: consultantID}
	r.sent = append(r.sent, n)
	return &n, nil
}

func (r *recordingNotifier) ListNotifications(context.Context, bool) (*dto.NotificationListResponse, error) {
	return &dto.NotificationListResponse{}, nil
}

func (r *recordingNotifier) MarkRead(context.Context, int64) error { return nil }

// nopMailer accepts every email. Sends happen on goroutines, so tests never
// assert on them.
type nopMailer struct{}

func (nopMailer) SendWelcomeEmail(string, string) error { return nil }
func (nopMailer) SendApplicationDecision(string, string, string, bool) error { return nil }

type stubIssuer struct{}

func (stubIssuer) GenerateTokenPair(user *models.User, _ *int64) (*auth.TokenPair, error) {
	return &auth.TokenPair{
		AccessToken:      "access-" + user.Email,
		RefreshToken:     "refresh-" + user.Email,
		ExpiresIn:        900,
		RefreshExpiresIn: 86400,
		RefreshExpiresAt: time.Now().Add(24 * time.Hour),
	}, nil
}
