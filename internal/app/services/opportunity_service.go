package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/repositories"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/email"
	"github.com/yigit/benchtrack/internal/pkg/helpers"
	"github.com/yigit/benchtrack/internal/pkg/metrics"
	"github.com/yigit/benchtrack/internal/pkg/training"
)

// OpportunityService manages opportunities, applications and matching
type OpportunityService interface {
	CreateOpportunity(ctx context.Context, req *dto.CreateOpportunityRequest, createdBy int64) (*models.Opportunity, error)
	GetOpportunity(ctx context.Context, id int64) (*models.Opportunity, error)
	ListOpportunities(ctx context.Context, status string) ([]*models.Opportunity, error)
	ListWithApplications(ctx context.Context) ([]*dto.OpportunityWithApplications, error)
	UpdateOpportunity(ctx context.Context, id int64, req *dto.UpdateOpportunityRequest) (*models.Opportunity, error)
	DeleteOpportunity(ctx context.Context, id int64) error
	Apply(ctx context.Context, opportunityID, consultantID int64, coverLetter string) (*models.Application, error)
	AcceptApplication(ctx context.Context, applicationID string, reviewerID int64) (*dto.DecisionResponse, error)
	DeclineApplication(ctx context.Context, applicationID string, reviewerID int64) (*dto.DecisionResponse, error)
	ListConsultantApplications(ctx context.Context, consultantID int64) ([]*models.Application, error)
	MatchConsultants(ctx context.Context, opportunityID int64) (*dto.MatchResponse, error)
}

type opportunityServiceImpl struct {
	opportunityRepo repositories.IOpportunityRepository
	applicationRepo repositories.IApplicationRepository
	consultantRepo  repositories.IConsultantRepository
	notifications   NotificationService
	mailer          email.EmailService
	logger          zerolog.Logger
}

// NewOpportunityService creates a new OpportunityService
func NewOpportunityService(
	opportunityRepo repositories.IOpportunityRepository,
	applicationRepo repositories.IApplicationRepository,
	consultantRepo repositories.IConsultantRepository,
	notifications NotificationService,
	mailer email.EmailService,
	logger zerolog.Logger,
) OpportunityService {
	return &opportunityServiceImpl{
		opportunityRepo: opportunityRepo,
		applicationRepo: applicationRepo,
		consultantRepo:  consultantRepo,
		notifications:   notifications,
		mailer:          mailer,
		logger:          logger,
	}
}

// NewApplicationID builds an application id of the form app_{opportunity}_{8 hex}
func NewApplicationID(opportunityID int64) string {
	return fmt.Sprintf("app_%d_%s", opportunityID, strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// CleanSkills trims names and drops blanks and case-insensitive duplicates
func CleanSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func skillNames(c *models.Consultant) []string {
	names := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		names = append(names, s.SkillName)
	}
	return names
}

// CreateOpportunity creates an open opportunity
func (s *opportunityServiceImpl) CreateOpportunity(ctx context.Context, req *dto.CreateOpportunityRequest, createdBy int64) (*models.Opportunity, error) {
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidationFailed)
	}

	o := &models.Opportunity{
		Title:              strings.TrimSpace(req.Title),
		Description:        helpers.NilIfEmpty(req.Description),
		Client:             helpers.NilIfEmpty(req.Client),
		RequiredSkills:     CleanSkills(req.RequiredSkills),
		ExperienceRequired: req.ExperienceRequired,
		ExperienceLevel:    helpers.NilIfEmpty(req.ExperienceLevel),
		Location:           helpers.NilIfEmpty(req.Location),
		Duration:           helpers.NilIfEmpty(req.Duration),
		Budget:             req.Budget,
		Positions:          req.Positions,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Status:             models.OpportunityOpen,
	}
	if o.Positions < 1 {
		o.Positions = 1
	}
	if req.Status != "" {
		o.Status = models.OpportunityStatus(req.Status)
	}
	if !o.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, req.Status)
	}
	if createdBy > 0 {
		o.CreatedBy = &createdBy
	}

	if err := s.opportunityRepo.Create(ctx, o); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("opportunityID", o.ID).Str("title", o.Title).Msg("Opportunity created")
	return o, nil
}

// GetOpportunity returns an opportunity
func (s *opportunityServiceImpl) GetOpportunity(ctx context.Context, id int64) (*models.Opportunity, error) {
	return s.opportunityRepo.GetByID(ctx, id)
}

// ListOpportunities lists opportunities, optionally of one status
func (s *opportunityServiceImpl) ListOpportunities(ctx context.Context, status string) ([]*models.Opportunity, error) {
	if status == "" {
		return s.opportunityRepo.List(ctx, nil)
	}
	st := models.OpportunityStatus(strings.ToLower(status))
	if !st.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, status)
	}
	return s.opportunityRepo.List(ctx, &st)
}

// ListWithApplications returns every opportunity with its applications
func (s *opportunityServiceImpl) ListWithApplications(ctx context.Context) ([]*dto.OpportunityWithApplications, error) {
	opps, err := s.opportunityRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(opps))
	for i, o := range opps {
		ids[i] = o.ID
	}
	byOpp, err := s.applicationRepo.ListByOpportunities(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.OpportunityWithApplications, 0, len(opps))
	for _, o := range opps {
		apps := byOpp[o.ID]
		if apps == nil {
			apps = []*models.Application{}
		}
		accepted := 0
		for _, a := range apps {
			if a.Status == models.ApplicationAccepted {
				accepted++
			}
		}
		out = append(out, &dto.OpportunityWithApplications{Opportunity: o, Applications: apps, AcceptedCount: accepted})
	}
	return out, nil
}

// UpdateOpportunity applies the provided fields
func (s *opportunityServiceImpl) UpdateOpportunity(ctx context.Context, id int64, req *dto.UpdateOpportunityRequest) (*models.Opportunity, error) {
	o, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		o.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		o.Description = helpers.NilIfEmpty(*req.Description)
	}
	if req.Client != nil {
		o.Client = helpers.NilIfEmpty(*req.Client)
	}
	if req.RequiredSkills != nil {
		o.RequiredSkills = CleanSkills(*req.RequiredSkills)
	}
	if req.ExperienceRequired != nil {
		o.ExperienceRequired = *req.ExperienceRequired
	}
	if req.ExperienceLevel != nil {
		o.ExperienceLevel = helpers.NilIfEmpty(*req.ExperienceLevel)
	}
	if req.Location != nil {
		o.Location = helpers.NilIfEmpty(*req.Location)
	}
	if req.Duration != nil {
		o.Duration = helpers.NilIfEmpty(*req.Duration)
	}
	if req.Budget != nil {
		o.Budget = req.Budget
	}
	if req.Positions != nil {
		o.Positions = *req.Positions
	}
	if req.StartDate != nil {
		o.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		o.EndDate = req.EndDate
	}
	if req.Status != nil {
		st := models.OpportunityStatus(*req.Status)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, *req.Status)
		}
		o.Status = st
	}
	if o.StartDate != nil && o.EndDate != nil && o.EndDate.Before(*o.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidationFailed)
	}

	if err := s.opportunityRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// DeleteOpportunity removes an opportunity
func (s *opportunityServiceImpl) DeleteOpportunity(ctx context.Context, id int64) error {
	if err := s.opportunityRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("opportunityID", id).Msg("Opportunity deleted")
	return nil
}

// Apply submits a pending application scored against the consultant's skills
func (s *opportunityServiceImpl) Apply(ctx context.Context, opportunityID, consultantID int64, coverLetter string) (*models.Application, error) {
	consultant, err := s.consultantRepo.GetByID(ctx, consultantID)
	if err != nil {
		return nil, err
	}
	opp, err := s.opportunityRepo.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if opp.Status != models.OpportunityOpen {
		return nil, apperrors.ErrOpportunityClosed
	}

	app := &models.Application{
		ID:              NewApplicationID(opp.ID),
		OpportunityID:   opp.ID,
		ConsultantID:    consultant.ID,
		Status:          models.ApplicationPending,
		CoverLetter:     helpers.NilIfEmpty(coverLetter),
		MatchScore:      training.MatchScore(skillNames(consultant), opp.RequiredSkills),
		ConsultantName:  consultant.Name,
		ConsultantEmail: consultant.Email,
	}
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	metrics.RecordApplication("submitted")

	s.notify(ctx, models.NotificationApplication, "New application",
		fmt.Sprintf("%s applied to %s (match %.1f%%)", consultant.Name, opp.Title, app.MatchScore), &consultant.ID)
	return app, nil
}

// AcceptApplication accepts a pending application
func (s *opportunityServiceImpl) AcceptApplication(ctx context.Context, applicationID string, reviewerID int64) (*dto.DecisionResponse, error) {
	app, assignment, err := s.applicationRepo.Accept(ctx, applicationID, reviewerID)
	if err != nil {
		return nil, err
	}
	metrics.RecordApplication("accepted")
	s.announceDecision(ctx, app, true)

	return &dto.DecisionResponse{
		Application: app,
		Assignment:  assignment,
		Message:     "Application accepted successfully",
	}, nil
}

// DeclineApplication declines a pending application
func (s *opportunityServiceImpl) DeclineApplication(ctx context.Context, applicationID string, reviewerID int64) (*dto.DecisionResponse, error) {
	app, err := s.applicationRepo.Decline(ctx, applicationID, reviewerID)
	if err != nil {
		return nil, err
	}
	metrics.RecordApplication("declined")
	s.announceDecision(ctx, app, false)

	return &dto.DecisionResponse{
		Application: app,
		Message:     "Application declined",
	}, nil
}

func (s *opportunityServiceImpl) announceDecision(ctx context.Context, app *models.Application, accepted bool) {
	title := fmt.Sprintf("opportunity #%d", app.OpportunityID)
	if opp, err := s.opportunityRepo.GetByID(ctx, app.OpportunityID); err == nil {
		title = opp.Title
	}

	verb := "declined"
	if accepted {
		verb = "accepted"
	}
	s.notify(ctx, models.NotificationApplicationReply, "Application "+verb,
		fmt.Sprintf("%s was %s for %s", app.ConsultantName, verb, title), &app.ConsultantID)

	go func(to, name string) {
		if err := s.mailer.SendApplicationDecision(to, name, title, accepted); err != nil {
			s.logger.Warn().Err(err).Str("applicationID", app.ID).Msg("Failed to send decision email")
		}
	}(app.ConsultantEmail, app.ConsultantName)
}

func (s *opportunityServiceImpl) notify(ctx context.Context, kind, title, message string, consultantID *int64) {
	if _, err := s.notifications.Notify(ctx, kind, title, message, consultantID); err != nil {
		s.logger.Warn().Err(err).Str("type", kind).Msg("Could not record notification")
	}
}

// ListConsultantApplications lists a consultant's applications
func (s *opportunityServiceImpl) ListConsultantApplications(ctx context.Context, consultantID int64) ([]*models.Application, error) {
	if _, err := s.consultantRepo.GetByID(ctx, consultantID); err != nil {
		return nil, err
	}
	return s.applicationRepo.ListByConsultant(ctx, consultantID)
}

// MatchConsultants ranks every consultant by match score against the
// opportunity's required skills. Ties keep the more experienced first.
func (s *opportunityServiceImpl) MatchConsultants(ctx context.Context, opportunityID int64) (*dto.MatchResponse, error) {
	opp, err := s.opportunityRepo.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	consultants, err := s.consultantRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]dto.ConsultantMatch, 0, len(consultants))
	for _, c := range consultants {
		held := skillNames(c)
		missing := training.MissingAcross(held, opp.RequiredSkills)
		matches = append(matches, dto.ConsultantMatch{
			ConsultantID:    c.ID,
			Name:            c.Name,
			Email:           c.Email,
			Status:          string(c.Status),
			ExperienceYears: c.ExperienceYears,
			MatchScore:      training.MatchScore(held, opp.RequiredSkills),
			MatchingSkills:  matchingSkills(opp.RequiredSkills, missing),
			MissingSkills:   missing,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].MatchScore != matches[j].MatchScore {
			return matches[i].MatchScore > matches[j].MatchScore
		}
		return matches[i].ExperienceYears > matches[j].ExperienceYears
	})

	return &dto.MatchResponse{
		OpportunityID:  opp.ID,
		Title:          opp.Title,
		RequiredSkills: opp.RequiredSkills,
		Matches:        matches,
	}, nil
}

func matchingSkills(required, missing []string) []string {
	gone := make(map[string]bool, len(missing))
	for _, m := range missing {
		gone[strings.ToLower(m)] = true
	}
	out := []string{}
	for _, r := range required {
		if !gone[strings.ToLower(strings.TrimSpace(r))] {
			out = append(out, r)
		}
	}
	return out
}
