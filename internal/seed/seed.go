// Package seed inserts the default admin and a small sample bench.
package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/yigit/benchtrack/internal/app/models"
	appRepos "github.com/yigit/benchtrack/internal/app/repositories"
	appServices "github.com/yigit/benchtrack/internal/app/services"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
)

const (
	DefaultAdminEmail    = "admin@benchtrack.local"
	DefaultAdminPassword = "Admin123!"
	samplePassword       = "Consultant123!"
)

type sampleConsultant struct {
	Name         string
	Email        string
	PrimarySkill string
	Experience   int
	Technical    []string
	Soft         []string
}

var sampleConsultants = []sampleConsultant{
	{"Priya Raman", "priya@benchtrack.local", "Go", 5,
		[]string{"Go", "PostgreSQL", "Docker", "Kubernetes"}, []string{"Communication", "Mentoring"}},
	{"Daniel Okafor", "daniel@benchtrack.local", "React", 3,
		[]string{"JavaScript", "TypeScript", "React", "CSS"}, []string{"Teamwork"}},
	{"Mei Tanaka", "mei@benchtrack.local", "Python", 7,
		[]string{"Python", "Machine Learning", "TensorFlow", "SQL"}, []string{"Leadership", "Presentation"}},
}

type sampleOpportunity struct {
	Title      string
	Client     string
	Skills     []string
	Experience int
	Level      string
}

var sampleOpportunities = []sampleOpportunity{
	{"Payments platform migration", "Acme Bank", []string{"Go", "Kubernetes", "AWS"}, 3, "intermediate"},
	{"Customer portal redesign", "Northwind Retail", []string{"React", "TypeScript", "GraphQL"}, 2, "junior"},
	{"Demand forecasting pipeline", "Contoso Logistics", []string{"Python", "Machine Learning", "Azure"}, 5, "senior"},
}

// Seeder writes the default data through the repositories
type Seeder struct {
	users         appRepos.IUserRepository
	consultants   appRepos.IConsultantRepository
	opportunities appRepos.IOpportunityRepository
	logger        zerolog.Logger
}

// NewSeeder creates a Seeder over pool
func NewSeeder(pool *pgxpool.Pool, logger zerolog.Logger) *Seeder {
	return &Seeder{
		users:         appRepos.NewUserRepository(pool),
		consultants:   appRepos.NewConsultantRepository(pool),
		opportunities: appRepos.NewOpportunityRepository(pool),
		logger:        logger,
	}
}

// CreateDefaultData creates the admin account, sample consultants and sample
// opportunities unless they already exist. Errors are collected so one failed
// row does not stop the rest.
func (s *Seeder) CreateDefaultData(ctx context.Context) error {
	s.logger.Info().Msg("Checking/Creating default data...")

	var finalErr error
	adminID, err := s.ensureAdmin(ctx)
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	for _, sc := range sampleConsultants {
		if err := s.ensureConsultant(ctx, sc); err != nil {
			s.logger.Error().Err(err).Str("email", sc.Email).Msg("Error creating sample consultant")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if err := s.ensureOpportunities(ctx, adminID); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	s.logger.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func (s *Seeder) ensureAdmin(ctx context.Context) (*int64, error) {
	existing, err := s.users.GetByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		s.logger.Info().Msg("Admin user already exists, skipping creation")
		return &existing.ID, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		s.logger.Error().Err(err).Msg("Error checking if admin user exists")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &appModels.User{
		Name:     "System Administrator",
		Email:    DefaultAdminEmail,
		Password: string(hash),
		Role:     appModels.RoleAdmin,
		IsActive: true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		s.logger.Error().Err(err).Msg("Error creating admin user")
		return nil, err
	}
	s.logger.Info().Int64("adminID", admin.ID).Msg("Default admin user created")
	return &admin.ID, nil
}

func (s *Seeder) ensureConsultant(ctx context.Context, sc sampleConsultant) error {
	exists, err := s.users.EmailExists(ctx, sc.Email)
	if err != nil || exists {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(samplePassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &appModels.User{
		Name:     sc.Name,
		Email:    sc.Email,
		Password: string(hash),
		Role:     appModels.RoleConsultant,
		IsActive: true,
	}

	c := appServices.NewBenchConsultant(sc.Name, sc.Email)
	primary := sc.PrimarySkill
	c.PrimarySkill = &primary
	c.ExperienceYears = sc.Experience
	c.Skills = appServices.BuildManualSkills(sc.Technical, sc.Soft)

	if err := s.consultants.CreateWithUser(ctx, user, c); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}
	s.logger.Info().Int64("consultantID", c.ID).Str("email", sc.Email).Msg("Sample consultant created")
	return nil
}

func (s *Seeder) ensureOpportunities(ctx context.Context, createdBy *int64) error {
	existing, err := s.opportunities.List(ctx, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing opportunities")
		return err
	}
	titles := make(map[string]bool, len(existing))
	for _, o := range existing {
		titles[strings.ToLower(o.Title)] = true
	}

	var finalErr error
	for _, so := range sampleOpportunities {
		if titles[strings.ToLower(so.Title)] {
			continue
		}
		client, level := so.Client, so.Level
		o := &appModels.Opportunity{
			Title:              so.Title,
			Client:             &client,
			RequiredSkills:     so.Skills,
			ExperienceRequired: so.Experience,
			ExperienceLevel:    &level,
			Positions:          1,
			Status:             appModels.OpportunityOpen,
			CreatedBy:          createdBy,
		}
		if err := s.opportunities.Create(ctx, o); err != nil {
			s.logger.Error().Err(err).Str("title", so.Title).Msg("Error creating sample opportunity")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		s.logger.Info().Int64("opportunityID", o.ID).Str("title", so.Title).Msg("Sample opportunity created")
	}
	return finalErr
}
