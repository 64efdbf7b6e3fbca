package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func newStatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	ConsultantRepository   *ConsultantRepository
	OpportunityRepository  *OpportunityRepository
	ApplicationRepository  *ApplicationRepository
	AttendanceRepository   *AttendanceRepository
	TrainingRepository     *TrainingRepository
	ResumeRepository       *ResumeRepository
	NotificationRepository *NotificationRepository
	DashboardRepository    *DashboardRepository
	AttendanceBotStore     *AttendanceBotStore
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		ConsultantRepository:   NewConsultantRepository(db),
		OpportunityRepository:  NewOpportunityRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
		AttendanceRepository:   NewAttendanceRepository(db),
		TrainingRepository:     NewTrainingRepository(db),
		ResumeRepository:       NewResumeRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		DashboardRepository:    NewDashboardRepository(db),
		AttendanceBotStore:     NewAttendanceBotStore(db),
	}
}
