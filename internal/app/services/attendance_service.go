package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/repositories"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/attendancebot"
	"github.com/yigit/benchtrack/internal/pkg/helpers"
	"github.com/yigit/benchtrack/internal/pkg/metrics"
)

const (
	attendanceRateWindowDays = 30
	maxSummaryDays           = 365
)

// AttendanceService records attendance and answers questions about it
type AttendanceService interface {
	RecordAttendance(ctx context.Context, userID int64, req *dto.CreateAttendanceRequest) (*models.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, id int64, req *dto.UpdateAttendanceRequest, actorID int64, isAdmin bool) (*models.AttendanceRecord, error)
	ListAttendance(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	Summary(ctx context.Context, userID int64, days int) (*dto.AttendanceSummaryResponse, error)
	Chat(ctx context.Context, question string, asker *attendancebot.Person) (*dto.ChatResponse, error)
}

type attendanceServiceImpl struct {
	repo   repositories.IAttendanceRepository
	bot    *attendancebot.Bot
	now    func() time.Time
	logger zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(repo repositories.IAttendanceRepository, bot *attendancebot.Bot, logger zerolog.Logger) AttendanceService {
	return &attendanceServiceImpl{
		repo:   repo,
		bot:    bot,
		now:    time.Now,
		logger: logger,
	}
}

// RecordAttendance stores one day for userID and refreshes the consultant's
// 30 day attendance rate
func (s *attendanceServiceImpl) RecordAttendance(ctx context.Context, userID int64, req *dto.CreateAttendanceRequest) (*models.AttendanceRecord, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user ID must be positive", apperrors.ErrValidationFailed)
	}
	if _, err := helpers.ParseDate(req.Date); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	status := models.AttendanceStatus(req.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, req.Status)
	}

	rec := &models.AttendanceRecord{
		UserID:   userID,
		Date:     req.Date,
		Status:   status,
		CheckIn:  helpers.NilIfEmpty(req.CheckIn),
		CheckOut: helpers.NilIfEmpty(req.CheckOut),
		Notes:    helpers.NilIfEmpty(req.Notes),
		Location: helpers.NilIfEmpty(req.Location),
	}
	if err := computeHours(rec); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	s.refreshRate(ctx, userID)
	return rec, nil
}

// UpdateAttendance applies the provided fields. Non-admins may only edit
// their own records.
func (s *attendanceServiceImpl) UpdateAttendance(ctx context.Context, id int64, req *dto.UpdateAttendanceRequest, actorID int64, isAdmin bool) (*models.AttendanceRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && rec.UserID != actorID {
		return nil, apperrors.NewForbiddenError("you can only update your own attendance")
	}

	if req.Status != nil {
		status := models.AttendanceStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, *req.Status)
		}
		rec.Status = status
	}
	if req.CheckIn != nil {
		rec.CheckIn = helpers.NilIfEmpty(*req.CheckIn)
	}
	if req.CheckOut != nil {
		rec.CheckOut = helpers.NilIfEmpty(*req.CheckOut)
	}
	if req.Notes != nil {
		rec.Notes = helpers.NilIfEmpty(*req.Notes)
	}
	if req.Location != nil {
		rec.Location = helpers.NilIfEmpty(*req.Location)
	}
	if err := computeHours(rec); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	s.refreshRate(ctx, rec.UserID)
	return rec, nil
}

// computeHours fills HoursWorked when both clock times are present
func computeHours(rec *models.AttendanceRecord) error {
	if rec.CheckIn == nil || rec.CheckOut == nil {
		rec.HoursWorked = nil
		return nil
	}
	hours, err := helpers.HoursBetween(*rec.CheckIn, *rec.CheckOut)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	rec.HoursWorked = &hours
	return nil
}

func (s *attendanceServiceImpl) refreshRate(ctx context.Context, userID int64) {
	since := helpers.DaysAgo(s.now(), attendanceRateWindowDays)
	rate, err := s.repo.RefreshAttendanceRate(ctx, userID, since)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Could not refresh attendance rate")
		return
	}
	s.logger.Debug().Int64("userID", userID).Float64("rate", rate).Msg("Attendance rate refreshed")
}

// ListAttendance lists records matching filter
func (s *attendanceServiceImpl) ListAttendance(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, *filter.Status)
	}
	if filter.From != "" && filter.To != "" && filter.To < filter.From {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", apperrors.ErrValidationFailed)
	}
	return s.repo.List(ctx, filter)
}

// Summary totals the last days of a user's attendance. Half days count as
// present for the rate.
func (s *attendanceServiceImpl) Summary(ctx context.Context, userID int64, days int) (*dto.AttendanceSummaryResponse, error) {
	if days <= 0 {
		days = attendanceRateWindowDays
	}
	if days > maxSummaryDays {
		return nil, fmt.Errorf("%w: days must be at most %d", apperrors.ErrValidationFailed, maxSummaryDays)
	}

	now := s.now()
	from := helpers.DaysAgo(now, days)
	to := now.Format(helpers.DateLayout)
	records, err := s.repo.List(ctx, models.AttendanceFilter{UserID: &userID, From: from, To: to})
	if err != nil {
		return nil, err
	}

	sum := &dto.AttendanceSummaryResponse{UserID: userID, Days: days, From: from, To: to, TotalDays: len(records)}
	var hours float64
	var withHours int
	for _, r := range records {
		switch r.Status {
		case models.AttendancePresent:
			sum.PresentDays++
		case models.AttendanceHalfDay:
			sum.HalfDays++
		case models.AttendanceAbsent:
			sum.AbsentDays++
		case models.AttendanceLeave:
			sum.LeaveDays++
		case models.AttendanceHoliday:
			sum.HolidayDays++
		}
		if r.HoursWorked != nil {
			hours += *r.HoursWorked
			withHours++
		}
	}
	sum.AttendanceRate = attendancebot.Rate(sum.PresentDays+sum.HalfDays, sum.TotalDays)
	if withHours > 0 {
		sum.AverageHours = math.Round(hours/float64(withHours)*10) / 10
	}
	return sum, nil
}

// Chat answers a free text attendance question
func (s *attendanceServiceImpl) Chat(ctx context.Context, question string, asker *attendancebot.Person) (*dto.ChatResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question cannot be empty", apperrors.ErrValidationFailed)
	}

	answer, err := s.bot.Ask(ctx, question, asker)
	if err != nil {
		return nil, fmt.Errorf("failed to answer attendance question: %w", err)
	}
	metrics.RecordChatQuestion(answer.Type)
	return &dto.ChatResponse{Intent: answer.Type, Answer: answer.Message, Data: answer.Data}, nil
}
