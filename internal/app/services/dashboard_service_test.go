package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yigit/benchtrack/internal/app/repositories"
)

type fixedState string

func (s fixedState) State() string { return string(s) }

func TestGetMetrics(t *testing.T) {
	repo := &mockDashboardRepo{}
	repo.On("Counts", mock.Anything).Return(&repositories.DashboardCounts{
		TotalConsultants: 25, BenchConsultants: 9, ActiveAssignments: 14,
		ResumeAnalyses: 31, OpenOpportunities: 6, PendingApplications: 4,
	}, nil)
	svc := NewDashboardService(repo, &mockConsultantRepo{}, nil, zerolog.Nop())

	m, err := svc.GetMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(14), m.OngoingProjects)
	assert.Equal(t, int64(14), m.ActiveAssignments)
	assert.Equal(t, int64(31), m.ReportsGenerated)
	assert.Equal(t, int64(9), m.BenchConsultants)
}

func TestHealth(t *testing.T) {
	repo := &mockDashboardRepo{}
	people := &mockConsultantRepo{}
	repo.On("Ping", mock.Anything).Return(nil)
	people.On("Count", mock.Anything).Return(int64(12), nil)
	svc := NewDashboardService(repo, people, fixedState("closed"), zerolog.Nop())

	resp, ok := svc.Health(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, int64(12), resp.ConsultantCount)
	assert.Equal(t, "closed", resp.ResumeExtractor)
}

func TestHealth_DatabaseDown(t *testing.T) {
	repo := &mockDashboardRepo{}
	people := &mockConsultantRepo{}
	repo.On("Ping", mock.Anything).Return(assert.AnError)
	svc := NewDashboardService(repo, people, nil, zerolog.Nop())

	resp, ok := svc.Health(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "disconnected", resp.Database)
	people.AssertNotCalled(t, "Count", mock.Anything)
}
