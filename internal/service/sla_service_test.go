package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crm-service/internal/domain"
)

func newSLAFixture() (*SLAService, *fakeSLARepo, *fakeCaseRepo) {
	slaRepo := newFakeSLARepo()
	caseRepo := newFakeCaseRepo(caseNow)
	svc := NewSLAService(SLADependencies{
		SLARepo:  slaRepo,
		CaseRepo: caseRepo,
	})
	return svc, slaRepo, caseRepo
}

func TestSLAInputValidation(t *testing.T) {
	svc, _, _ := newSLAFixture()

	_, err := svc.Create(context.Background(), "admin", SLAInput{
		Priority: "URGENT", ResponseHours: 1, ResolutionHours: 2,
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), "admin", SLAInput{
		Priority: domain.CasePriorityHigh, ResponseHours: -1, ResolutionHours: 2,
	})
	assert.Error(t, err, "negative hours rejected at the boundary")

	threshold, err := svc.Create(context.Background(), "admin", SLAInput{
		Priority: domain.CasePriorityHigh, ResponseHours: 0, ResolutionHours: 0, Active: true,
	})
	require.NoError(t, err, "zero hours is legal")
	assert.True(t, threshold.Active)
}

func TestSLACreateKeepsOneActivePerPriority(t *testing.T) {
	svc, slaRepo, _ := newSLAFixture()

	first, err := svc.Create(context.Background(), "admin", SLAInput{
		Priority: domain.CasePriorityHigh, ResponseHours: 4, ResolutionHours: 24, Active: true,
	})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), "admin", SLAInput{
		Priority: domain.CasePriorityHigh, ResponseHours: 2, ResolutionHours: 12, Active: true,
	})
	require.NoError(t, err)

	stored, err := slaRepo.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active, "previous active row is deactivated")

	active, err := slaRepo.GetActiveByPriority(context.Background(), domain.CasePriorityHigh)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
}

func TestSLAActivationRecomputesOpenCases(t *testing.T) {
	svc, _, caseRepo := newSLAFixture()

	open := &domain.Case{
		Title:      "pending",
		Status:     domain.CaseStatusNew,
		Priority:   domain.CasePriorityHigh,
		CustomerID: "cust-1",
	}
	require.NoError(t, caseRepo.Create(context.Background(), open))

	_, err := svc.Create(context.Background(), "admin", SLAInput{
		Priority: domain.CasePriorityHigh, ResponseHours: 4, ResolutionHours: 24, Active: true,
	})
	require.NoError(t, err)

	refreshed, err := caseRepo.GetByID(context.Background(), open.ID)
	require.NoError(t, err)
	require.NotNil(t, refreshed.SLADeadline)
	assert.Equal(t, refreshed.CreatedAt.Add(24*time.Hour), *refreshed.SLADeadline)
}
