package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crm-service/internal/domain"
)

var caseNow = time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)

func newCaseFixture(t *testing.T) (*CaseService, *fakeCaseRepo, *fakeSLARepo) {
	t.Helper()
	caseRepo := newFakeCaseRepo(caseNow)
	slaRepo := newFakeSLARepo()
	svc := NewCaseService(CaseDependencies{
		CaseRepo:     caseRepo,
		CustomerRepo: newFakeCustomerRepo("cust-1"),
		UserRepo:     newFakeUserRepo(),
		SLARepo:      slaRepo,
		Now:          func() time.Time { return caseNow },
	})
	return svc, caseRepo, slaRepo
}

func TestCaseCreateDerivesDeadlines(t *testing.T) {
	svc, _, slaRepo := newCaseFixture(t)
	require.NoError(t, slaRepo.Create(context.Background(), &domain.SLAThreshold{
		Priority:        domain.CasePriorityHigh,
		ResponseHours:   4,
		ResolutionHours: 24,
		Active:          true,
	}))

	created, err := svc.Create(context.Background(), "alice", CaseCreateInput{
		Title:      "printer on fire",
		Priority:   domain.CasePriorityHigh,
		CustomerID: "cust-1",
	})
	require.NoError(t, err)
	require.NotNil(t, created.SLADeadline)
	require.NotNil(t, created.SLAResponseDue)
	assert.Equal(t, caseNow.Add(24*time.Hour), *created.SLADeadline)
	assert.Equal(t, caseNow.Add(4*time.Hour), *created.SLAResponseDue)
	assert.Equal(t, domain.CaseStatusNew, created.Status)

	status := svc.SLAStatus(created)
	assert.True(t, status.Tracked)
	assert.False(t, status.ResolutionBreached)
}

func TestCaseCreateWithoutThresholdIsUntracked(t *testing.T) {
	svc, _, _ := newCaseFixture(t)

	created, err := svc.Create(context.Background(), "alice", CaseCreateInput{
		Title:      "question",
		CustomerID: "cust-1",
	})
	require.NoError(t, err)
	assert.Nil(t, created.SLADeadline)
	assert.Nil(t, created.SLAResponseDue)
	assert.Equal(t, domain.CasePriorityMedium, created.Priority)

	status := svc.SLAStatus(created)
	assert.False(t, status.Tracked)
	assert.False(t, status.ResolutionBreached)
	assert.False(t, status.ResponseBreached)
}

func TestCaseCreateValidation(t *testing.T) {
	svc, _, _ := newCaseFixture(t)

	_, err := svc.Create(context.Background(), "alice", CaseCreateInput{CustomerID: "cust-1"})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), "alice", CaseCreateInput{Title: "x", CustomerID: "nope"})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), "alice", CaseCreateInput{
		Title: "x", CustomerID: "cust-1", Priority: "URGENT",
	})
	assert.Error(t, err)
}

func TestCaseStatusWorkflow(t *testing.T) {
	svc, _, _ := newCaseFixture(t)
	created, err := svc.Create(context.Background(), "alice", CaseCreateInput{
		Title: "broken", CustomerID: "cust-1",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "alice", created.ID, domain.CaseStatusResolved)
	assert.Error(t, err, "NEW cannot jump to RESOLVED")

	inProgress, err := svc.UpdateStatus(context.Background(), "alice", created.ID, domain.CaseStatusInProgress)
	require.NoError(t, err)
	assert.Nil(t, inProgress.ResolvedAt)

	resolved, err := svc.UpdateStatus(context.Background(), "alice", created.ID, domain.CaseStatusResolved)
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, caseNow, *resolved.ResolvedAt)

	reopened, err := svc.UpdateStatus(context.Background(), "alice", created.ID, domain.CaseStatusInProgress)
	require.NoError(t, err)
	assert.Nil(t, reopened.ResolvedAt, "reopening clears resolution")
}

func TestCaseUpdatePriorityRecomputesDeadlines(t *testing.T) {
	svc, _, slaRepo := newCaseFixture(t)
	require.NoError(t, slaRepo.Create(context.Background(), &domain.SLAThreshold{
		Priority:        domain.CasePriorityCritical,
		ResponseHours:   1,
		ResolutionHours: 8,
		Active:          true,
	}))

	created, err := svc.Create(context.Background(), "alice", CaseCreateInput{
		Title: "slow", CustomerID: "cust-1", Priority: domain.CasePriorityLow,
	})
	require.NoError(t, err)
	assert.Nil(t, created.SLADeadline)

	escalated, err := svc.UpdatePriority(context.Background(), "alice", created.ID, domain.CasePriorityCritical)
	require.NoError(t, err)
	require.NotNil(t, escalated.SLADeadline)
	assert.Equal(t, created.CreatedAt.Add(8*time.Hour), *escalated.SLADeadline)
	require.NotNil(t, escalated.SLAResponseDue)
	assert.Equal(t, created.CreatedAt.Add(time.Hour), *escalated.SLAResponseDue)

	// Dropping back to an untracked priority clears the deadlines.
	downgraded, err := svc.UpdatePriority(context.Background(), "alice", created.ID, domain.CasePriorityLow)
	require.NoError(t, err)
	assert.Nil(t, downgraded.SLADeadline)
}

func TestMarkFirstResponseIdempotent(t *testing.T) {
	svc, _, _ := newCaseFixture(t)
	created, err := svc.Create(context.Background(), "alice", CaseCreateInput{
		Title: "hello", CustomerID: "cust-1",
	})
	require.NoError(t, err)

	first, err := svc.MarkFirstResponse(context.Background(), "alice", created.ID)
	require.NoError(t, err)
	require.NotNil(t, first.FirstResponseAt)
	stamp := *first.FirstResponseAt

	again, err := svc.MarkFirstResponse(context.Background(), "alice", created.ID)
	require.NoError(t, err)
	require.NotNil(t, again.FirstResponseAt)
	assert.Equal(t, stamp, *again.FirstResponseAt)
}
