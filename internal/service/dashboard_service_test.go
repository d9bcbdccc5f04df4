package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
)

func newDashboardFixture(stats repository.CaseSLAStats) (*DashboardService, *fakeDashboardRepo, *fakeRoleRepo) {
	dashRepo := &fakeDashboardRepo{stats: stats}
	roleRepo := newFakeRoleRepo()
	svc := NewDashboardService(DashboardDependencies{
		DashboardRepo: dashRepo,
		RoleRepo:      roleRepo,
		Logger:        zap.NewNop(),
		Now:           func() time.Time { return time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC) },
	})
	return svc, dashRepo, roleRepo
}

func TestComputeSnapshotRates(t *testing.T) {
	svc, _, _ := newDashboardFixture(repository.CaseSLAStats{
		Total:     10,
		Resolved:  4,
		WithSLA:   5,
		WithinSLA: 3,
	})

	metric, err := svc.ComputeSnapshot(context.Background(), nil, nil, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, metric.ResolutionRate, 1e-9)
	assert.InDelta(t, 0.6, metric.SLAComplianceRate, 1e-9)
}

func TestComputeSnapshotZeroDenominators(t *testing.T) {
	svc, _, _ := newDashboardFixture(repository.CaseSLAStats{})

	metric, err := svc.ComputeSnapshot(context.Background(), nil, nil, false)
	require.NoError(t, err)
	assert.Zero(t, metric.ResolutionRate)
	assert.Zero(t, metric.SLAComplianceRate)
}

func TestComputeSnapshotUnscopedUsesNilFilter(t *testing.T) {
	svc, dashRepo, _ := newDashboardFixture(repository.CaseSLAStats{})

	_, err := svc.ComputeSnapshot(context.Background(), nil, nil, false)
	require.NoError(t, err)
	for _, isNil := range dashRepo.scopeIsNil {
		assert.True(t, isNil, "unscoped queries must receive a nil filter")
	}
}

func TestComputeSnapshotAllCustomersRoleUsesNilFilter(t *testing.T) {
	svc, dashRepo, roleRepo := newDashboardFixture(repository.CaseSLAStats{})
	roleRepo.add(&domain.Role{ID: "role-1", Name: "support"}, nil)

	roleID := "role-1"
	_, err := svc.ComputeSnapshot(context.Background(), &roleID, nil, false)
	require.NoError(t, err)
	for _, isNil := range dashRepo.scopeIsNil {
		assert.True(t, isNil, "all-customers coverage must map to nil, not an empty slice")
	}
}

func TestComputeSnapshotScopedRole(t *testing.T) {
	svc, dashRepo, roleRepo := newDashboardFixture(repository.CaseSLAStats{})
	roleRepo.add(&domain.Role{ID: "role-1", Name: "regional"}, []string{"cust-1", "cust-2"})

	roleID := "role-1"
	_, err := svc.ComputeSnapshot(context.Background(), &roleID, nil, false)
	require.NoError(t, err)
	require.NotEmpty(t, dashRepo.lastScopes)
	for _, scope := range dashRepo.lastScopes {
		assert.Equal(t, []string{"cust-1", "cust-2"}, scope)
	}
}

func TestComputeSnapshotUnknownRole(t *testing.T) {
	svc, _, _ := newDashboardFixture(repository.CaseSLAStats{})
	roleID := "missing"
	_, err := svc.ComputeSnapshot(context.Background(), &roleID, nil, false)
	assert.Error(t, err)
}

func TestComputeSnapshotCustomerScope(t *testing.T) {
	svc, dashRepo, _ := newDashboardFixture(repository.CaseSLAStats{})

	customerID := "cust-9"
	_, err := svc.ComputeSnapshot(context.Background(), nil, &customerID, false)
	require.NoError(t, err)
	for _, scope := range dashRepo.lastScopes {
		assert.Equal(t, []string{"cust-9"}, scope)
	}
}

func TestComputeSnapshotPersists(t *testing.T) {
	svc, dashRepo, _ := newDashboardFixture(repository.CaseSLAStats{Total: 1})

	metric, err := svc.ComputeSnapshot(context.Background(), nil, nil, true)
	require.NoError(t, err)
	require.Len(t, dashRepo.saved, 1)
	assert.Equal(t, metric, dashRepo.saved[0])
}
