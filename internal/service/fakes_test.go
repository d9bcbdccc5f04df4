package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeCustomerRepo struct {
	customers map[string]*domain.Customer
}

func newFakeCustomerRepo(ids ...string) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{customers: map[string]*domain.Customer{}}
	for _, id := range ids {
		repo.customers[id] = &domain.Customer{ID: id, Name: "customer " + id, Active: true}
	}
	return repo
}

func (f *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	customer.ID = fmt.Sprintf("cust-%d", len(f.customers)+1)
	f.customers[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, customer *domain.Customer) error {
	if _, ok := f.customers[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.customers[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return customer, nil
}

func (f *fakeCustomerRepo) List(_ context.Context, _, _ int) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, customer := range f.customers {
		out = append(out, *customer)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
	roles map[string][]domain.Role
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}, roles: map[string][]domain.Role{}}
}

func (f *fakeUserRepo) add(user *domain.User) {
	f.users[user.ID] = user
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	var out []domain.User
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id string, active bool) error {
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Active = active
	return nil
}

func (f *fakeUserRepo) RolesForUser(_ context.Context, userID string) ([]domain.Role, error) {
	return f.roles[userID], nil
}

type fakeCaseRepo struct {
	cases     map[string]*domain.Case
	createdAt time.Time
	seq       int
}

func newFakeCaseRepo(createdAt time.Time) *fakeCaseRepo {
	return &fakeCaseRepo{cases: map[string]*domain.Case{}, createdAt: createdAt}
}

func (f *fakeCaseRepo) Create(_ context.Context, c *domain.Case) error {
	f.seq++
	c.ID = fmt.Sprintf("case-%d", f.seq)
	c.CreatedAt = f.createdAt
	c.UpdatedAt = f.createdAt
	stored := *c
	f.cases[c.ID] = &stored
	return nil
}

func (f *fakeCaseRepo) Update(_ context.Context, c *domain.Case) error {
	if _, ok := f.cases[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *c
	f.cases[c.ID] = &stored
	return nil
}

func (f *fakeCaseRepo) GetByID(_ context.Context, id string) (*domain.Case, error) {
	c, ok := f.cases[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCaseRepo) ListWithFilter(_ context.Context, _ repository.CaseFilter) ([]domain.Case, error) {
	var out []domain.Case
	for _, c := range f.cases {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCaseRepo) ListOpenByPriority(_ context.Context, priority domain.CasePriority) ([]domain.Case, error) {
	var out []domain.Case
	for _, c := range f.cases {
		if c.Priority != priority || c.ResolvedAt != nil {
			continue
		}
		if c.Status == domain.CaseStatusClosed || c.Status == domain.CaseStatusCancelled {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

type fakeSLARepo struct {
	thresholds map[string]*domain.SLAThreshold
	seq        int
}

func newFakeSLARepo() *fakeSLARepo {
	return &fakeSLARepo{thresholds: map[string]*domain.SLAThreshold{}}
}

func (f *fakeSLARepo) Create(_ context.Context, threshold *domain.SLAThreshold) error {
	f.seq++
	threshold.ID = fmt.Sprintf("sla-%d", f.seq)
	stored := *threshold
	f.thresholds[threshold.ID] = &stored
	return nil
}

func (f *fakeSLARepo) Update(_ context.Context, threshold *domain.SLAThreshold) error {
	if _, ok := f.thresholds[threshold.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *threshold
	f.thresholds[threshold.ID] = &stored
	return nil
}

func (f *fakeSLARepo) GetByID(_ context.Context, id string) (*domain.SLAThreshold, error) {
	threshold, ok := f.thresholds[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *threshold
	return &copied, nil
}

func (f *fakeSLARepo) GetActiveByPriority(_ context.Context, priority domain.CasePriority) (*domain.SLAThreshold, error) {
	for _, threshold := range f.thresholds {
		if threshold.Priority == priority && threshold.Active {
			copied := *threshold
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeSLARepo) List(_ context.Context) ([]domain.SLAThreshold, error) {
	var out []domain.SLAThreshold
	for _, threshold := range f.thresholds {
		out = append(out, *threshold)
	}
	return out, nil
}

func (f *fakeSLARepo) DeactivateByPriority(_ context.Context, priority domain.CasePriority) error {
	for _, threshold := range f.thresholds {
		if threshold.Priority == priority && threshold.Active {
			threshold.Active = false
		}
	}
	return nil
}

type fakeRoleRepo struct {
	roles    map[string]*domain.Role
	coverage map[string][]string
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]*domain.Role{}, coverage: map[string][]string{}}
}

func (f *fakeRoleRepo) add(role *domain.Role, coverage []string) {
	f.roles[role.ID] = role
	f.coverage[role.ID] = coverage
}

func (f *fakeRoleRepo) Create(_ context.Context, role *domain.Role) error {
	role.ID = fmt.Sprintf("role-%d", len(f.roles)+1)
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRoleRepo) Update(_ context.Context, role *domain.Role) error {
	if _, ok := f.roles[role.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRoleRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.roles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.roles, id)
	delete(f.coverage, id)
	return nil
}

func (f *fakeRoleRepo) GetByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := f.roles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return role, nil
}

func (f *fakeRoleRepo) GetByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range f.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeRoleRepo) List(_ context.Context, _, _ int) ([]domain.Role, error) {
	var out []domain.Role
	for _, role := range f.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (f *fakeRoleRepo) AssignUser(_ context.Context, _, _ string) error   { return nil }
func (f *fakeRoleRepo) UnassignUser(_ context.Context, _, _ string) error { return nil }

func (f *fakeRoleRepo) UsersForRole(_ context.Context, _ string) ([]domain.User, error) {
	return nil, nil
}

func (f *fakeRoleRepo) UsernamesForRole(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (f *fakeRoleRepo) Coverage(_ context.Context, roleID string) (domain.CoverageScope, error) {
	return domain.SpecificCustomersScope(f.coverage[roleID]), nil
}

func (f *fakeRoleRepo) SetCoverage(_ context.Context, roleID string, customerIDs []string) error {
	f.coverage[roleID] = customerIDs
	return nil
}

type fakeDashboardRepo struct {
	stats      repository.CaseSLAStats
	lastScopes [][]string
	scopeIsNil []bool
	saved      []*domain.DashboardMetric
}

func (f *fakeDashboardRepo) recordScope(customerIDs []string) {
	f.lastScopes = append(f.lastScopes, customerIDs)
	f.scopeIsNil = append(f.scopeIsNil, customerIDs == nil)
}

func (f *fakeDashboardRepo) CountCasesByStatus(_ context.Context, customerIDs []string) (map[domain.CaseStatus]int64, error) {
	f.recordScope(customerIDs)
	return map[domain.CaseStatus]int64{}, nil
}

func (f *fakeDashboardRepo) CountCasesByPriority(_ context.Context, customerIDs []string) (map[domain.CasePriority]int64, error) {
	f.recordScope(customerIDs)
	return map[domain.CasePriority]int64{}, nil
}

func (f *fakeDashboardRepo) CountProposalsByStatus(_ context.Context, customerIDs []string) (map[domain.ProposalStatus]int64, error) {
	f.recordScope(customerIDs)
	return map[domain.ProposalStatus]int64{}, nil
}

func (f *fakeDashboardRepo) CountProposalsByStage(_ context.Context, customerIDs []string) (map[domain.ProposalStage]int64, error) {
	f.recordScope(customerIDs)
	return map[domain.ProposalStage]int64{}, nil
}

func (f *fakeDashboardRepo) CountProjectsByStatus(_ context.Context, customerIDs []string) (map[domain.ProjectStatus]int64, error) {
	f.recordScope(customerIDs)
	return map[domain.ProjectStatus]int64{}, nil
}

func (f *fakeDashboardRepo) CaseSLAStats(_ context.Context, customerIDs []string, _ time.Time) (repository.CaseSLAStats, error) {
	f.recordScope(customerIDs)
	return f.stats, nil
}

func (f *fakeDashboardRepo) SaveSnapshot(_ context.Context, metric *domain.DashboardMetric) error {
	f.saved = append(f.saved, metric)
	return nil
}
