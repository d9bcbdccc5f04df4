package authz

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/observability"
)

type fakeUserRepo struct {
	user  *domain.User
	roles []domain.Role
}

func (f *fakeUserRepo) Create(_ context.Context, _ *domain.User) error { return nil }
func (f *fakeUserRepo) Update(_ context.Context, _ *domain.User) error { return nil }

func (f *fakeUserRepo) GetByID(_ context.Context, _ string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if f.user != nil && f.user.Username == username {
		return f.user, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, _ string, _ bool) error { return nil }

func (f *fakeUserRepo) RolesForUser(_ context.Context, _ string) ([]domain.Role, error) {
	return f.roles, nil
}

func TestCanAccessRecordsDenials(t *testing.T) {
	users := &fakeUserRepo{
		user: &domain.User{ID: "u1", Username: "alice", Active: true},
		roles: []domain.Role{
			{ID: "r1", Name: "support", Permissions: domain.ParsePermissionString("Cases:ReadOnly")},
		},
	}
	metrics := observability.NewMetrics()
	engine := NewEngine(users, nil, metrics, zap.NewNop())

	assert.True(t, engine.CanAccess(context.Background(), "alice", domain.PageCases, domain.LevelReadOnly))
	assert.Zero(t, metrics.DenialCount(domain.PageCases))

	assert.False(t, engine.CanAccess(context.Background(), "alice", domain.PageCases, domain.LevelFullControl))
	assert.Equal(t, int64(1), metrics.DenialCount(domain.PageCases))

	assert.False(t, engine.CanAccess(context.Background(), "nobody", domain.PageUsers, domain.LevelReadOnly))
	assert.Equal(t, int64(1), metrics.DenialCount(domain.PageUsers))
}

func TestCanAccessNilMetrics(t *testing.T) {
	engine := NewEngine(&fakeUserRepo{}, nil, nil, zap.NewNop())
	assert.False(t, engine.CanAccess(context.Background(), "ghost", domain.PageCases, domain.LevelReadOnly))
}
