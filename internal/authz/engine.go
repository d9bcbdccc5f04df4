// Package authz implements the authorization decision engine: page
// permission checks unioned across a user's roles, backed by a short
// lived Redis cache of resolved permission sets.
package authz

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/observability"
	"github.com/spec-kit/crm-service/internal/repository"
)

// Snapshot is the cached authorization view of one username. A snapshot
// with Found=false is a negative entry for an unknown username.
type Snapshot struct {
	Found    bool                   `json:"found"`
	Active   bool                   `json:"active"`
	UserID   string                 `json:"user_id,omitempty"`
	RoleSets []domain.PermissionSet `json:"role_sets,omitempty"`
}

// Engine decides page access for resolved usernames.
type Engine struct {
	users   repository.UserRepository
	cache   PermissionCache
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewEngine constructs the engine. cache may be nil, in which case every
// decision loads from the database; metrics may be nil.
func NewEngine(users repository.UserRepository, cache PermissionCache, metrics *observability.Metrics, logger *zap.Logger) *Engine {
	return &Engine{users: users, cache: cache, metrics: metrics, logger: logger}
}

// CanAccess reports whether the user may reach the page at one of the
// allowed levels. Any failure during resolution denies access: the
// engine fails closed, never open. Denials feed the per-page counter.
func (e *Engine) CanAccess(ctx context.Context, username, page string, allowed ...domain.PermissionLevel) bool {
	snapshot, err := e.Resolve(ctx, username)
	if err != nil {
		e.logger.Warn("authorization lookup failed; denying",
			zap.String("username", username),
			zap.String("page", page),
			zap.Error(err),
		)
		e.metrics.RecordDenial(page)
		return false
	}
	if !Decide(snapshot, page, allowed...) {
		e.metrics.RecordDenial(page)
		return false
	}
	return true
}

// Resolve returns the authorization snapshot for a username, consulting
// the cache first. Cache failures degrade to direct loads.
func (e *Engine) Resolve(ctx context.Context, username string) (*Snapshot, error) {
	if username == "" {
		return &Snapshot{}, nil
	}
	if e.cache != nil {
		if snapshot, ok := e.cache.Get(ctx, username); ok {
			return snapshot, nil
		}
	}

	snapshot, err := e.load(ctx, username)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Set(ctx, username, snapshot)
	}
	return snapshot, nil
}

// Invalidate drops cached snapshots after role or user mutations.
func (e *Engine) Invalidate(ctx context.Context, usernames ...string) {
	if e.cache != nil {
		e.cache.Invalidate(ctx, usernames...)
	}
}

func (e *Engine) load(ctx context.Context, username string) (*Snapshot, error) {
	user, err := e.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &Snapshot{}, nil
		}
		return nil, err
	}

	snapshot := &Snapshot{Found: true, Active: user.Active, UserID: user.ID}
	if !user.Active {
		return snapshot, nil
	}

	roles, err := e.users.RolesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		snapshot.RoleSets = append(snapshot.RoleSets, role.Permissions)
	}
	return snapshot, nil
}

// Decide is the pure allow/deny predicate over an already resolved
// snapshot. A missing or inactive user is denied regardless of page.
// Grants are unioned across roles: any single role granting the page at
// an allowed level suffices. The Admin page is a master key: a role
// granting Admin at any level grants every page. That rule lives here
// and only here.
func Decide(snapshot *Snapshot, page string, allowed ...domain.PermissionLevel) bool {
	if snapshot == nil || !snapshot.Found || !snapshot.Active {
		return false
	}
	for _, set := range snapshot.RoleSets {
		if set.Grants(page, allowed...) {
			return true
		}
		if _, ok := set.Level(domain.PageAdmin); ok {
			return true
		}
	}
	return false
}
