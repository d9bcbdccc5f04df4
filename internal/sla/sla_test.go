package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crm-service/internal/domain"
)

var base = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func activeThreshold(responseHours, resolutionHours int) *domain.SLAThreshold {
	return &domain.SLAThreshold{
		Priority:        domain.CasePriorityHigh,
		ResponseHours:   responseHours,
		ResolutionHours: resolutionHours,
		Active:          true,
	}
}

func TestDeadline(t *testing.T) {
	deadline := Deadline(base, activeThreshold(4, 24))
	require.NotNil(t, deadline)
	assert.Equal(t, base.Add(24*time.Hour), *deadline)

	due := ResponseDue(base, activeThreshold(4, 24))
	require.NotNil(t, due)
	assert.Equal(t, base.Add(4*time.Hour), *due)
}

func TestDeadlineUntracked(t *testing.T) {
	assert.Nil(t, Deadline(base, nil))
	assert.Nil(t, ResponseDue(base, nil))

	inactive := activeThreshold(4, 24)
	inactive.Active = false
	assert.Nil(t, Deadline(base, inactive))
}

func TestDeadlineZeroHours(t *testing.T) {
	// Zero hours is legal: due immediately at creation time.
	deadline := Deadline(base, activeThreshold(0, 0))
	require.NotNil(t, deadline)
	assert.Equal(t, base, *deadline)
}

func TestBreachedIsStrictlyAfter(t *testing.T) {
	deadline := base.Add(24 * time.Hour)

	assert.False(t, Breached(&deadline, deadline.Add(-time.Second)))
	assert.False(t, Breached(&deadline, deadline))
	assert.True(t, Breached(&deadline, deadline.Add(time.Second)))
}

func TestBreachedNilDeadline(t *testing.T) {
	// Untracked never breaches; it is not the same as met.
	assert.False(t, Breached(nil, base.Add(1000*time.Hour)))
}

func TestResolutionBreached(t *testing.T) {
	deadline := base.Add(24 * time.Hour)
	late := deadline.Add(time.Hour)
	early := deadline.Add(-time.Hour)

	assert.False(t, ResolutionBreached(&deadline, &early, late))
	assert.True(t, ResolutionBreached(&deadline, &late, late.Add(time.Hour)))

	// Open case: evaluated against now.
	assert.False(t, ResolutionBreached(&deadline, nil, early))
	assert.True(t, ResolutionBreached(&deadline, nil, late))
}

func TestResponseBreachedIndependent(t *testing.T) {
	due := base.Add(4 * time.Hour)
	responded := base.Add(2 * time.Hour)
	lateResponse := base.Add(6 * time.Hour)

	assert.False(t, ResponseBreached(&due, &responded, base.Add(100*time.Hour)))
	assert.True(t, ResponseBreached(&due, &lateResponse, lateResponse))
	assert.True(t, ResponseBreached(&due, nil, base.Add(5*time.Hour)))
	assert.False(t, ResponseBreached(nil, nil, base.Add(5*time.Hour)))
}
