package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCaseTransition(t *testing.T) {
	allowed := []struct {
		from, to CaseStatus
	}{
		{CaseStatusNew, CaseStatusInProgress},
		{CaseStatusNew, CaseStatusCancelled},
		{CaseStatusInProgress, CaseStatusWaitingCustomer},
		{CaseStatusInProgress, CaseStatusResolved},
		{CaseStatusWaitingCustomer, CaseStatusInProgress},
		{CaseStatusResolved, CaseStatusClosed},
		{CaseStatusResolved, CaseStatusInProgress},
	}
	for _, tc := range allowed {
		assert.True(t, ValidCaseTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct {
		from, to CaseStatus
	}{
		{CaseStatusNew, CaseStatusResolved},
		{CaseStatusNew, CaseStatusClosed},
		{CaseStatusClosed, CaseStatusInProgress},
		{CaseStatusCancelled, CaseStatusNew},
		{CaseStatusResolved, CaseStatusResolved},
	}
	for _, tc := range denied {
		assert.False(t, ValidCaseTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidCasePriority(t *testing.T) {
	for _, priority := range []CasePriority{CasePriorityLow, CasePriorityMedium, CasePriorityHigh, CasePriorityCritical} {
		assert.True(t, ValidCasePriority(priority))
	}
	assert.False(t, ValidCasePriority("URGENT"))
	assert.False(t, ValidCasePriority(""))
}
