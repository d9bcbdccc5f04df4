package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidProposalStatusTransition(t *testing.T) {
	assert.True(t, ValidProposalStatusTransition(ProposalStatusDraft, ProposalStatusSubmitted))
	assert.True(t, ValidProposalStatusTransition(ProposalStatusSubmitted, ProposalStatusApproved))
	assert.True(t, ValidProposalStatusTransition(ProposalStatusSubmitted, ProposalStatusRejected))
	assert.True(t, ValidProposalStatusTransition(ProposalStatusRejected, ProposalStatusDraft))

	assert.False(t, ValidProposalStatusTransition(ProposalStatusDraft, ProposalStatusApproved))
	assert.False(t, ValidProposalStatusTransition(ProposalStatusApproved, ProposalStatusDraft))
}

func TestValidProposalStageTransition(t *testing.T) {
	assert.True(t, ValidProposalStageTransition(ProposalStageContact, ProposalStageNegotiation))
	assert.True(t, ValidProposalStageTransition(ProposalStageNegotiation, ProposalStageWon))
	assert.True(t, ValidProposalStageTransition(ProposalStageLost, ProposalStageContact))

	assert.False(t, ValidProposalStageTransition(ProposalStageContact, ProposalStageWon))
	assert.False(t, ValidProposalStageTransition(ProposalStageWon, ProposalStageContact))
}

func TestProjectTransitions(t *testing.T) {
	assert.True(t, ValidProjectTransition(ProjectStatusPlanned, ProjectStatusActive))
	assert.True(t, ValidProjectTransition(ProjectStatusActive, ProjectStatusOnHold))
	assert.True(t, ValidProjectTransition(ProjectStatusOnHold, ProjectStatusActive))
	assert.True(t, ValidProjectTransition(ProjectStatusActive, ProjectStatusCompleted))

	assert.False(t, ValidProjectTransition(ProjectStatusPlanned, ProjectStatusCompleted))
	assert.False(t, ValidProjectTransition(ProjectStatusCompleted, ProjectStatusActive))
	assert.False(t, ValidProjectTransition(ProjectStatusCancelled, ProjectStatusPlanned))
}
