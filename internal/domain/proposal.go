package domain

import "time"

// ProposalStatus tracks the approval workflow of a pre-sales proposal.
type ProposalStatus string

const (
	ProposalStatusDraft     ProposalStatus = "DRAFT"
	ProposalStatusSubmitted ProposalStatus = "SUBMITTED"
	ProposalStatusApproved  ProposalStatus = "APPROVED"
	ProposalStatusRejected  ProposalStatus = "REJECTED"
)

// ProposalStage tracks sales-funnel position. Stage and status are
// orthogonal: both drive dashboard bucketing independently.
type ProposalStage string

const (
	ProposalStageContact     ProposalStage = "CONTACT"
	ProposalStageNegotiation ProposalStage = "NEGOTIATION"
	ProposalStageWon         ProposalStage = "WON"
	ProposalStageLost        ProposalStage = "LOST"
)

// Proposal is the pre-sales aggregate.
type Proposal struct {
	ID          string
	Title       string
	Description string
	CustomerID  string
	Status      ProposalStatus
	Stage       ProposalStage
	ValueCents  int64
	OwnerID     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var allowedProposalStatuses = map[ProposalStatus][]ProposalStatus{
	ProposalStatusDraft:     {ProposalStatusSubmitted},
	ProposalStatusSubmitted: {ProposalStatusApproved, ProposalStatusRejected, ProposalStatusDraft},
	ProposalStatusApproved:  {},
	ProposalStatusRejected:  {ProposalStatusDraft},
}

var allowedProposalStages = map[ProposalStage][]ProposalStage{
	ProposalStageContact:     {ProposalStageNegotiation, ProposalStageLost},
	ProposalStageNegotiation: {ProposalStageWon, ProposalStageLost, ProposalStageContact},
	ProposalStageWon:         {},
	ProposalStageLost:        {ProposalStageContact},
}

// ValidProposalStatusTransition reports whether a status change is allowed.
func ValidProposalStatusTransition(current, next ProposalStatus) bool {
	for _, candidate := range allowedProposalStatuses[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ValidProposalStageTransition reports whether a stage change is allowed.
func ValidProposalStageTransition(current, next ProposalStage) bool {
	for _, candidate := range allowedProposalStages[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
