package domain

import (
	"time"
)

// Display is a record of a popup being shown. It is written together with
// the campaign's display count increment.
type Display struct {
	ID         int64
	Token      string
	CampaignID int64
	SessionID  string
	Trigger    Trigger
	CreatedAt  time.Time
}

// Outcome is the terminal state of one delivery attempt. None of them is
// an error.
type Outcome string

const (
	// OutcomeRejectedCooldown means the cooldown gate refused the attempt.
	OutcomeRejectedCooldown Outcome = "rejected_cooldown"
	// OutcomeNoCandidates means no campaign was eligible.
	OutcomeNoCandidates Outcome = "no_candidates"
	// OutcomePresented means one campaign was recorded and presented.
	OutcomePresented Outcome = "presented"
	// OutcomeNoTrigger means the event carried neither a pending nor an
	// ambient trigger.
	OutcomeNoTrigger Outcome = "no_trigger"
)

// Delivery is the result of one delivery attempt.
type Delivery struct {
	Outcome  Outcome
	Trigger  Trigger
	Campaign *Campaign
	Display  *Display
}

// Presented reports whether the attempt showed a campaign.
func (d Delivery) Presented() bool {
	return d.Outcome == OutcomePresented
}
