package types

// ClaimStatus is the workflow status of a claim
type ClaimStatus string

const (
	ClaimStatusReceived       ClaimStatus = "RECEIVED"
	ClaimStatusUnderReview    ClaimStatus = "UNDER_REVIEW"
	ClaimStatusNeedMoreInfo   ClaimStatus = "NEED_MORE_INFO"
	ClaimStatusExpertAssigned ClaimStatus = "EXPERT_ASSIGNED"
	ClaimStatusInRepair       ClaimStatus = "IN_REPAIR"
	ClaimStatusSettled        ClaimStatus = "SETTLED"
	ClaimStatusRejected       ClaimStatus = "REJECTED"
)

func (s ClaimStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states with no outbound transitions
func (s ClaimStatus) IsTerminal() bool {
	return s == ClaimStatusSettled || s == ClaimStatusRejected
}

func (s ClaimStatus) Validate() bool {
	switch s {
	case ClaimStatusReceived, ClaimStatusUnderReview, ClaimStatusNeedMoreInfo,
		ClaimStatusExpertAssigned, ClaimStatusInRepair, ClaimStatusSettled,
		ClaimStatusRejected:
		return true
	}
	return false
}

// NonTerminalClaimStatuses lists every claim status that still allows
// outbound transitions. Used by the stale claim sweep.
func NonTerminalClaimStatuses() []ClaimStatus {
	return []ClaimStatus{
		ClaimStatusReceived,
		ClaimStatusUnderReview,
		ClaimStatusNeedMoreInfo,
		ClaimStatusExpertAssigned,
		ClaimStatusInRepair,
	}
}
