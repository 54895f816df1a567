package claim

import (
	"github.com/assurly/assurly/internal/types"
)

// allowedTransitions is the fixed claim workflow graph. SETTLED and
// REJECTED are terminal and have no outbound edges.
var allowedTransitions = map[types.ClaimStatus][]types.ClaimStatus{
	types.ClaimStatusReceived: {
		types.ClaimStatusUnderReview,
		types.ClaimStatusNeedMoreInfo,
		types.ClaimStatusRejected,
	},
	types.ClaimStatusUnderReview: {
		types.ClaimStatusNeedMoreInfo,
		types.ClaimStatusExpertAssigned,
		types.ClaimStatusSettled,
		types.ClaimStatusRejected,
	},
	types.ClaimStatusNeedMoreInfo: {
		types.ClaimStatusUnderReview,
		types.ClaimStatusRejected,
	},
	types.ClaimStatusExpertAssigned: {
		types.ClaimStatusInRepair,
		types.ClaimStatusSettled,
		types.ClaimStatusRejected,
	},
	types.ClaimStatusInRepair: {
		types.ClaimStatusSettled,
		types.ClaimStatusRejected,
	},
}

// CanTransition reports whether the workflow graph contains an edge
// from one status to another. Same-status is not an edge; callers
// treat it as an idempotent no-op before consulting the graph.
func CanTransition(from, to types.ClaimStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTargets returns the statuses reachable from the given one
func AllowedTargets(from types.ClaimStatus) []types.ClaimStatus {
	targets := allowedTransitions[from]
	out := make([]types.ClaimStatus, len(targets))
	copy(out, targets)
	return out
}

// CanAssignExpert reports whether expert assignment is still allowed.
// The eligibility set is deliberately broader than UNDER_REVIEW:
// assignment from RECEIVED or NEED_MORE_INFO is permitted.
func CanAssignExpert(status types.ClaimStatus) bool {
	switch status {
	case types.ClaimStatusInRepair, types.ClaimStatusSettled, types.ClaimStatusRejected:
		return false
	}
	return true
}
