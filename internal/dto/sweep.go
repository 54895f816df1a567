package dto

import "time"

// SweepResult summarizes one run of the daily invariant sweep. The
// three sub-sweeps run independently; a failure in one is reported in
// Errors without affecting the others.
type SweepResult struct {
	RunAt            time.Time `json:"run_at"`
	ExpiredPolicies  int       `json:"expired_policies"`
	PreExpiryNotices int       `json:"pre_expiry_notices"`
	StaleClaims      []string  `json:"stale_claims,omitempty"`
	Errors           []string  `json:"errors,omitempty"`
}
