package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/assurly/assurly/internal/dto"
	"github.com/assurly/assurly/internal/types"
)

// SweepService is the daily invariant sweeper. One entry point,
// callable by the scheduler and manually, running three independent
// sub-sweeps: policy expiry, pre-expiry notices and stale claim
// detection. A failure in one sub-sweep never blocks the others.
type SweepService interface {
	RunDailySweep(ctx context.Context) *dto.SweepResult
}

type sweepService struct {
	ServiceParams
}

func NewSweepService(params ServiceParams) SweepService {
	return &sweepService{ServiceParams: params}
}

func (s *sweepService) RunDailySweep(ctx context.Context) *dto.SweepResult {
	now := time.Now().UTC()
	result := &dto.SweepResult{RunAt: now}

	s.Logger.Infow("daily sweep started", "run_at", now)

	var expireErr, noticeErr, staleErr error

	var wg conc.WaitGroup
	wg.Go(func() {
		result.ExpiredPolicies, expireErr = s.expirePolicies(ctx, now)
	})
	wg.Go(func() {
		result.PreExpiryNotices, noticeErr = s.sendPreExpiryNotices(ctx, now)
	})
	wg.Go(func() {
		result.StaleClaims, staleErr = s.detectStaleClaims(ctx, now)
	})
	wg.Wait()

	for _, err := range []error{expireErr, noticeErr, staleErr} {
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		}
	}

	s.Logger.Infow("daily sweep finished",
		"expired_policies", result.ExpiredPolicies,
		"pre_expiry_notices", result.PreExpiryNotices,
		"stale_claims", len(result.StaleClaims),
		"errors", len(result.Errors))

	return result
}

// expirePolicies moves every ACTIVE policy whose end date has passed
// to EXPIRED. The guarded update only succeeds for policies this run
// transitions itself, so a notification goes out exactly once per
// policy even when sweeps overlap or re-run.
func (s *sweepService) expirePolicies(ctx context.Context, now time.Time) (int, error) {
	policies, err := s.PolicyRepo.ListActiveEndedBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, p := range policies {
		p.Status = types.PolicyStatusExpired
		p.Touch(ctx)

		if err := s.PolicyRepo.Update(ctx, p, types.PolicyStatusActive); err != nil {
			// someone else transitioned it first; not ours to notify
			s.Logger.Debugw("skipping policy already transitioned",
				"policy_id", p.ID,
				"error", err)
			continue
		}

		expired++
		s.notify(ctx, types.NewNotification(
			p.OwnerID,
			types.NotificationPolicyExpired,
			"Your policy has expired",
			fmt.Sprintf("Policy %s expired on %s. Renew it to stay covered.",
				p.ID, p.EndDate.Format("2006-01-02")),
		).WithRelatedEntity("policy", p.ID))
	}

	if expired > 0 {
		s.Logger.Infow("expired policies", "count", expired)
	}
	return expired, nil
}

// sendPreExpiryNotices notifies holders of ACTIVE policies ending in
// the configured notice window. Notices are not deduplicated across
// runs; recipients tolerate repeats.
func (s *sweepService) sendPreExpiryNotices(ctx context.Context, now time.Time) (int, error) {
	from := now.AddDate(0, 0, s.Config.Sweep.PreExpiryNoticeDays-1)
	to := now.AddDate(0, 0, s.Config.Sweep.PreExpiryNoticeDays)

	policies, err := s.PolicyRepo.ListActiveEndingBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}

	for _, p := range policies {
		s.notify(ctx, types.NewNotification(
			p.OwnerID,
			types.NotificationPolicyExpiringSoon,
			"Your policy expires soon",
			fmt.Sprintf("Policy %s expires on %s. Renew it to avoid a coverage gap.",
				p.ID, p.EndDate.Format("2006-01-02")),
		).WithRelatedEntity("policy", p.ID))
	}

	return len(policies), nil
}

// detectStaleClaims reports non-terminal claims without activity for
// the configured number of days. Detection only; remediation is a
// manual back-office task.
func (s *sweepService) detectStaleClaims(ctx context.Context, now time.Time) ([]string, error) {
	before := now.AddDate(0, 0, -s.Config.Sweep.StaleClaimDays)

	claims, err := s.ClaimRepo.ListByStatusUpdatedBefore(ctx, types.NonTerminalClaimStatuses(), before)
	if err != nil {
		return nil, err
	}

	stale := make([]string, 0, len(claims))
	for _, c := range claims {
		stale = append(stale, c.ID)
		s.Logger.Warnw("stale claim detected",
			"claim_id", c.ID,
			"reference", c.Reference,
			"status", c.Status,
			"updated_at", c.UpdatedAt)
	}

	return stale, nil
}
