package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/assurly/assurly/internal/domain/claim"
	"github.com/assurly/assurly/internal/testutil"
	"github.com/assurly/assurly/internal/types"
)

type SweepServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SweepService
}

func TestSweepService(t *testing.T) {
	suite.Run(t, new(SweepServiceSuite))
}

func (s *SweepServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewSweepService(testParams(&s.BaseServiceTestSuite))
}

func (s *SweepServiceSuite) seedPolicy(status types.PolicyStatus, endDate time.Time) string {
	ctx := s.GetContext()
	q := newTestQuote(ctx, newTestVehicle(ctx, "10000"), newTestProduct(ctx, "50", "2.5"), "5250")
	p := newTestPolicy(ctx, q, status, endDate)
	s.NoError(s.GetStores().PolicyRepo.Create(ctx, p))
	return p.ID
}

func (s *SweepServiceSuite) TestExpiresPoliciesPastEndDate() {
	ctx := s.GetContext()
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	id := s.seedPolicy(types.PolicyStatusActive, yesterday)

	// still within its window, must be left alone
	s.seedPolicy(types.PolicyStatusActive, time.Now().UTC().AddDate(0, 6, 0))

	result := s.service.RunDailySweep(ctx)
	s.Empty(result.Errors)
	s.Equal(1, result.ExpiredPolicies)

	p, err := s.GetStores().PolicyRepo.Get(ctx, id)
	s.NoError(err)
	s.Equal(types.PolicyStatusExpired, p.Status)

	expired := s.GetNotifier().PublishedOfType(types.NotificationPolicyExpired)
	s.Len(expired, 1)
	s.Equal(p.OwnerID, expired[0].RecipientID)
}

func (s *SweepServiceSuite) TestExpiryIsNotifiedExactlyOnce() {
	ctx := s.GetContext()
	s.seedPolicy(types.PolicyStatusActive, time.Now().UTC().AddDate(0, 0, -1))

	result := s.service.RunDailySweep(ctx)
	s.Equal(1, result.ExpiredPolicies)

	// the second run finds nothing to transition and stays quiet
	result = s.service.RunDailySweep(ctx)
	s.Equal(0, result.ExpiredPolicies)
	s.Len(s.GetNotifier().PublishedOfType(types.NotificationPolicyExpired), 1)
}

func (s *SweepServiceSuite) TestCancelledPolicyIsNotExpired() {
	ctx := s.GetContext()
	id := s.seedPolicy(types.PolicyStatusCancelled, time.Now().UTC().AddDate(0, 0, -10))

	result := s.service.RunDailySweep(ctx)
	s.Equal(0, result.ExpiredPolicies)

	p, err := s.GetStores().PolicyRepo.Get(ctx, id)
	s.NoError(err)
	s.Equal(types.PolicyStatusCancelled, p.Status)
}

func (s *SweepServiceSuite) TestPreExpiryNotice() {
	ctx := s.GetContext()
	noticeDays := s.GetConfig().Sweep.PreExpiryNoticeDays

	// inside the one day notice window
	s.seedPolicy(types.PolicyStatusActive,
		time.Now().UTC().AddDate(0, 0, noticeDays).Add(-12*time.Hour))

	// well outside it, in both directions
	s.seedPolicy(types.PolicyStatusActive, time.Now().UTC().AddDate(0, 0, noticeDays+10))
	s.seedPolicy(types.PolicyStatusActive, time.Now().UTC().AddDate(0, 0, 5))

	result := s.service.RunDailySweep(ctx)
	s.Empty(result.Errors)
	s.Equal(1, result.PreExpiryNotices)
	s.Len(s.GetNotifier().PublishedOfType(types.NotificationPolicyExpiringSoon), 1)

	// notices are not deduplicated across runs
	result = s.service.RunDailySweep(ctx)
	s.Equal(1, result.PreExpiryNotices)
	s.Len(s.GetNotifier().PublishedOfType(types.NotificationPolicyExpiringSoon), 2)
}

func (s *SweepServiceSuite) TestDetectsStaleClaims() {
	ctx := s.GetContext()
	id := s.seedPolicy(types.PolicyStatusActive, time.Now().UTC().AddDate(1, 0, 0))

	staleDays := s.GetConfig().Sweep.StaleClaimDays
	longAgo := time.Now().UTC().AddDate(0, 0, -staleDays-1)

	stale := &claim.Claim{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLAIM),
		Reference: types.GenerateShortIDWithPrefix("CLM"),
		OwnerID:   "user_test",
		PolicyID:  id,
		Status:    types.ClaimStatusUnderReview,
		BaseModel: types.BaseModel{CreatedAt: longAgo, UpdatedAt: longAgo},
	}
	s.NoError(s.GetStores().ClaimRepo.Create(ctx, stale))

	settled := &claim.Claim{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLAIM),
		Reference: types.GenerateShortIDWithPrefix("CLM"),
		OwnerID:   "user_test",
		PolicyID:  id,
		Status:    types.ClaimStatusSettled,
		BaseModel: types.BaseModel{CreatedAt: longAgo, UpdatedAt: longAgo},
	}
	s.NoError(s.GetStores().ClaimRepo.Create(ctx, settled))

	result := s.service.RunDailySweep(ctx)
	s.Empty(result.Errors)
	s.Equal([]string{stale.ID}, result.StaleClaims)

	// detection only: the claim is reported, never transitioned
	c, err := s.GetStores().ClaimRepo.Get(ctx, stale.ID)
	s.NoError(err)
	s.Equal(types.ClaimStatusUnderReview, c.Status)
	s.Equal(longAgo, c.UpdatedAt)
}

func (s *SweepServiceSuite) TestSubSweepsRunIndependently() {
	ctx := s.GetContext()
	s.seedPolicy(types.PolicyStatusActive, time.Now().UTC().AddDate(0, 0, -1))
	s.seedPolicy(types.PolicyStatusActive,
		time.Now().UTC().AddDate(0, 0, s.GetConfig().Sweep.PreExpiryNoticeDays).Add(-12*time.Hour))

	result := s.service.RunDailySweep(ctx)
	s.Empty(result.Errors)
	s.Equal(1, result.ExpiredPolicies)
	s.Equal(1, result.PreExpiryNotices)
	s.Empty(result.StaleClaims)
}
