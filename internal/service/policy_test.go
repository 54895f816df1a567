package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/assurly/assurly/internal/dto"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/testutil"
	"github.com/assurly/assurly/internal/types"
)

type PolicyServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PolicyService
}

func TestPolicyService(t *testing.T) {
	suite.Run(t, new(PolicyServiceSuite))
}

func (s *PolicyServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPolicyService(testParams(&s.BaseServiceTestSuite))
}

// seedQuote creates the vehicle, product and a pending quote
func (s *PolicyServiceSuite) seedQuote() *dto.IssuePolicyRequest {
	ctx := s.GetContext()
	v := newTestVehicle(ctx, "10000")
	p := newTestProduct(ctx, "50", "2.5")
	q := newTestQuote(ctx, v, p, "5250")
	s.NoError(s.GetStores().VehicleRepo.Create(ctx, v))
	s.NoError(s.GetStores().ProductRepo.Create(ctx, p))
	s.NoError(s.GetStores().QuoteRepo.Create(ctx, q))
	return &dto.IssuePolicyRequest{QuoteID: q.ID}
}

func (s *PolicyServiceSuite) TestIssuePolicy() {
	ctx := s.GetContext()
	req := s.seedQuote()

	resp, err := s.service.IssuePolicy(ctx, req)
	s.NoError(err)
	s.Equal(types.PolicyStatusActive, resp.Status)
	s.Equal(types.PaymentStatusPaid, resp.PaymentStatus)
	s.Equal(req.QuoteID, resp.QuoteID)
	s.Equal(resp.StartDate.AddDate(1, 0, 0), resp.EndDate)

	// the quote is consumed
	q, err := s.GetStores().QuoteRepo.Get(ctx, req.QuoteID)
	s.NoError(err)
	s.Equal(types.QuoteStatusConverted, q.Status)

	// a paid policy gets its full document set
	s.Len(resp.Documents, 3)
	kinds := []types.DocumentKind{}
	for _, d := range resp.Documents {
		kinds = append(kinds, d.Kind)
		s.Regexp(types.DocumentNumberPattern, d.Number)
		s.True(d.IsActive)
	}
	s.Equal(types.IssuedDocumentKinds(), kinds)

	issued := s.GetNotifier().PublishedOfType(types.NotificationPolicyIssued)
	s.Len(issued, 1)
	s.Equal(resp.OwnerID, issued[0].RecipientID)
}

func (s *PolicyServiceSuite) TestIssuePolicyTwiceFails() {
	ctx := s.GetContext()
	req := s.seedQuote()

	_, err := s.service.IssuePolicy(ctx, req)
	s.NoError(err)

	_, err = s.service.IssuePolicy(ctx, req)
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrDuplicatePolicy))
}

func (s *PolicyServiceSuite) TestIssuePolicyFromExpiredQuoteFails() {
	ctx := s.GetContext()
	req := s.seedQuote()

	q, err := s.GetStores().QuoteRepo.Get(ctx, req.QuoteID)
	s.NoError(err)
	q.ExpiresAt = time.Now().UTC().Add(-time.Hour)
	s.NoError(s.GetStores().QuoteRepo.Update(ctx, q, types.QuoteStatusPending))

	_, err = s.service.IssuePolicy(ctx, req)
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrQuoteNotConvertible))

	// the stale quote was expired on the way out
	q, err = s.GetStores().QuoteRepo.Get(ctx, req.QuoteID)
	s.NoError(err)
	s.Equal(types.QuoteStatusExpired, q.Status)
}

func (s *PolicyServiceSuite) TestIssuePolicyWithFailedPaymentSkipsDocuments() {
	ctx := s.GetContext()
	req := s.seedQuote()

	// every simulated payment is declined
	s.GetConfig().Payment.SuccessRate = 0
	defer func() { s.GetConfig().Payment.SuccessRate = 1 }()

	resp, err := s.service.IssuePolicy(ctx, req)
	s.NoError(err)
	s.Equal(types.PaymentStatusFailed, resp.PaymentStatus)
	s.Empty(resp.Documents)

	docs, err := s.GetStores().DocumentRepo.ListByPolicy(ctx, resp.ID)
	s.NoError(err)
	s.Empty(docs)
}

func (s *PolicyServiceSuite) TestRenewPolicyBeforeEndDate() {
	ctx := s.GetContext()
	endDate := time.Now().UTC().AddDate(0, 1, 0)
	q := newTestQuote(ctx, newTestVehicle(ctx, "10000"), newTestProduct(ctx, "50", "2.5"), "5250")
	p := newTestPolicy(ctx, q, types.PolicyStatusActive, endDate)
	s.NoError(s.GetStores().QuoteRepo.Create(ctx, q))
	s.NoError(s.GetStores().PolicyRepo.Create(ctx, p))

	resp, err := s.service.RenewPolicy(ctx, p.ID)
	s.NoError(err)

	// the window advances from the old end date, not from now
	s.Equal(endDate, resp.StartDate)
	s.Equal(endDate.AddDate(1, 0, 0), resp.EndDate)
	s.Equal(types.PolicyStatusActive, resp.Status)
	s.Equal(types.PaymentStatusPending, resp.PaymentStatus)

	s.Len(s.GetNotifier().PublishedOfType(types.NotificationPolicyRenewed), 1)
}

func (s *PolicyServiceSuite) TestRenewExpiredPolicyStartsNow() {
	ctx := s.GetContext()
	endDate := time.Now().UTC().AddDate(0, -2, 0)
	q := newTestQuote(ctx, newTestVehicle(ctx, "10000"), newTestProduct(ctx, "50", "2.5"), "5250")
	p := newTestPolicy(ctx, q, types.PolicyStatusExpired, endDate)
	s.NoError(s.GetStores().QuoteRepo.Create(ctx, q))
	s.NoError(s.GetStores().PolicyRepo.Create(ctx, p))

	resp, err := s.service.RenewPolicy(ctx, p.ID)
	s.NoError(err)

	// the old end date is in the past, so the window starts now
	s.WithinDuration(time.Now().UTC(), resp.StartDate, time.Minute)
	s.Equal(resp.StartDate.AddDate(1, 0, 0), resp.EndDate)
	s.Equal(types.PolicyStatusActive, resp.Status)
}

func (s *PolicyServiceSuite) TestRenewalAmendmentStaysOutsideActiveSet() {
	ctx := s.GetContext()
	req := s.seedQuote()

	issued, err := s.service.IssuePolicy(ctx, req)
	s.NoError(err)
	s.Len(issued.Documents, 3)

	resp, err := s.service.RenewPolicy(ctx, issued.ID)
	s.NoError(err)

	// the renewal amendment does not grow the active set
	active, err := s.GetStores().DocumentRepo.ListActiveByPolicy(ctx, resp.ID)
	s.NoError(err)
	s.Len(active, 3)
	for _, d := range active {
		s.True(d.Kind.IsIssued())
	}

	all, err := s.GetStores().DocumentRepo.ListByPolicy(ctx, resp.ID)
	s.NoError(err)
	s.Len(all, 4)

	// regenerating the issued set leaves the amendment untouched
	docs := NewDocumentService(testParams(&s.BaseServiceTestSuite))
	_, err = docs.RegenerateDocuments(ctx, resp.ID)
	s.NoError(err)

	all, err = s.GetStores().DocumentRepo.ListByPolicy(ctx, resp.ID)
	s.NoError(err)
	s.Len(all, 7)
	for _, d := range all {
		if d.Kind == types.DocumentKindAmendment {
			s.True(d.IsActive)
		}
	}
}

func (s *PolicyServiceSuite) TestRenewCancelledPolicyFails() {
	ctx := s.GetContext()
	q := newTestQuote(ctx, newTestVehicle(ctx, "10000"), newTestProduct(ctx, "50", "2.5"), "5250")
	p := newTestPolicy(ctx, q, types.PolicyStatusCancelled, time.Now().UTC())
	s.NoError(s.GetStores().PolicyRepo.Create(ctx, p))

	_, err := s.service.RenewPolicy(ctx, p.ID)
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrAlreadyTerminal))
}

func (s *PolicyServiceSuite) TestCancelPolicy() {
	ctx := s.GetContext()
	q := newTestQuote(ctx, newTestVehicle(ctx, "10000"), newTestProduct(ctx, "50", "2.5"), "5250")
	p := newTestPolicy(ctx, q, types.PolicyStatusActive, time.Now().UTC().AddDate(0, 6, 0))
	s.NoError(s.GetStores().QuoteRepo.Create(ctx, q))
	s.NoError(s.GetStores().PolicyRepo.Create(ctx, p))

	resp, err := s.service.CancelPolicy(ctx, &dto.CancelPolicyRequest{
		PolicyID: p.ID,
		Note:     "sold the car",
	})
	s.NoError(err)
	s.Equal(types.PolicyStatusCancelled, resp.Status)

	s.Len(s.GetNotifier().PublishedOfType(types.NotificationPolicyCancelled), 1)

	// cancelling twice fails on the second call
	_, err = s.service.CancelPolicy(ctx, &dto.CancelPolicyRequest{PolicyID: p.ID})
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrAlreadyTerminal))
}
