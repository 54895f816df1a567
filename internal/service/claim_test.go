package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/assurly/assurly/internal/domain/policy"
	"github.com/assurly/assurly/internal/dto"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/testutil"
	"github.com/assurly/assurly/internal/types"
)

type ClaimServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ClaimService
	policy  *policy.Policy
}

func TestClaimService(t *testing.T) {
	suite.Run(t, new(ClaimServiceSuite))
}

func (s *ClaimServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewClaimService(testParams(&s.BaseServiceTestSuite))

	ctx := s.GetContext()
	q := newTestQuote(ctx, newTestVehicle(ctx, "10000"), newTestProduct(ctx, "50", "2.5"), "5250")
	s.policy = newTestPolicy(ctx, q, types.PolicyStatusActive, time.Now().UTC().AddDate(1, 0, 0))
	s.NoError(s.GetStores().PolicyRepo.Create(ctx, s.policy))
}

func (s *ClaimServiceSuite) createClaim() *dto.ClaimResponse {
	resp, err := s.service.CreateClaim(s.GetContext(), &dto.CreateClaimRequest{
		PolicyID: s.policy.ID,
		Incident: dto.IncidentRequest{
			Date:        time.Now().UTC().AddDate(0, 0, -1),
			Location:    "Lyon",
			Type:        "collision",
			Description: "rear-ended at a red light",
		},
	})
	s.Require().NoError(err)
	return resp
}

func (s *ClaimServiceSuite) transition(claimID string, to types.ClaimStatus) (*dto.ClaimResponse, error) {
	return s.service.TransitionClaim(s.GetContext(), &dto.TransitionClaimRequest{
		ClaimID: claimID,
		Status:  to,
		Note:    "test",
	})
}

func (s *ClaimServiceSuite) TestCreateClaim() {
	resp := s.createClaim()

	s.Equal(types.ClaimStatusReceived, resp.Status)
	s.Equal(s.policy.OwnerID, resp.OwnerID)
	s.Equal(s.policy.VehicleID, resp.VehicleID)
	s.NotEmpty(resp.Reference)

	// creation writes the first history entry
	s.Len(resp.History, 1)
	s.Equal(types.ClaimStatusReceived, resp.History[0].Status)

	s.Len(s.GetNotifier().PublishedOfType(types.NotificationClaimReceived), 1)
}

func (s *ClaimServiceSuite) TestCreateClaimMissingPolicy() {
	_, err := s.service.CreateClaim(s.GetContext(), &dto.CreateClaimRequest{
		PolicyID: "pol_missing",
		Incident: dto.IncidentRequest{
			Date:        time.Now().UTC(),
			Location:    "Lyon",
			Type:        "collision",
			Description: "x",
		},
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ClaimServiceSuite) TestLegalTransitionAppendsHistory() {
	c := s.createClaim()

	resp, err := s.transition(c.ID, types.ClaimStatusUnderReview)
	s.NoError(err)
	s.Equal(types.ClaimStatusUnderReview, resp.Status)
	s.Len(resp.History, 2)
	s.Equal(types.ClaimStatusUnderReview, resp.History[1].Status)

	s.Len(s.GetNotifier().PublishedOfType(types.NotificationClaimStatusChanged), 1)
}

func (s *ClaimServiceSuite) TestSameStateTransitionIsNoOp() {
	c := s.createClaim()

	resp, err := s.transition(c.ID, types.ClaimStatusReceived)
	s.NoError(err)
	s.Equal(types.ClaimStatusReceived, resp.Status)

	// no history entry, no notification for the retry
	s.Len(resp.History, 1)
	s.Empty(s.GetNotifier().PublishedOfType(types.NotificationClaimStatusChanged))
}

func (s *ClaimServiceSuite) TestIllegalTransitionFails() {
	c := s.createClaim()

	// RECEIVED -> IN_REPAIR is not an edge
	_, err := s.transition(c.ID, types.ClaimStatusInRepair)
	s.Error(err)
	s.True(ierr.IsIllegalTransition(err))

	// RECEIVED -> SETTLED is not an edge either
	_, err = s.transition(c.ID, types.ClaimStatusSettled)
	s.Error(err)
	s.True(ierr.IsIllegalTransition(err))
}

func (s *ClaimServiceSuite) TestTerminalStateRejectsTransitions() {
	c := s.createClaim()

	_, err := s.transition(c.ID, types.ClaimStatusRejected)
	s.NoError(err)

	_, err = s.transition(c.ID, types.ClaimStatusUnderReview)
	s.Error(err)
	s.True(ierr.IsTerminalState(err))
}

func (s *ClaimServiceSuite) TestFullRepairPath() {
	c := s.createClaim()

	for _, status := range []types.ClaimStatus{
		types.ClaimStatusUnderReview,
		types.ClaimStatusExpertAssigned,
		types.ClaimStatusInRepair,
		types.ClaimStatusSettled,
	} {
		resp, err := s.transition(c.ID, status)
		s.NoError(err)
		s.Equal(status, resp.Status)
	}

	final, err := s.service.GetClaim(s.GetContext(), c.ID)
	s.NoError(err)
	s.Len(final.History, 5)
	s.Empty(final.AllowedTransitions)
}

func (s *ClaimServiceSuite) TestAssignExpertFromReceived() {
	c := s.createClaim()

	resp, err := s.service.AssignExpert(s.GetContext(), &dto.AssignExpertRequest{
		ClaimID:  c.ID,
		ExpertID: "expert_42",
	})
	s.NoError(err)
	s.Equal(types.ClaimStatusExpertAssigned, resp.Status)
	s.NotNil(resp.ExpertID)
	s.Equal("expert_42", *resp.ExpertID)
	s.Len(resp.History, 2)
}

func (s *ClaimServiceSuite) TestAssignExpertWhileInRepairFails() {
	c := s.createClaim()

	_, err := s.transition(c.ID, types.ClaimStatusUnderReview)
	s.NoError(err)
	_, err = s.transition(c.ID, types.ClaimStatusExpertAssigned)
	s.NoError(err)
	_, err = s.transition(c.ID, types.ClaimStatusInRepair)
	s.NoError(err)

	_, err = s.service.AssignExpert(s.GetContext(), &dto.AssignExpertRequest{
		ClaimID:  c.ID,
		ExpertID: "expert_42",
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ClaimServiceSuite) TestAssignExpertOnSettledClaimFails() {
	c := s.createClaim()

	_, err := s.transition(c.ID, types.ClaimStatusUnderReview)
	s.NoError(err)
	_, err = s.transition(c.ID, types.ClaimStatusSettled)
	s.NoError(err)

	_, err = s.service.AssignExpert(s.GetContext(), &dto.AssignExpertRequest{
		ClaimID:  c.ID,
		ExpertID: "expert_42",
	})
	s.Error(err)
	s.True(ierr.IsTerminalState(err))
}

func (s *ClaimServiceSuite) TestAddClaimMessage() {
	c := s.createClaim()

	resp, err := s.service.AddClaimMessage(s.GetContext(), &dto.AddClaimMessageRequest{
		ClaimID: c.ID,
		Body:    "any update on my claim?",
	})
	s.NoError(err)
	s.Len(resp.Messages, 1)
	s.Equal("any update on my claim?", resp.Messages[0].Body)

	// messages never touch the status or the history
	s.Equal(types.ClaimStatusReceived, resp.Status)
	s.Len(resp.History, 1)
}

func (s *ClaimServiceSuite) TestAddClaimAttachment() {
	c := s.createClaim()

	resp, err := s.service.AddClaimAttachment(s.GetContext(), &dto.AddClaimAttachmentRequest{
		ClaimID:     c.ID,
		FileName:    "damage.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg-bytes"),
	})
	s.NoError(err)
	s.Len(resp.Attachments, 1)
	s.Equal("damage.jpg", resp.Attachments[0].FileName)
	s.Equal(int64(10), resp.Attachments[0].ByteSize)

	exists, err := s.GetBlobStore().Exists(s.GetContext(), resp.Attachments[0].BlobLocation)
	s.NoError(err)
	s.True(exists)
}

func (s *ClaimServiceSuite) TestAddAttachmentToSettledClaimFails() {
	c := s.createClaim()

	_, err := s.transition(c.ID, types.ClaimStatusUnderReview)
	s.NoError(err)
	_, err = s.transition(c.ID, types.ClaimStatusSettled)
	s.NoError(err)

	_, err = s.service.AddClaimAttachment(s.GetContext(), &dto.AddClaimAttachmentRequest{
		ClaimID:  c.ID,
		FileName: "late.jpg",
		Data:     []byte("x"),
	})
	s.Error(err)
	s.True(ierr.IsTerminalState(err))
}
