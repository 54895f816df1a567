package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/assurly/assurly/internal/domain/policy"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/testutil"
	"github.com/assurly/assurly/internal/types"
)

type DocumentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service DocumentService
}

func TestDocumentService(t *testing.T) {
	suite.Run(t, new(DocumentServiceSuite))
}

func (s *DocumentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewDocumentService(testParams(&s.BaseServiceTestSuite))
}

// seedPolicy creates a paid active policy with its full object graph
func (s *DocumentServiceSuite) seedPolicy() *policy.Policy {
	ctx := s.GetContext()
	v := newTestVehicle(ctx, "10000")
	prod := newTestProduct(ctx, "50", "2.5")
	q := newTestQuote(ctx, v, prod, "5250")
	p := newTestPolicy(ctx, q, types.PolicyStatusActive, time.Now().UTC().AddDate(1, 0, 0))
	s.NoError(s.GetStores().VehicleRepo.Create(ctx, v))
	s.NoError(s.GetStores().ProductRepo.Create(ctx, prod))
	s.NoError(s.GetStores().QuoteRepo.Create(ctx, q))
	s.NoError(s.GetStores().PolicyRepo.Create(ctx, p))
	return p
}

func (s *DocumentServiceSuite) TestIssueDocuments() {
	ctx := s.GetContext()
	p := s.seedPolicy()

	docs, err := s.service.IssueDocuments(ctx, p.ID)
	s.NoError(err)
	s.Len(docs, 3)

	year := time.Now().UTC().Year()
	s.Equal(fmt.Sprintf("AT-%d-000001", year), docs[0].Number)
	s.Equal(fmt.Sprintf("CT-%d-000001", year), docs[1].Number)
	s.Equal(fmt.Sprintf("RC-%d-000001", year), docs[2].Number)

	for _, d := range docs {
		s.True(d.IsActive)
		s.NotEmpty(d.BlobLocation)
		s.Positive(d.ByteSize)

		exists, err := s.GetBlobStore().Exists(ctx, d.BlobLocation)
		s.NoError(err)
		s.True(exists)
	}

	// the policy now references its active set
	stored, err := s.GetStores().PolicyRepo.Get(ctx, p.ID)
	s.NoError(err)
	s.Len(stored.DocumentIDs, 3)

	s.Len(s.GetNotifier().PublishedOfType(types.NotificationDocumentsGenerated), 1)
}

func (s *DocumentServiceSuite) TestIssueDocumentsNumbersNeverReused() {
	ctx := s.GetContext()
	first := s.seedPolicy()
	second := s.seedPolicy()

	docsA, err := s.service.IssueDocuments(ctx, first.ID)
	s.NoError(err)
	docsB, err := s.service.IssueDocuments(ctx, second.ID)
	s.NoError(err)

	seen := map[string]bool{}
	for _, d := range append(docsA, docsB...) {
		s.False(seen[d.Number], "number %s issued twice", d.Number)
		seen[d.Number] = true
	}
}

func (s *DocumentServiceSuite) TestPartialIssuanceIsAccepted() {
	ctx := s.GetContext()
	p := s.seedPolicy()

	// the contract renderer is down; attestation and receipt still
	// go through
	s.GetPDFGenerator().FailKind(types.DocumentKindContract)

	docs, err := s.service.IssueDocuments(ctx, p.ID)
	s.NoError(err)
	s.Len(docs, 2)

	active, err := s.GetStores().DocumentRepo.ListActiveByPolicy(ctx, p.ID)
	s.NoError(err)
	s.Len(active, 2)

	// an incomplete set does not announce completed documents
	s.Empty(s.GetNotifier().PublishedOfType(types.NotificationDocumentsGenerated))

	// the contract number was consumed and stays a hole
	year := time.Now().UTC().Year()
	current, err := s.GetStores().SequenceRepo.Current(ctx,
		types.SequenceKey(types.DocumentKindContract, year))
	s.NoError(err)
	s.Equal(int64(1), current)
}

func (s *DocumentServiceSuite) TestRegenerateSupersedesActiveSet() {
	ctx := s.GetContext()
	p := s.seedPolicy()

	firstGen, err := s.service.IssueDocuments(ctx, p.ID)
	s.NoError(err)
	s.Len(firstGen, 3)

	secondGen, err := s.service.RegenerateDocuments(ctx, p.ID)
	s.NoError(err)
	s.Len(secondGen, 3)

	// nothing is deleted: both generations are retained
	all, err := s.GetStores().DocumentRepo.ListByPolicy(ctx, p.ID)
	s.NoError(err)
	s.Len(all, 6)

	// only the latest generation is active
	active, err := s.GetStores().DocumentRepo.ListActiveByPolicy(ctx, p.ID)
	s.NoError(err)
	s.Len(active, 3)
	for _, d := range active {
		for _, old := range firstGen {
			s.NotEqual(old.ID, d.ID)
		}
	}

	// numbers keep increasing across generations
	year := time.Now().UTC().Year()
	s.Equal(fmt.Sprintf("AT-%d-000002", year), secondGen[0].Number)
}

func (s *DocumentServiceSuite) TestRegenerateRecoversPartialSet() {
	ctx := s.GetContext()
	p := s.seedPolicy()

	s.GetPDFGenerator().FailKind(types.DocumentKindContract)
	docs, err := s.service.IssueDocuments(ctx, p.ID)
	s.NoError(err)
	s.Len(docs, 2)

	// renderer is back
	s.GetPDFGenerator().Clear()

	docs, err = s.service.RegenerateDocuments(ctx, p.ID)
	s.NoError(err)
	s.Len(docs, 3)

	active, err := s.GetStores().DocumentRepo.ListActiveByPolicy(ctx, p.ID)
	s.NoError(err)
	s.Len(active, 3)
}

func (s *DocumentServiceSuite) TestIssueSupplementaryDocument() {
	ctx := s.GetContext()
	p := s.seedPolicy()

	doc, err := s.service.IssueSupplementaryDocument(ctx, p.ID, types.DocumentKindCancellation, "sold the car")
	s.NoError(err)
	s.Equal(types.DocumentKindCancellation, doc.Kind)
	s.Regexp(types.DocumentNumberPattern, doc.Number)

	year := time.Now().UTC().Year()
	s.Equal(fmt.Sprintf("CN-%d-000001", year), doc.Number)
}

func (s *DocumentServiceSuite) TestSupplementaryDocumentsStayOutsideActiveSet() {
	ctx := s.GetContext()
	p := s.seedPolicy()

	firstGen, err := s.service.IssueDocuments(ctx, p.ID)
	s.NoError(err)
	s.Len(firstGen, 3)

	amendment, err := s.service.IssueSupplementaryDocument(ctx, p.ID, types.DocumentKindAmendment, "")
	s.NoError(err)

	// the active set remains the issued triple
	active, err := s.GetStores().DocumentRepo.ListActiveByPolicy(ctx, p.ID)
	s.NoError(err)
	s.Len(active, 3)
	for _, d := range active {
		s.NotEqual(amendment.ID, d.ID)
	}

	// regeneration supersedes the triple only
	secondGen, err := s.service.RegenerateDocuments(ctx, p.ID)
	s.NoError(err)
	s.Len(secondGen, 3)

	stored, err := s.GetStores().DocumentRepo.Get(ctx, amendment.ID)
	s.NoError(err)
	s.True(stored.IsActive)

	// the policy references the fresh triple and never the amendment
	refreshed, err := s.GetStores().PolicyRepo.Get(ctx, p.ID)
	s.NoError(err)
	s.Len(refreshed.DocumentIDs, 3)
	s.NotContains(refreshed.DocumentIDs, amendment.ID)
	for _, d := range secondGen {
		s.Contains(refreshed.DocumentIDs, d.ID)
	}

	// every generation plus the amendment is retained
	all, err := s.GetStores().DocumentRepo.ListByPolicy(ctx, p.ID)
	s.NoError(err)
	s.Len(all, 7)
}

func (s *DocumentServiceSuite) TestIssueSupplementaryRejectsCoreKinds() {
	ctx := s.GetContext()
	p := s.seedPolicy()

	_, err := s.service.IssueSupplementaryDocument(ctx, p.ID, types.DocumentKindAttestation, "")
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
