package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/assurly/assurly/internal/testutil"
	"github.com/assurly/assurly/internal/types"
)

type SequenceRegistrySuite struct {
	testutil.BaseServiceTestSuite
}

func TestSequenceRegistry(t *testing.T) {
	suite.Run(t, new(SequenceRegistrySuite))
}

func (s *SequenceRegistrySuite) TestNextStartsAtOneAndIncrements() {
	ctx := s.GetContext()
	key := types.SequenceKey(types.DocumentKindAttestation, 2026)

	for want := int64(1); want <= 5; want++ {
		got, err := s.GetStores().SequenceRepo.Next(ctx, key)
		s.NoError(err)
		s.Equal(want, got)
	}
}

func (s *SequenceRegistrySuite) TestKeysAreIndependent() {
	ctx := s.GetContext()

	v, err := s.GetStores().SequenceRepo.Next(ctx, types.SequenceKey(types.DocumentKindAttestation, 2026))
	s.NoError(err)
	s.Equal(int64(1), v)

	// a different kind and a different year each start fresh
	v, err = s.GetStores().SequenceRepo.Next(ctx, types.SequenceKey(types.DocumentKindContract, 2026))
	s.NoError(err)
	s.Equal(int64(1), v)

	v, err = s.GetStores().SequenceRepo.Next(ctx, types.SequenceKey(types.DocumentKindAttestation, 2027))
	s.NoError(err)
	s.Equal(int64(1), v)
}

func (s *SequenceRegistrySuite) TestCurrentDoesNotConsume() {
	ctx := s.GetContext()
	key := types.SequenceKey(types.DocumentKindReceipt, 2026)

	current, err := s.GetStores().SequenceRepo.Current(ctx, key)
	s.NoError(err)
	s.Equal(int64(0), current)

	_, err = s.GetStores().SequenceRepo.Next(ctx, key)
	s.NoError(err)

	current, err = s.GetStores().SequenceRepo.Current(ctx, key)
	s.NoError(err)
	s.Equal(int64(1), current)

	current, err = s.GetStores().SequenceRepo.Current(ctx, key)
	s.NoError(err)
	s.Equal(int64(1), current)
}

func (s *SequenceRegistrySuite) TestConcurrentCallersNeverShareAValue() {
	ctx := s.GetContext()
	key := types.SequenceKey(types.DocumentKindContract, 2026)

	const callers = 100
	values := make(chan int64, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.GetStores().SequenceRepo.Next(ctx, key)
			s.NoError(err)
			values <- v
		}()
	}
	wg.Wait()
	close(values)

	seen := map[int64]bool{}
	for v := range values {
		s.False(seen[v], "value %d issued twice", v)
		s.True(v >= 1 && v <= callers)
		seen[v] = true
	}
	s.Len(seen, callers)
}
