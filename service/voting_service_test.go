package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"election-management-backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastVote_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.createActiveElection(t, "A", "B")
	voter := env.registerVoter(t, "V1", "v1@example.com")
	candidateA := election.Candidates[0]

	err := env.voting.CastVote(ctx, election.ID, candidateA.ID, voter.ID)
	require.NoError(t, err)

	// Candidate tally, election total and voter flag all updated together
	updated, err := env.elections.GetElection(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.TotalVotes)
	assert.Equal(t, int64(1), updated.Candidates[0].Votes)
	assert.Equal(t, int64(0), updated.Candidates[1].Votes)

	votedVoter, err := env.voters.GetVoter(ctx, voter.ID)
	require.NoError(t, err)
	assert.True(t, votedVoter.HasVoted)
	require.NotNil(t, votedVoter.ElectionID)
	assert.Equal(t, election.ID, *votedVoter.ElectionID)

	env.assertTallyConserved(t, election.ID)
}

func TestCastVote_SecondVoteRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.createActiveElection(t, "A", "B")
	voter := env.registerVoter(t, "V1", "v1@example.com")
	candidateA := election.Candidates[0]
	candidateB := election.Candidates[1]

	require.NoError(t, env.voting.CastVote(ctx, election.ID, candidateA.ID, voter.ID))

	// A second vote for a different candidate fails and changes nothing
	err := env.voting.CastVote(ctx, election.ID, candidateB.ID, voter.ID)
	assert.ErrorIs(t, err, repository.ErrAlreadyVoted)

	updated, err := env.elections.GetElection(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.TotalVotes)
	assert.Equal(t, int64(1), updated.Candidates[0].Votes)
	assert.Equal(t, int64(0), updated.Candidates[1].Votes)
}

func TestCastVote_IdenticalRetryRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.createActiveElection(t, "A", "B")
	voter := env.registerVoter(t, "V1", "v1@example.com")
	candidateA := election.Candidates[0]

	require.NoError(t, env.voting.CastVote(ctx, election.ID, candidateA.ID, voter.ID))

	// Retrying the exact same vote is a terminal rejection, counters stay
	// as they were after the first accepted call
	err := env.voting.CastVote(ctx, election.ID, candidateA.ID, voter.ID)
	assert.ErrorIs(t, err, repository.ErrAlreadyVoted)

	updated, err := env.elections.GetElection(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.TotalVotes)
	assert.Equal(t, int64(1), updated.Candidates[0].Votes)
}

func TestCastVote_GlobalOneVoteAcrossElections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.createActiveElection(t, "A", "B")
	second := env.createActiveElection(t, "C", "D")
	voter := env.registerVoter(t, "V1", "v1@example.com")

	require.NoError(t, env.voting.CastVote(ctx, first.ID, first.Candidates[0].ID, voter.ID))

	// The has-voted flag is a one-time global mark, voting in another
	// election is rejected as well
	err := env.voting.CastVote(ctx, second.ID, second.Candidates[0].ID, voter.ID)
	assert.ErrorIs(t, err, repository.ErrAlreadyVoted)

	updated, err := env.elections.GetElection(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.TotalVotes)
}

func TestCastVote_VoterNotFound(t *testing.T) {
	env := newTestEnv(t)

	election := env.createActiveElection(t, "A", "B")

	err := env.voting.CastVote(context.Background(), election.ID, election.Candidates[0].ID, "missing")
	assert.ErrorIs(t, err, repository.ErrVoterNotFound)
}

func TestCastVote_ElectionNotFound(t *testing.T) {
	env := newTestEnv(t)

	voter := env.registerVoter(t, "V1", "v1@example.com")

	err := env.voting.CastVote(context.Background(), "missing", "whatever", voter.ID)
	assert.ErrorIs(t, err, repository.ErrElectionNotFound)
}

func TestCastVote_CandidateNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.createActiveElection(t, "A", "B")
	voter := env.registerVoter(t, "V1", "v1@example.com")

	err := env.voting.CastVote(ctx, election.ID, "missing", voter.ID)
	assert.ErrorIs(t, err, repository.ErrCandidateNotFound)

	// Rejection leaves the voter eligible
	unchanged, err := env.voters.GetVoter(ctx, voter.ID)
	require.NoError(t, err)
	assert.False(t, unchanged.HasVoted)
}

func TestCastVote_CompletedElection(t *testing.T) {
	env := newTestEnv(t)

	// Ended two days before the test clock
	election := env.createElection(t, env.now.Add(-72*time.Hour), env.now.Add(-48*time.Hour), "A", "B")
	voter := env.registerVoter(t, "V1", "v1@example.com")

	election2, err := env.elections.GetElection(context.Background(), election.ID)
	require.NoError(t, err)
	require.Equal(t, "completed", string(election2.Status))

	err = env.voting.CastVote(context.Background(), election.ID, election.Candidates[0].ID, voter.ID)
	assert.ErrorIs(t, err, ErrElectionNotActive)
}

func TestCastVote_UpcomingElection(t *testing.T) {
	env := newTestEnv(t)

	election := env.createElection(t, env.now.Add(24*time.Hour), env.now.Add(48*time.Hour), "A")
	voter := env.registerVoter(t, "V1", "v1@example.com")

	err := env.voting.CastVote(context.Background(), election.ID, election.Candidates[0].ID, voter.ID)
	assert.ErrorIs(t, err, ErrElectionNotActive)
}

func TestCastVote_TallyConservedOverSequence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.createActiveElection(t, "A", "B", "C")

	// Ten voters, votes spread over the candidates
	for i := 0; i < 10; i++ {
		voter := env.registerVoter(t, "V", string(rune('a'+i))+"@example.com")
		candidate := election.Candidates[i%3]
		require.NoError(t, env.voting.CastVote(ctx, election.ID, candidate.ID, voter.ID))
		env.assertTallyConserved(t, election.ID)
	}

	updated, err := env.elections.GetElection(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), updated.TotalVotes)
	assert.Equal(t, int64(4), updated.Candidates[0].Votes)
	assert.Equal(t, int64(3), updated.Candidates[1].Votes)
	assert.Equal(t, int64(3), updated.Candidates[2].Votes)
}

func TestCastVote_ConcurrentVotersSerialized(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.createActiveElection(t, "A", "B")
	candidateA := election.Candidates[0]

	const voters = 8
	ids := make([]string, voters)
	for i := 0; i < voters; i++ {
		ids[i] = env.registerVoter(t, "V", string(rune('a'+i))+"@example.com").ID
	}

	var wg sync.WaitGroup
	for _, voterID := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_ = env.voting.CastVote(ctx, election.ID, candidateA.ID, id)
		}(voterID)
	}
	wg.Wait()

	updated, err := env.elections.GetElection(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(voters), updated.TotalVotes)
	assert.Equal(t, int64(voters), updated.Candidates[0].Votes)
	env.assertTallyConserved(t, election.ID)
}

func TestCastVote_ConcurrentSameVoterOnlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.createActiveElection(t, "A", "B")
	voter := env.registerVoter(t, "V1", "v1@example.com")

	// Both goroutines race on the same check-then-act window; exactly one
	// vote may be accepted
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = env.voting.CastVote(ctx, election.ID, election.Candidates[i].ID, voter.ID)
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
		} else {
			assert.ErrorIs(t, err, repository.ErrAlreadyVoted)
		}
	}
	assert.Equal(t, 1, accepted)

	updated, err := env.elections.GetElection(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.TotalVotes)
	env.assertTallyConserved(t, election.ID)
}
