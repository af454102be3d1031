package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"election-management-backend/database"
	"election-management-backend/models"
	"election-management-backend/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires the full service stack over a private in-memory database,
// with a fixed injectable clock.
type testEnv struct {
	db        *gorm.DB
	elections *ElectionService
	voters    *VoterService
	voting    *VotingService
	now       time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// A uniquely named shared-cache memory DB keeps tests isolated from
	// each other while still working with gorm's connection pool.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.InitDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseDB(db) })

	env := &testEnv{
		db:  db,
		now: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return env.now }

	electionRepo := repository.NewElectionRepository(db)
	voterRepo := repository.NewVoterRepository(db)
	env.elections = NewElectionService(electionRepo, clock, nil)
	env.voters = NewVoterService(voterRepo, nil)
	env.voting = NewVotingService(db, electionRepo, voterRepo, nil, clock)

	return env
}

// createActiveElection creates an election whose window spans yesterday to
// tomorrow relative to the test clock, with the given candidate names.
func (env *testEnv) createActiveElection(t *testing.T, candidates ...string) *models.Election {
	t.Helper()
	return env.createElection(t, env.now.Add(-24*time.Hour), env.now.Add(24*time.Hour), candidates...)
}

func (env *testEnv) createElection(t *testing.T, start, end time.Time, candidates ...string) *models.Election {
	t.Helper()

	input := &models.CreateElectionInput{
		Title:      "Student Council Election",
		StartDate:  start,
		EndDate:    end,
		VoterCount: 2,
	}
	for _, name := range candidates {
		input.Candidates = append(input.Candidates, models.CandidateInput{Name: name})
	}

	election, err := env.elections.CreateElection(context.Background(), input)
	require.NoError(t, err)
	return election
}

func (env *testEnv) registerVoter(t *testing.T, name, email string) *models.Voter {
	t.Helper()
	voter, err := env.voters.AddVoter(context.Background(), &models.AddVoterInput{Name: name, Email: email})
	require.NoError(t, err)
	return voter
}

// assertTallyConserved checks the core ledger invariant:
// totalVotes equals the sum of candidate votes.
func (env *testEnv) assertTallyConserved(t *testing.T, electionID string) {
	t.Helper()
	election, err := env.elections.GetElection(context.Background(), electionID)
	require.NoError(t, err)

	var sum int64
	for _, c := range election.Candidates {
		sum += c.Votes
	}
	require.Equal(t, election.TotalVotes, sum, "totalVotes must equal the sum of candidate votes")
}
