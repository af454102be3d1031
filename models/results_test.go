package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func electionWithVotes(votes ...int64) *Election {
	e := &Election{
		ID:         "e1",
		Title:      "Test Election",
		VoterCount: 100,
	}
	names := []string{"A", "B", "C", "D", "E"}
	var total int64
	for i, v := range votes {
		e.Candidates = append(e.Candidates, Candidate{
			ID:    names[i],
			Name:  names[i],
			Votes: v,
		})
		total += v
	}
	e.TotalVotes = total
	return e
}

func TestStatusAt(t *testing.T) {
	start := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 25, 0, 0, 0, 0, time.UTC)
	e := &Election{StartDate: start, EndDate: end}

	tests := []struct {
		name     string
		now      time.Time
		expected ElectionStatus
	}{
		{"well before start", start.Add(-30 * 24 * time.Hour), StatusUpcoming},
		{"just before start", start.Add(-time.Second), StatusUpcoming},
		{"exactly at start", start, StatusActive},
		{"in the middle", start.Add(7 * 24 * time.Hour), StatusActive},
		{"exactly at end", end, StatusActive},
		{"just after end", end.Add(time.Second), StatusCompleted},
		{"long after end", end.Add(365 * 24 * time.Hour), StatusCompleted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, e.StatusAt(tc.now))
		})
	}
}

func TestRanking_SortsByVotesDescending(t *testing.T) {
	e := electionWithVotes(5, 10, 9)

	ranked := Ranking(e)

	assert.Len(t, ranked, 3)
	assert.Equal(t, int64(10), ranked[0].Votes)
	assert.Equal(t, int64(9), ranked[1].Votes)
	assert.Equal(t, int64(5), ranked[2].Votes)
	// Original slice untouched
	assert.Equal(t, int64(5), e.Candidates[0].Votes)
}

func TestRanking_TiesKeepInsertionOrder(t *testing.T) {
	e := electionWithVotes(10, 10, 5)

	ranked := Ranking(e)

	// The tie policy is stable original order, no secondary tiebreak
	assert.Equal(t, "A", ranked[0].ID)
	assert.Equal(t, "B", ranked[1].ID)
	assert.Equal(t, "C", ranked[2].ID)
}

func TestWinner_ClearLead(t *testing.T) {
	e := electionWithVotes(10, 9, 5)

	w := Winner(e)

	assert.NotNil(t, w)
	assert.Equal(t, "A", w.ID)
}

func TestWinner_TieAtTop(t *testing.T) {
	e := electionWithVotes(10, 10, 5)

	assert.Nil(t, Winner(e))
}

func TestWinner_NoVotesCast(t *testing.T) {
	e := electionWithVotes(0, 0)

	assert.Nil(t, Winner(e))
}

func TestWinner_SingleCandidate(t *testing.T) {
	e := electionWithVotes(3)

	w := Winner(e)

	assert.NotNil(t, w)
	assert.Equal(t, "A", w.ID)
}

func TestWinner_NoCandidates(t *testing.T) {
	e := &Election{ID: "empty"}

	assert.Nil(t, Winner(e))
}

func TestParticipationRate(t *testing.T) {
	e := electionWithVotes(30, 24)
	assert.InDelta(t, 0.54, ParticipationRate(e), 0.0001)

	// voterCount = 0 must not crash, rate is 0
	e.VoterCount = 0
	assert.Equal(t, 0.0, ParticipationRate(e))
}

func TestBuildResults(t *testing.T) {
	e := electionWithVotes(25, 17, 12)
	now := time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)
	e.StartDate = now.Add(-24 * time.Hour)
	e.EndDate = now.Add(24 * time.Hour)

	results := BuildResults(e, now)

	assert.Equal(t, StatusActive, results.Status)
	assert.Equal(t, int64(54), results.TotalVotes)
	assert.InDelta(t, 0.54, results.ParticipationRate, 0.0001)
	assert.Len(t, results.Candidates, 3)
	assert.Equal(t, "A", results.Candidates[0].CandidateID)
	assert.InDelta(t, 25.0/54.0*100, results.Candidates[0].Percentage, 0.0001)
	assert.NotNil(t, results.Winner)
	assert.Equal(t, "A", results.Winner.CandidateID)
}

func TestBuildResults_TieHasNoWinner(t *testing.T) {
	e := electionWithVotes(10, 10, 5)
	results := BuildResults(e, time.Now())

	assert.Nil(t, results.Winner)
}
