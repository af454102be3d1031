package models

import (
	"sort"
	"time"
)

// ElectionResults 选举统计结果，纯派生，无存储状态
type ElectionResults struct {
	ElectionID        string            `json:"election_id"`
	Title             string            `json:"title"`
	Status            ElectionStatus    `json:"status"`
	TotalVotes        int64             `json:"total_votes"`
	VoterCount        int64             `json:"voter_count"`
	ParticipationRate float64           `json:"participation_rate"`
	Candidates        []CandidateResult `json:"candidates"`
	Winner            *CandidateResult  `json:"winner,omitempty"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// CandidateResult 单个候选人的统计结果
type CandidateResult struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Votes       int64   `json:"votes"`
	Percentage  float64 `json:"percentage"`
}

// Ranking returns candidates sorted descending by votes. Ties keep the
// original insertion order; there is no secondary tiebreak rule.
func Ranking(e *Election) []Candidate {
	ranked := make([]Candidate, len(e.Candidates))
	copy(ranked, e.Candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Votes > ranked[j].Votes
	})
	return ranked
}

// Winner returns the top-ranked candidate, or nil when no vote has been
// cast or the top two candidates are tied.
func Winner(e *Election) *Candidate {
	ranked := Ranking(e)
	if len(ranked) == 0 || e.TotalVotes == 0 || ranked[0].Votes == 0 {
		return nil
	}
	if len(ranked) > 1 && ranked[0].Votes == ranked[1].Votes {
		return nil
	}
	top := ranked[0]
	return &top
}

// ParticipationRate 参与率 = 总票数 / 预期选民数，选民数不为正时返回0而不是崩溃
func ParticipationRate(e *Election) float64 {
	if e.VoterCount <= 0 {
		return 0
	}
	return float64(e.TotalVotes) / float64(e.VoterCount)
}

// BuildResults 基于选举快照构建统计结果
func BuildResults(e *Election, now time.Time) *ElectionResults {
	results := &ElectionResults{
		ElectionID:        e.ID,
		Title:             e.Title,
		Status:            e.StatusAt(now),
		TotalVotes:        e.TotalVotes,
		VoterCount:        e.VoterCount,
		ParticipationRate: ParticipationRate(e),
		Candidates:        make([]CandidateResult, 0, len(e.Candidates)),
		UpdatedAt:         now,
	}

	for _, c := range Ranking(e) {
		cr := CandidateResult{
			CandidateID: c.ID,
			Name:        c.Name,
			Position:    c.Position,
			Votes:       c.Votes,
		}
		if e.TotalVotes > 0 {
			cr.Percentage = float64(c.Votes) / float64(e.TotalVotes) * 100
		}
		results.Candidates = append(results.Candidates, cr)
	}

	if w := Winner(e); w != nil {
		for i := range results.Candidates {
			if results.Candidates[i].CandidateID == w.ID {
				results.Winner = &results.Candidates[i]
				break
			}
		}
	}

	return results
}
