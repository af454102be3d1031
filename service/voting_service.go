package service

import (
	"context"
	"log"
	"sync"

	"election-management-backend/models"
	"election-management-backend/repository"

	"gorm.io/gorm"
)

// ResultsBroadcaster 投票成功后的结果通知通道（fire-and-forget）
type ResultsBroadcaster interface {
	BroadcastResults(electionID string, results *models.ElectionResults)
}

// VotingService 投票账本：唯一允许修改计票字段和已投票标记的组件。
// CastVote是单一事务性操作，要么三项更新全部提交，要么全部不生效。
type VotingService struct {
	db        *gorm.DB
	elections repository.ElectionRepository
	voters    repository.VoterRepository
	hub       ResultsBroadcaster
	now       Clock

	// mu 串行化投票，防止两个并发请求同时读到"未投票"的检查后行动竞态
	mu sync.Mutex
}

// NewVotingService 创建投票账本服务
func NewVotingService(db *gorm.DB, elections repository.ElectionRepository, voters repository.VoterRepository, hub ResultsBroadcaster, now Clock) *VotingService {
	if now == nil {
		now = DefaultClock
	}
	return &VotingService{
		db:        db,
		elections: elections,
		voters:    voters,
		hub:       hub,
		now:       now,
	}
}

// CastVote 对指定选举的指定候选人投出一票。
// 校验顺序：选民存在 → 未投过票 → 选举存在 → 选举进行中 → 候选人存在，
// 然后在一个事务内提交候选人票数、选举总票数和选民标记三项更新。
// 被拒绝的投票不产生任何状态变化，也没有重试语义。
func (s *VotingService) CastVote(ctx context.Context, electionID, candidateID, voterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 1. 选民必须存在
	voter, err := s.voters.GetByID(ctx, voterID)
	if err != nil {
		return err
	}

	// 2. 选民不能已经投过票（全局一次性标记，不限于本选举）
	if voter.HasVoted {
		return repository.ErrAlreadyVoted
	}

	// 3. 选举必须存在
	election, err := s.elections.GetByID(ctx, electionID)
	if err != nil {
		return err
	}

	// 4. 选举必须处于进行中状态（按调用时刻计算）
	if election.StatusAt(s.now()) != models.StatusActive {
		return ErrElectionNotActive
	}

	// 5. 候选人必须属于该选举
	found := false
	for i := range election.Candidates {
		if election.Candidates[i].ID == candidateID {
			found = true
			break
		}
	}
	if !found {
		return repository.ErrCandidateNotFound
	}

	// 6. 原子提交：候选人票数+1，总票数+1，选民标记为已投票
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.elections.WithTx(tx).IncrementTally(ctx, electionID, candidateID); err != nil {
			return err
		}
		return s.voters.WithTx(tx).MarkVoted(ctx, voterID, electionID)
	})
	if err != nil {
		return err
	}

	// 7. 推送最新结果给订阅者
	if s.hub != nil {
		go s.broadcastResults(electionID)
	}

	return nil
}

// broadcastResults 重新读取账本快照并广播统计结果
func (s *VotingService) broadcastResults(electionID string) {
	election, err := s.elections.GetByID(context.Background(), electionID)
	if err != nil {
		log.Printf("广播前读取选举 %s 失败: %v", electionID, err)
		return
	}
	s.hub.BroadcastResults(electionID, models.BuildResults(election, s.now()))
}
