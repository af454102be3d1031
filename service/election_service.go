package service

import (
	"context"

	"election-management-backend/models"
	"election-management-backend/repository"
)

// ElectionService 选举存储服务：负责选举与候选人的管理及派生视图
type ElectionService struct {
	elections repository.ElectionRepository
	now       Clock
	newID     IDGenerator
}

// NewElectionService 创建选举服务
func NewElectionService(elections repository.ElectionRepository, now Clock, newID IDGenerator) *ElectionService {
	if now == nil {
		now = DefaultClock
	}
	if newID == nil {
		newID = DefaultIDGenerator
	}
	return &ElectionService{
		elections: elections,
		now:       now,
		newID:     newID,
	}
}

// CreateElection 创建选举活动。
// 输入必须先通过校验，总票数从0开始，状态由时间窗口推导。
func (s *ElectionService) CreateElection(ctx context.Context, input *models.CreateElectionInput) (*models.Election, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	election := &models.Election{
		ID:          s.newID(),
		Title:       input.Title,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		VoterCount:  input.VoterCount,
		TotalVotes:  0,
	}
	for _, c := range input.Candidates {
		election.Candidates = append(election.Candidates, models.Candidate{
			ID:         s.newID(),
			ElectionID: election.ID,
			Name:       c.Name,
			Position:   c.Position,
			Bio:        c.Bio,
			ImageURL:   c.ImageURL,
			Votes:      0,
			CreatedAt:  now,
		})
	}

	if err := s.elections.Create(ctx, election); err != nil {
		return nil, err
	}

	election.Status = election.StatusAt(now)
	return election, nil
}

// GetElection 获取选举详情，状态在每次读取时根据当前时间重新计算
func (s *ElectionService) GetElection(ctx context.Context, id string) (*models.Election, error) {
	election, err := s.elections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	election.Status = election.StatusAt(s.now())
	return election, nil
}

// DeleteElection 硬删除选举并级联删除候选人
func (s *ElectionService) DeleteElection(ctx context.Context, id string) error {
	return s.elections.Delete(ctx, id)
}

// AddCandidate 向选举追加候选人。
// 已结束的选举不允许再修改候选人名单。
func (s *ElectionService) AddCandidate(ctx context.Context, electionID string, input *models.CandidateInput) (*models.Candidate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	election, err := s.elections.GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if election.StatusAt(s.now()) == models.StatusCompleted {
		return nil, ErrInvalidState
	}

	candidate := &models.Candidate{
		ID:         s.newID(),
		ElectionID: electionID,
		Name:       input.Name,
		Position:   input.Position,
		Bio:        input.Bio,
		ImageURL:   input.ImageURL,
		Votes:      0,
		CreatedAt:  s.now(),
	}
	if err := s.elections.AddCandidate(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// ListByStatus 按状态划分选举列表。
// 状态依赖当前时间，每次调用都重新计算，不做缓存。
func (s *ElectionService) ListByStatus(ctx context.Context) (*models.ElectionsByStatus, error) {
	elections, err := s.elections.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	grouped := &models.ElectionsByStatus{
		Active:    make([]*models.Election, 0),
		Upcoming:  make([]*models.Election, 0),
		Completed: make([]*models.Election, 0),
	}
	for _, e := range elections {
		e.Status = e.StatusAt(now)
		switch e.Status {
		case models.StatusActive:
			grouped.Active = append(grouped.Active, e)
		case models.StatusUpcoming:
			grouped.Upcoming = append(grouped.Upcoming, e)
		case models.StatusCompleted:
			grouped.Completed = append(grouped.Completed, e)
		}
	}
	return grouped, nil
}

// GetResults 获取选举统计结果（纯派生，基于当前账本快照）
func (s *ElectionService) GetResults(ctx context.Context, electionID string) (*models.ElectionResults, error) {
	election, err := s.elections.GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	return models.BuildResults(election, s.now()), nil
}
