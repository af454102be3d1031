package service

import (
	"context"

	"election-management-backend/models"
	"election-management-backend/repository"
)

// VoterService 选民登记服务：负责选民的登记与查询。
// 已投票标记只能由投票账本修改，本服务不暴露任何写入该标记的入口。
type VoterService struct {
	voters repository.VoterRepository
	newID  IDGenerator
}

// NewVoterService 创建选民服务
func NewVoterService(voters repository.VoterRepository, newID IDGenerator) *VoterService {
	if newID == nil {
		newID = DefaultIDGenerator
	}
	return &VoterService{
		voters: voters,
		newID:  newID,
	}
}

// AddVoter 登记选民，邮箱重复时返回ErrEmailTaken
func (s *VoterService) AddVoter(ctx context.Context, input *models.AddVoterInput) (*models.Voter, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	voter := &models.Voter{
		ID:       s.newID(),
		Name:     input.Name,
		Email:    input.Email,
		HasVoted: false,
	}
	if err := s.voters.Create(ctx, voter); err != nil {
		return nil, err
	}
	return voter, nil
}

// GetVoter 获取选民
func (s *VoterService) GetVoter(ctx context.Context, id string) (*models.Voter, error) {
	return s.voters.GetByID(ctx, id)
}

// ListVoters 列出全部选民
func (s *VoterService) ListVoters(ctx context.Context) ([]*models.Voter, error) {
	return s.voters.List(ctx)
}
