package repository

import (
	"context"
	"errors"

	"election-management-backend/models"

	"gorm.io/gorm"
)

// VoterRepository 定义选民数据访问接口
type VoterRepository interface {
	Create(ctx context.Context, voter *models.Voter) error
	GetByID(ctx context.Context, id string) (*models.Voter, error)
	GetByEmail(ctx context.Context, email string) (*models.Voter, error)
	List(ctx context.Context) ([]*models.Voter, error)

	// MarkVoted 一次性将选民标记为已投票并记录所投选举。
	// 只允许投票账本在其事务内调用，保证与计票更新的原子性。
	MarkVoted(ctx context.Context, voterID, electionID string) error

	// WithTx 返回绑定到给定事务句柄的仓库实例
	WithTx(tx *gorm.DB) VoterRepository
}

// GormVoterRepository 基于GORM的选民数据仓库
type GormVoterRepository struct {
	db *gorm.DB
}

// NewVoterRepository 创建选民数据仓库
func NewVoterRepository(db *gorm.DB) *GormVoterRepository {
	return &GormVoterRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *GormVoterRepository) WithTx(tx *gorm.DB) VoterRepository {
	return &GormVoterRepository{db: tx}
}

// Create 登记选民，邮箱重复时返回ErrEmailTaken
func (r *GormVoterRepository) Create(ctx context.Context, voter *models.Voter) error {
	// 邮箱唯一性检查
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Voter{}).
		Where("email = ?", voter.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return r.db.WithContext(ctx).Create(voter).Error
}

// GetByID 获取选民
func (r *GormVoterRepository) GetByID(ctx context.Context, id string) (*models.Voter, error) {
	var voter models.Voter
	err := r.db.WithContext(ctx).First(&voter, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoterNotFound
		}
		return nil, err
	}
	return &voter, nil
}

// GetByEmail 根据邮箱获取选民
func (r *GormVoterRepository) GetByEmail(ctx context.Context, email string) (*models.Voter, error) {
	var voter models.Voter
	err := r.db.WithContext(ctx).First(&voter, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoterNotFound
		}
		return nil, err
	}
	return &voter, nil
}

// List 列出全部选民
func (r *GormVoterRepository) List(ctx context.Context) ([]*models.Voter, error) {
	var voters []*models.Voter
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&voters).Error
	if err != nil {
		return nil, err
	}
	return voters, nil
}

// MarkVoted 将选民标记为已投票。
// WHERE条件里带has_voted=false，已投过票时不会命中任何行，返回ErrAlreadyVoted
func (r *GormVoterRepository) MarkVoted(ctx context.Context, voterID, electionID string) error {
	result := r.db.WithContext(ctx).Model(&models.Voter{}).
		Where("id = ? AND has_voted = ?", voterID, false).
		Updates(map[string]interface{}{
			"has_voted":   true,
			"election_id": electionID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// 区分不存在与已投票
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Voter{}).
			Where("id = ?", voterID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrVoterNotFound
		}
		return ErrAlreadyVoted
	}
	return nil
}
