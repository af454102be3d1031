package repository

import (
	"context"
	"errors"

	"election-management-backend/models"

	"gorm.io/gorm"
)

// ElectionRepository 定义选举数据访问接口
type ElectionRepository interface {
	// 选举相关方法
	Create(ctx context.Context, election *models.Election) error
	GetByID(ctx context.Context, id string) (*models.Election, error)
	List(ctx context.Context) ([]*models.Election, error)
	Delete(ctx context.Context, id string) error

	// 候选人相关方法
	AddCandidate(ctx context.Context, candidate *models.Candidate) error

	// IncrementTally 原子增加候选人票数和选举总票数。
	// 只允许投票账本在其事务内调用，其他组件不得修改计票字段。
	IncrementTally(ctx context.Context, electionID, candidateID string) error

	// WithTx 返回绑定到给定事务句柄的仓库实例
	WithTx(tx *gorm.DB) ElectionRepository
}

// GormElectionRepository 基于GORM的选举数据仓库
type GormElectionRepository struct {
	db *gorm.DB
}

// NewElectionRepository 创建选举数据仓库
func NewElectionRepository(db *gorm.DB) *GormElectionRepository {
	return &GormElectionRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *GormElectionRepository) WithTx(tx *gorm.DB) ElectionRepository {
	return &GormElectionRepository{db: tx}
}

// Create 创建选举及其候选人
func (r *GormElectionRepository) Create(ctx context.Context, election *models.Election) error {
	return r.db.WithContext(ctx).Create(election).Error
}

// GetByID 获取选举详情，候选人按创建顺序排列
func (r *GormElectionRepository) GetByID(ctx context.Context, id string) (*models.Election, error) {
	var election models.Election
	err := r.db.WithContext(ctx).
		Preload("Candidates", func(db *gorm.DB) *gorm.DB {
			return db.Order("candidates.created_at ASC")
		}).
		First(&election, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrElectionNotFound
		}
		return nil, err
	}
	return &election, nil
}

// List 列出全部选举
func (r *GormElectionRepository) List(ctx context.Context) ([]*models.Election, error) {
	var elections []*models.Election
	err := r.db.WithContext(ctx).
		Preload("Candidates", func(db *gorm.DB) *gorm.DB {
			return db.Order("candidates.created_at ASC")
		}).
		Order("created_at ASC").
		Find(&elections).Error
	if err != nil {
		return nil, err
	}
	return elections, nil
}

// Delete 删除选举并级联删除其候选人
func (r *GormElectionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Election{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrElectionNotFound
		}
		// 级联删除候选人
		return tx.Delete(&models.Candidate{}, "election_id = ?", id).Error
	})
}

// AddCandidate 向选举追加候选人
func (r *GormElectionRepository) AddCandidate(ctx context.Context, candidate *models.Candidate) error {
	return r.db.WithContext(ctx).Create(candidate).Error
}

// IncrementTally 原子增加候选人票数和选举总票数
func (r *GormElectionRepository) IncrementTally(ctx context.Context, electionID, candidateID string) error {
	// 候选人票数+1，候选人必须属于该选举
	result := r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("id = ? AND election_id = ?", candidateID, electionID).
		UpdateColumn("votes", gorm.Expr("votes + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCandidateNotFound
	}

	// 选举总票数+1
	result = r.db.WithContext(ctx).Model(&models.Election{}).
		Where("id = ?", electionID).
		UpdateColumn("total_votes", gorm.Expr("total_votes + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrElectionNotFound
	}
	return nil
}
