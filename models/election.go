package models

import (
	"time"
)

// ElectionStatus 选举生命周期状态，由时间窗口推导，不作为独立可变状态存储
type ElectionStatus string

const (
	StatusUpcoming  ElectionStatus = "upcoming"  // 未开始
	StatusActive    ElectionStatus = "active"    // 进行中
	StatusCompleted ElectionStatus = "completed" // 已结束
)

// Election represents a time-boxed contest with candidates and a vote tally.
type Election struct {
	ID          string      `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	StartDate   time.Time   `gorm:"not null" json:"start_date"`
	EndDate     time.Time   `gorm:"not null" json:"end_date"`
	VoterCount  int64       `gorm:"not null;default:0" json:"voter_count"`
	TotalVotes  int64       `gorm:"not null;default:0" json:"total_votes"`
	Candidates  []Candidate `gorm:"foreignKey:ElectionID;constraint:OnDelete:CASCADE" json:"candidates"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Status 为派生字段，读取时根据当前时间重新计算，不落库
	Status ElectionStatus `gorm:"-" json:"status"`
}

// Candidate represents an option a voter may select within one election.
type Candidate struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	ElectionID string    `gorm:"not null;index" json:"election_id"`
	Name       string    `gorm:"not null" json:"name"`
	Position   string    `json:"position"`
	Bio        string    `gorm:"type:text" json:"bio"`
	ImageURL   string    `json:"image_url"`
	Votes      int64     `gorm:"not null;default:0" json:"votes"`
	CreatedAt  time.Time `json:"created_at"`
}

// StatusAt 根据时间窗口计算选举状态：
// now < start 为 upcoming，start <= now <= end 为 active，now > end 为 completed
func (e *Election) StatusAt(now time.Time) ElectionStatus {
	if now.Before(e.StartDate) {
		return StatusUpcoming
	}
	if now.After(e.EndDate) {
		return StatusCompleted
	}
	return StatusActive
}

// ElectionsByStatus 按状态划分的三个互不重叠的选举集合
type ElectionsByStatus struct {
	Active    []*Election `json:"active"`
	Upcoming  []*Election `json:"upcoming"`
	Completed []*Election `json:"completed"`
}
