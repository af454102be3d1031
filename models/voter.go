package models

import "time"

// Voter represents a registered individual eligible to cast one vote.
// HasVoted/ElectionID 只允许一次性从 (false, nil) 变为 (true, 选举ID)，由投票服务独占修改
type Voter struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Email      string    `gorm:"not null;uniqueIndex" json:"email"`
	HasVoted   bool      `gorm:"not null;default:false" json:"has_voted"`
	ElectionID *string   `json:"election_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
