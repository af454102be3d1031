package models

import (
	"fmt"
	"net/mail"
	"time"
)

// ValidationError 输入校验错误，必须在触达存储层之前被拦截
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// CandidateInput 创建候选人的输入
type CandidateInput struct {
	Name     string `json:"name" binding:"required"`
	Position string `json:"position"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url"`
}

// Validate 校验候选人输入
func (in *CandidateInput) Validate() error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Message: "candidate name is required"}
	}
	return nil
}

// CreateElectionInput 创建选举的输入
type CreateElectionInput struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	StartDate   time.Time        `json:"start_date" binding:"required"`
	EndDate     time.Time        `json:"end_date" binding:"required"`
	VoterCount  int64            `json:"voter_count" binding:"required"`
	Candidates  []CandidateInput `json:"candidates"`
}

// Validate 校验选举输入：标题必填，结束时间必须晚于开始时间，选民数必须为正
func (in *CreateElectionInput) Validate() error {
	if in.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return &ValidationError{Field: "start_date", Message: "start and end dates are required"}
	}
	if !in.EndDate.After(in.StartDate) {
		return &ValidationError{Field: "end_date", Message: "end date must be after start date"}
	}
	if in.VoterCount <= 0 {
		return &ValidationError{Field: "voter_count", Message: "voter count must be positive"}
	}
	for i := range in.Candidates {
		if err := in.Candidates[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AddVoterInput 登记选民的输入
type AddVoterInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// Validate 校验选民输入
func (in *AddVoterInput) Validate() error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Message: "voter name is required"}
	}
	if in.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return &ValidationError{Field: "email", Message: "malformed email address"}
	}
	return nil
}

// CastVoteInput 投票请求输入
type CastVoteInput struct {
	CandidateID string `json:"candidate_id" binding:"required"`
	VoterID     string `json:"voter_id" binding:"required"`
}
