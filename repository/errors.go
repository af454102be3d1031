package repository

import "errors"

// 数据访问层错误定义
var (
	// ErrElectionNotFound 选举不存在
	ErrElectionNotFound = errors.New("election not found")
	// ErrCandidateNotFound 候选人不存在
	ErrCandidateNotFound = errors.New("candidate not found")
	// ErrVoterNotFound 选民不存在
	ErrVoterNotFound = errors.New("voter not found")
	// ErrEmailTaken 邮箱已被注册
	ErrEmailTaken = errors.New("email already registered")
	// ErrAlreadyVoted 选民已经投过票
	ErrAlreadyVoted = errors.New("voter has already voted")
)
