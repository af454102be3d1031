package service

import "errors"

var (
	// ErrElectionNotActive 选举不在进行中窗口内，不能投票
	ErrElectionNotActive = errors.New("election is not active")
	// ErrInvalidState 选举生命周期状态不允许该结构性修改
	ErrInvalidState = errors.New("election state does not allow this operation")
)
