package handlers

import (
	"errors"
	"net/http"

	"election-management-backend/models"
	"election-management-backend/repository"
	"election-management-backend/service"
)

// errorResponse 错误响应统一格式
type errorResponse struct {
	Error string `json:"error"`
}

// statusForError 将业务错误种类映射为HTTP状态码和面向用户的消息。
// 错误只在此处翻译一次，服务层负责产出类型化错误，不负责渲染。
func statusForError(err error) (int, string) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}

	switch {
	case errors.Is(err, repository.ErrElectionNotFound):
		return http.StatusNotFound, "Election not found"
	case errors.Is(err, repository.ErrCandidateNotFound):
		return http.StatusNotFound, "Candidate not found"
	case errors.Is(err, repository.ErrVoterNotFound):
		return http.StatusNotFound, "Voter not found"
	case errors.Is(err, repository.ErrEmailTaken):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, repository.ErrAlreadyVoted):
		return http.StatusConflict, "You have already voted"
	case errors.Is(err, service.ErrElectionNotActive):
		return http.StatusForbidden, "Voting on this election is closed"
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict, "Election state does not allow this operation"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
