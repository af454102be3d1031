package handlers

import (
	"log"
	"net/http"

	"election-management-backend/models"
	"election-management-backend/service"

	"github.com/gin-gonic/gin"
)

// VoteHandler 处理投票请求
type VoteHandler struct {
	voting    *service.VotingService
	elections *service.ElectionService
}

// NewVoteHandler 创建投票处理器
func NewVoteHandler(voting *service.VotingService, elections *service.ElectionService) *VoteHandler {
	return &VoteHandler{voting: voting, elections: elections}
}

// CastVote 对选举投出一票。
// 被拒绝的投票是终态结果，调用方只能作为全新请求重新提交，没有重试语义。
func (h *VoteHandler) CastVote(c *gin.Context) {
	electionID := c.Param("id")

	var input models.CastVoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	err := h.voting.CastVote(c.Request.Context(), electionID, input.CandidateID, input.VoterID)
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, errorResponse{Error: msg})
		return
	}

	log.Printf("投票成功: Election=%s, Candidate=%s, Voter=%s", electionID, input.CandidateID, input.VoterID)

	// 返回提交后的最新统计，供调用方立即展示
	results, err := h.elections.GetResults(c.Request.Context(), electionID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Vote submitted successfully"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Vote submitted successfully",
		"current_results": results,
	})
}
