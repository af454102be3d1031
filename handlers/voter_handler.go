package handlers

import (
	"log"
	"net/http"

	"election-management-backend/models"
	"election-management-backend/service"

	"github.com/gin-gonic/gin"
)

// VoterHandler 处理选民登记相关API请求
type VoterHandler struct {
	voters *service.VoterService
}

// NewVoterHandler 创建选民处理器
func NewVoterHandler(voters *service.VoterService) *VoterHandler {
	return &VoterHandler{voters: voters}
}

// AddVoter 登记新选民
func (h *VoterHandler) AddVoter(c *gin.Context) {
	var input models.AddVoterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	voter, err := h.voters.AddVoter(c.Request.Context(), &input)
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, errorResponse{Error: msg})
		return
	}

	log.Printf("选民登记成功: ID=%s, Email=%s", voter.ID, voter.Email)
	c.JSON(http.StatusCreated, voter)
}

// ListVoters 列出全部选民
func (h *VoterHandler) ListVoters(c *gin.Context) {
	voters, err := h.voters.ListVoters(c.Request.Context())
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, errorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, voters)
}

// GetVoter 获取单个选民
func (h *VoterHandler) GetVoter(c *gin.Context) {
	voter, err := h.voters.GetVoter(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, errorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, voter)
}
