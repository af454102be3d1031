package handlers

import (
	"log"
	"net/http"

	"election-management-backend/models"
	"election-management-backend/service"

	"github.com/gin-gonic/gin"
)

// ElectionHandler 处理选举管理相关API请求
type ElectionHandler struct {
	elections *service.ElectionService
}

// NewElectionHandler 创建选举处理器
func NewElectionHandler(elections *service.ElectionService) *ElectionHandler {
	return &ElectionHandler{elections: elections}
}

// CreateElection handles the creation of a new election
func (h *ElectionHandler) CreateElection(c *gin.Context) {
	var input models.CreateElectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	election, err := h.elections.CreateElection(c.Request.Context(), &input)
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, errorResponse{Error: msg})
		return
	}

	log.Printf("选举创建成功: ID=%s, Title=%s", election.ID, election.Title)
	c.JSON(http.StatusCreated, election)
}

// ListElections 按状态分组返回全部选举，分组在每次请求时按当前时间重新计算
func (h *ElectionHandler) ListElections(c *gin.Context) {
	grouped, err := h.elections.ListByStatus(c.Request.Context())
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, errorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, grouped)
}

// GetElection 获取单个选举详情
func (h *ElectionHandler) GetElection(c *gin.Context) {
	election, err := h.elections.GetElection(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, errorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, election)
}

// DeleteElection 删除选举及其全部候选人
func (h *ElectionHandler) DeleteElection(c *gin.Context) {
	if err := h.elections.DeleteElection(c.Request.Context(), c.Param("id")); err != nil {
		status, msg := statusForError(err)
		c.JSON(status, errorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Election deleted successfully"})
}

// AddCandidate 向选举追加候选人
func (h *ElectionHandler) AddCandidate(c *gin.Context) {
	var input models.CandidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	candidate, err := h.elections.AddCandidate(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, errorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusCreated, candidate)
}

// GetResults 获取选举统计结果
func (h *ElectionHandler) GetResults(c *gin.Context) {
	results, err := h.elections.GetResults(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, errorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, results)
}
