package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"election-management-backend/service"
	"election-management-backend/websocket"

	"github.com/gin-gonic/gin"
)

// SSEHandler 通过Server-Sent Events推送选举结果更新
type SSEHandler struct {
	hub       *websocket.Hub
	elections *service.ElectionService
}

// NewSSEHandler 创建SSE处理器
func NewSSEHandler(hub *websocket.Hub, elections *service.ElectionService) *SSEHandler {
	return &SSEHandler{hub: hub, elections: elections}
}

// HandleSSE 处理SSE连接请求
func (h *SSEHandler) HandleSSE(c *gin.Context) {
	electionID := c.Param("id")

	// 验证选举存在
	if _, err := h.elections.GetElection(c.Request.Context(), electionID); err != nil {
		status, msg := statusForError(err)
		c.JSON(status, errorResponse{Error: msg})
		return
	}

	// 设置SSE所需的HTTP头
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Streaming not supported"})
		return
	}

	// 订阅该选举的结果广播
	updates := h.hub.Listen(electionID)
	defer h.hub.Unlisten(electionID, updates)

	log.Printf("已注册SSE客户端, 选举ID: %s, 客户端IP: %s", electionID, c.ClientIP())

	// 发送初始结果快照
	if results, err := h.elections.GetResults(c.Request.Context(), electionID); err == nil {
		if payload, err := json.Marshal(results); err == nil {
			fmt.Fprintf(c.Writer, "event: results\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}

	// 持续推送更新直到客户端断开
	for {
		select {
		case payload, ok := <-updates:
			if !ok {
				return
			}
			fmt.Fprintf(c.Writer, "event: results\ndata: %s\n\n", payload)
			flusher.Flush()
		case <-c.Request.Context().Done():
			log.Printf("SSE客户端断开, 选举ID: %s", electionID)
			return
		}
	}
}
