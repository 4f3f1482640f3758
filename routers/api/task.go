package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// 查询任务状态：GET /v1/api/tasks/:task_id
func (h *Handler) GetTaskStatus(c *gin.Context) {
	t, ok := h.Repo.GetTask(c.Request.Context(), c.Param("task_id"))
	if !ok {
		h.handleError(c, ErrTaskNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": t})
}

// 任务进度 WebSocket 推送：先推送当前状态，之后轮询存储，
// 状态或进度变化时推送，任务结束或客户端断开后关闭连接。
func (h *Handler) TaskProgressWebSocket(c *gin.Context) {
	taskID := c.Param("task_id")
	ctx := c.Request.Context()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("taskId", taskID).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	t, ok := h.Repo.GetTask(ctx, taskID)
	if !ok {
		_ = conn.WriteJSON(gin.H{"error": "task not found"})
		return
	}
	if err := conn.WriteJSON(t); err != nil || t.Done() {
		return
	}

	// 客户端不会发消息；读取失败说明连接已断开，结束轮询
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	poll := h.TaskPoll
	if poll <= 0 {
		poll = time.Second
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	prevStatus := t.Status
	prevProgress := t.Progress
	prevMessage := t.Message

	for {
		select {
		case <-ctx.Done():
			return
		case <-closed:
			h.logger.Debug().Str("taskId", taskID).Msg("websocket client disconnected")
			return
		case <-ticker.C:
		}

		cur, ok := h.Repo.GetTask(ctx, taskID)
		if !ok {
			continue
		}
		if cur.Status == prevStatus && cur.Progress == prevProgress && cur.Message == prevMessage {
			continue
		}
		if err := conn.WriteJSON(cur); err != nil {
			return
		}
		prevStatus, prevProgress, prevMessage = cur.Status, cur.Progress, cur.Message

		if cur.Done() {
			return
		}
	}
}
