package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GET /v1/api/settings/api-key，只返回是否已配置，不回显 key
func (h *Handler) GetAPIKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"configured": h.Keys.Configured(c.Request.Context())})
}

// PUT /v1/api/settings/api-key
func (h *Handler) SaveAPIKey(c *gin.Context) {
	var req struct {
		APIKey string `json:"apiKey" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, ErrInvalidInput(err))
		return
	}
	ctx := c.Request.Context()
	if err := h.Keys.Save(ctx, strings.TrimSpace(req.APIKey)); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"configured": h.Keys.Configured(ctx)})
}

// DELETE /v1/api/settings/api-key
// 配置文件或环境变量中的 key 不受影响
func (h *Handler) ClearAPIKey(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.Keys.Clear(ctx); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"configured": h.Keys.Configured(ctx)})
}

// 恢复示例数据：POST /v1/api/admin/reset
func (h *Handler) ResetData(c *gin.Context) {
	h.Repo.Reset(c.Request.Context())
	h.logger.Info().Msg("data reset to seed")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// 清空数据，下次读取时重新写入示例数据：POST /v1/api/admin/clear
func (h *Handler) ClearData(c *gin.Context) {
	h.Repo.Clear(c.Request.Context())
	h.logger.Info().Msg("data cleared")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
