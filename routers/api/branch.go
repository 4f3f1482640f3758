package api

import (
	"errors"
	"net/http"
	"strings"

	"genvo-server/models"

	"github.com/gin-gonic/gin"
)

// 所有分支：GET /v1/api/branches
func (h *Handler) ListBranches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"branches": h.Repo.ListBranches(c.Request.Context())})
}

// 项目下的分支：GET /v1/api/projects/:project_id/branches
func (h *Handler) ListProjectBranches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"branches": h.Repo.ListBranchesByProject(c.Request.Context(), c.Param("project_id"))})
}

// 创建分支：POST /v1/api/projects/:project_id/branches
func (h *Handler) CreateBranch(c *gin.Context) {
	var req struct {
		Name          string                    `json:"name"`
		BaseVersionId string                    `json:"baseVersionId"`
		Prompt        string                    `json:"prompt"`
		Settings      models.GenerationSettings `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, ErrInvalidInput(err))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		h.handleError(c, ErrInvalidInput(errors.New("branch name is required")))
		return
	}
	ctx := c.Request.Context()
	projectID := c.Param("project_id")
	if _, ok := h.Repo.GetProject(ctx, projectID); !ok {
		h.handleError(c, ErrProjectNotFound)
		return
	}
	b := h.Repo.CreateBranch(ctx, projectID, req.Name, req.BaseVersionId, req.Prompt, req.Settings)
	c.JSON(http.StatusCreated, gin.H{"branch": b})
}

// 分支详情：GET /v1/api/branches/:branch_id
func (h *Handler) GetBranch(c *gin.Context) {
	b, ok := h.Repo.GetBranch(c.Request.Context(), c.Param("branch_id"))
	if !ok {
		h.handleError(c, ErrBranchNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"branch": b})
}

// 更新分支：PUT /v1/api/branches/:branch_id
func (h *Handler) UpdateBranch(c *gin.Context) {
	var patch models.BranchPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.handleError(c, ErrInvalidInput(err))
		return
	}
	b, ok := h.Repo.UpdateBranch(c.Request.Context(), c.Param("branch_id"), patch)
	if !ok {
		h.handleError(c, ErrBranchNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"branch": b})
}

// 删除分支：DELETE /v1/api/branches/:branch_id
func (h *Handler) DeleteBranch(c *gin.Context) {
	if !h.Repo.DeleteBranch(c.Request.Context(), c.Param("branch_id")) {
		h.handleError(c, ErrBranchNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// 生成分支视频：POST /v1/api/branches/:branch_id/generate
// 默认 demo 模式直接完成；?async=true 时投递真实生成任务
func (h *Handler) GenerateBranch(c *gin.Context) {
	ctx := c.Request.Context()
	branchID := c.Param("branch_id")

	if c.Query("async") != "true" {
		b, ok := h.Versions.GenerateBranchVideo(ctx, branchID)
		if !ok {
			h.handleError(c, ErrBranchNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"branch": b})
		return
	}

	task, err := h.Generation.StartBranchGeneration(ctx, branchID, c.Query("model"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"task": task})
}
