package api

import (
	"net/http"

	"genvo-server/diff"
	"genvo-server/models"
	"genvo-server/service"

	"github.com/gin-gonic/gin"
)

// 直接追加版本：POST /v1/api/projects/:project_id/versions
func (h *Handler) AddVersion(c *gin.Context) {
	var req struct {
		Prompt    string                    `json:"prompt"`
		Settings  models.GenerationSettings `json:"settings"`
		VideoUrl  string                    `json:"videoUrl"`
		Thumbnail string                    `json:"thumbnail"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, ErrInvalidInput(err))
		return
	}
	v, ok := h.Versions.AddVersion(c.Request.Context(), c.Param("project_id"), req.Prompt, req.Settings, req.VideoUrl, req.Thumbnail)
	if !ok {
		h.handleError(c, ErrProjectNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"version": v})
}

// 投递生成任务：POST /v1/api/projects/:project_id/generate
func (h *Handler) GenerateVersion(c *gin.Context) {
	var in service.GenerateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.handleError(c, ErrInvalidInput(err))
		return
	}
	task, err := h.Generation.StartProjectVersion(c.Request.Context(), c.Param("project_id"), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"task": task})
}

// 合并两个分支为新版本：POST /v1/api/projects/:project_id/merge
func (h *Handler) MergeBranches(c *gin.Context) {
	var req struct {
		SourceBranchId string                    `json:"sourceBranchId"`
		TargetBranchId string                    `json:"targetBranchId"`
		MergedPrompt   string                    `json:"mergedPrompt"`
		Settings       models.GenerationSettings `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, ErrInvalidInput(err))
		return
	}
	v, ok := h.Versions.MergeBranches(c.Request.Context(), c.Param("project_id"),
		req.SourceBranchId, req.TargetBranchId, req.MergedPrompt, req.Settings)
	if !ok {
		h.handleError(c, ErrProjectNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"version": v})
}

type promptPair struct {
	PromptA string `json:"promptA"`
	PromptB string `json:"promptB"`
}

// 比较两段 prompt：POST /v1/api/diff
func (h *Handler) DiffPrompts(c *gin.Context) {
	var req promptPair
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, ErrInvalidInput(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"diff":       diff.Prompts(req.PromptA, req.PromptB),
		"highlightA": diff.Highlight(req.PromptA, req.PromptB),
		"highlightB": diff.Highlight(req.PromptB, req.PromptA),
	})
}

// 合并建议：POST /v1/api/merge/suggest
func (h *Handler) SuggestMerge(c *gin.Context) {
	var req struct {
		promptPair
		SettingsA models.GenerationSettings `json:"settingsA"`
		SettingsB models.GenerationSettings `json:"settingsB"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, ErrInvalidInput(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"autoMerged": diff.AutoMerge(req.PromptA, req.PromptB),
		"combined":   diff.Combine(req.PromptA, req.PromptB),
		"settings":   diff.MergeSettings(req.SettingsA, req.SettingsB),
	})
}
