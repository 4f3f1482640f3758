package api

import (
	"net/http"
	"strings"

	"genvo-server/models"
	"genvo-server/service"

	"github.com/gin-gonic/gin"
)

const defaultProjectTitle = "Untitled Project"

// 项目列表：GET /v1/api/projects
func (h *Handler) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"projects": h.Repo.ListProjects(c.Request.Context())})
}

// 创建项目：POST /v1/api/projects
// generate 缺省为 true，创建后立即投递第一个版本的生成任务
func (h *Handler) CreateProject(c *gin.Context) {
	var req struct {
		Title          string                    `json:"title"`
		Prompt         string                    `json:"prompt"`
		Settings       models.GenerationSettings `json:"settings"`
		Model          string                    `json:"model"`
		NegativePrompt string                    `json:"negativePrompt"`
		Generate       *bool                     `json:"generate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, ErrInvalidInput(err))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		req.Title = defaultProjectTitle
	}

	ctx := c.Request.Context()
	project := h.Repo.CreateProject(ctx, req.Title, req.Prompt, req.Settings)

	resp := gin.H{"project": project}
	if req.Generate == nil || *req.Generate {
		task, err := h.Generation.StartProjectVersion(ctx, project.ID, service.GenerateInput{
			Prompt:         req.Prompt,
			Settings:       req.Settings,
			Model:          req.Model,
			NegativePrompt: req.NegativePrompt,
		})
		if err != nil {
			// 项目已创建，失败原因记录在任务上
			h.logger.Warn().Err(err).Str("projectId", project.ID).Msg("start generation failed")
		}
		resp["task"] = task
		if p, ok := h.Repo.GetProject(ctx, project.ID); ok {
			resp["project"] = p
		}
	}
	c.JSON(http.StatusCreated, resp)
}

// 获取项目详情：GET /v1/api/projects/:project_id
func (h *Handler) GetProject(c *gin.Context) {
	ctx := c.Request.Context()
	p, ok := h.Repo.GetProject(ctx, c.Param("project_id"))
	if !ok {
		h.handleError(c, ErrProjectNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"project":  p,
		"branches": h.Repo.ListBranchesByProject(ctx, p.ID),
	})
}

// 更新项目：PUT /v1/api/projects/:project_id
func (h *Handler) UpdateProject(c *gin.Context) {
	var patch models.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.handleError(c, ErrInvalidInput(err))
		return
	}
	p, ok := h.Repo.UpdateProject(c.Request.Context(), c.Param("project_id"), patch)
	if !ok {
		h.handleError(c, ErrProjectNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": p})
}

// 删除项目及其分支：DELETE /v1/api/projects/:project_id
func (h *Handler) DeleteProject(c *gin.Context) {
	if !h.Repo.DeleteProject(c.Request.Context(), c.Param("project_id")) {
		h.handleError(c, ErrProjectNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
