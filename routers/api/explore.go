package api

import (
	"net/http"

	"genvo-server/models"
	"genvo-server/service"
	"genvo-server/videogen"

	"github.com/gin-gonic/gin"
)

// 社区项目：GET /v1/api/explore?q=&style=&sort=
func (h *Handler) Explore(c *gin.Context) {
	var q service.ExploreQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.handleError(c, ErrInvalidInput(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": service.Explore(h.Community(), q)})
}

// GET /v1/api/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	projects := h.Repo.ListProjects(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"stats":    service.Dashboard(projects),
		"projects": projects,
	})
}

// 前端下拉选项：GET /v1/api/catalog
func (h *Handler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"styles":       models.StyleOptions,
		"models":       models.ModelOptions,
		"aspectRatios": models.AspectRatioOptions,
		"videoModels":  videogen.Catalog,
	})
}
