package routers

import (
	"net/http"

	"genvo-server/routers/api"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRouter(h *api.Handler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), corsMiddleware(allowedOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1/api")
	{
		v1.GET("/projects", h.ListProjects)
		v1.POST("/projects", h.CreateProject)
		v1.GET("/projects/:project_id", h.GetProject)
		v1.PUT("/projects/:project_id", h.UpdateProject)
		v1.DELETE("/projects/:project_id", h.DeleteProject)
		v1.POST("/projects/:project_id/versions", h.AddVersion)
		v1.POST("/projects/:project_id/generate", h.GenerateVersion)
		v1.POST("/projects/:project_id/merge", h.MergeBranches)
		v1.GET("/projects/:project_id/branches", h.ListProjectBranches)
		v1.POST("/projects/:project_id/branches", h.CreateBranch)

		v1.GET("/branches", h.ListBranches)
		v1.GET("/branches/:branch_id", h.GetBranch)
		v1.PUT("/branches/:branch_id", h.UpdateBranch)
		v1.DELETE("/branches/:branch_id", h.DeleteBranch)
		v1.POST("/branches/:branch_id/generate", h.GenerateBranch)

		v1.POST("/diff", h.DiffPrompts)
		v1.POST("/merge/suggest", h.SuggestMerge)

		v1.GET("/explore", h.Explore)
		v1.GET("/dashboard", h.Dashboard)
		v1.GET("/catalog", h.Catalog)

		v1.GET("/tasks/:task_id", h.GetTaskStatus)
		v1.GET("/tasks/:task_id/wss", h.TaskProgressWebSocket)

		v1.GET("/settings/api-key", h.GetAPIKey)
		v1.PUT("/settings/api-key", h.SaveAPIKey)
		v1.DELETE("/settings/api-key", h.ClearAPIKey)
		v1.POST("/admin/reset", h.ResetData)
		v1.POST("/admin/clear", h.ClearData)
	}
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
