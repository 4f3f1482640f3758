package api

import (
	"time"

	"genvo-server/models"
	"genvo-server/repository"
	"genvo-server/service"
	"genvo-server/videogen"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Handler 持有各接口依赖的服务
type Handler struct {
	Repo       *repository.Repository
	Versions   *service.Versioning
	Generation *service.Generation
	Keys       *videogen.Keys

	// Community Explore 页面数据来源
	Community func() []models.Project
	// TaskPoll websocket 推送任务进度时的轮询间隔
	TaskPoll time.Duration

	logger zerolog.Logger
}

func NewHandler(repo *repository.Repository, versions *service.Versioning, gen *service.Generation, keys *videogen.Keys) *Handler {
	return &Handler{
		Repo:       repo,
		Versions:   versions,
		Generation: gen,
		Keys:       keys,
		Community:  models.CommunityProjects,
		TaskPoll:   time.Second,
		logger:     log.With().Str("component", "api").Logger(),
	}
}
