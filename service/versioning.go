package service

import (
	"context"

	"genvo-server/models"
	"genvo-server/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Versioning 版本追加 / 分支生成 / 分支合并
type Versioning struct {
	repo   *repository.Repository
	logger zerolog.Logger
}

func NewVersioning(repo *repository.Repository) *Versioning {
	return &Versioning{
		repo:   repo,
		logger: log.With().Str("component", "versioning").Logger(),
	}
}

// AddVersion 追加新版本，并把它设为项目当前 head：
// prompt / settings / thumbnail 被覆盖，status 强制为 completed。
// videoUrl、thumbnail 为空时使用占位资源。
func (s *Versioning) AddVersion(ctx context.Context, projectID, prompt string, settings models.GenerationSettings, videoUrl, thumbnail string) (*models.Version, bool) {
	if videoUrl == "" {
		videoUrl = models.PlaceholderVideoUrl
	}
	if thumbnail == "" {
		thumbnail = models.PlaceholderThumbnail(settings.Style)
	}

	var created models.Version
	_, ok := s.repo.MutateProject(ctx, projectID, func(p *models.Project) {
		now := s.repo.Now()
		created = models.Version{
			ID:            s.repo.NewID(),
			VersionNumber: len(p.Versions) + 1,
			Prompt:        prompt,
			CreatedAt:     now,
			VideoUrl:      videoUrl,
			Thumbnail:     thumbnail,
			Settings:      settings,
		}
		p.Versions = append(p.Versions, created)
		p.Prompt = prompt
		p.Settings = settings
		p.Status = models.ProjectStatusCompleted
		p.Thumbnail = thumbnail
		p.UpdatedAt = now
	})
	if !ok {
		return nil, false
	}

	versionsAppendedTotal.Inc()
	s.logger.Info().Str("projectId", projectID).Int("versionNumber", created.VersionNumber).Msg("version appended")
	return &created, true
}

// GenerateBranchVideo demo 模式：直接标记完成并填入占位资源
func (s *Versioning) GenerateBranchVideo(ctx context.Context, branchID string) (*models.Branch, bool) {
	return s.repo.MutateBranch(ctx, branchID, func(b *models.Branch) {
		b.Status = models.BranchStatusCompleted
		b.Thumbnail = models.PlaceholderThumbnail(b.Settings.Style)
		b.VideoUrl = models.PlaceholderVideoUrl
		b.UpdatedAt = s.repo.Now()
	})
}

// MergeBranches 只是以合并后的 prompt 追加一个版本。
// 两个分支 ID 仅用于日志，不会被校验，也不会记录在生成的版本上。
func (s *Versioning) MergeBranches(ctx context.Context, projectID, sourceBranchID, targetBranchID, mergedPrompt string, settings models.GenerationSettings) (*models.Version, bool) {
	s.logger.Info().
		Str("projectId", projectID).
		Str("source", sourceBranchID).
		Str("target", targetBranchID).
		Msg("merging branches")
	return s.AddVersion(ctx, projectID, mergedPrompt, settings, "", "")
}
