package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"genvo-server/models"
	"genvo-server/repository"
	"genvo-server/videogen"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrBranchNotFound  = errors.New("branch not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrNoDispatcher    = errors.New("no task dispatcher configured")
)

// Dispatcher 把任务交给执行方（asynq 队列或本进程 goroutine）
type Dispatcher interface {
	Dispatch(ctx context.Context, taskID string) error
}

// Mirror 把远端生成的视频转存到自己的对象存储，返回新的访问地址
type Mirror interface {
	Mirror(ctx context.Context, srcURL, objectName string) (string, error)
}

type GenerateInput struct {
	Prompt         string                    `json:"prompt"`
	Settings       models.GenerationSettings `json:"settings"`
	Model          string                    `json:"model"`
	NegativePrompt string                    `json:"negativePrompt"`
	Seed           *int64                    `json:"seed"`
}

// Generation 调用视频生成后端，并把结果写回项目版本或分支
type Generation struct {
	repo         *repository.Repository
	versions     *Versioning
	client       videogen.Client
	dispatcher   Dispatcher
	mirror       Mirror
	defaultModel string
	logger       zerolog.Logger
}

func NewGeneration(repo *repository.Repository, versions *Versioning, client videogen.Client, defaultModel string) *Generation {
	if defaultModel == "" {
		defaultModel = videogen.DefaultModel
	}
	return &Generation{
		repo:         repo,
		versions:     versions,
		client:       client,
		defaultModel: defaultModel,
		logger:       log.With().Str("component", "generation").Logger(),
	}
}

func (g *Generation) SetDispatcher(d Dispatcher) { g.dispatcher = d }

func (g *Generation) SetMirror(m Mirror) { g.mirror = m }

// StartProjectVersion 项目进入 generating 状态，创建任务并投递
func (g *Generation) StartProjectVersion(ctx context.Context, projectID string, in GenerateInput) (*models.Task, error) {
	status := models.ProjectStatusGenerating
	if _, ok := g.repo.UpdateProject(ctx, projectID, models.ProjectPatch{Status: &status}); !ok {
		return nil, ErrProjectNotFound
	}
	task := g.newTask(models.TaskTypeProjectVersion, projectID, "", in)
	return task, g.enqueue(ctx, task)
}

// StartBranchGeneration 使用分支自身的 prompt / settings 生成
func (g *Generation) StartBranchGeneration(ctx context.Context, branchID, model string) (*models.Task, error) {
	b, ok := g.repo.MutateBranch(ctx, branchID, func(b *models.Branch) {
		b.Status = models.BranchStatusGenerating
		b.UpdatedAt = g.repo.Now()
	})
	if !ok {
		return nil, ErrBranchNotFound
	}
	task := g.newTask(models.TaskTypeBranchVideo, b.ProjectId, b.ID, GenerateInput{
		Prompt:   b.Prompt,
		Settings: b.Settings,
		Model:    model,
	})
	return task, g.enqueue(ctx, task)
}

func (g *Generation) newTask(taskType, projectID, branchID string, in GenerateInput) *models.Task {
	model := in.Model
	if model == "" {
		model = g.defaultModel
	}
	return &models.Task{
		ID:        uuid.NewString(),
		ProjectId: projectID,
		BranchId:  branchID,
		Type:      taskType,
		Status:    models.TaskStatusPending,
		Message:   "Queued",
		Parameters: models.TaskParameters{
			Prompt:         in.Prompt,
			Settings:       in.Settings,
			Model:          model,
			NegativePrompt: in.NegativePrompt,
			Seed:           in.Seed,
		},
	}
}

func (g *Generation) enqueue(ctx context.Context, task *models.Task) error {
	g.repo.CreateTask(ctx, task)

	err := ErrNoDispatcher
	if g.dispatcher != nil {
		err = g.dispatcher.Dispatch(ctx, task.ID)
	}
	if err != nil {
		err = fmt.Errorf("dispatch task %s: %w", task.ID, err)
		g.fail(ctx, task, err)
		return err
	}
	g.logger.Info().Str("taskId", task.ID).Str("type", task.Type).Msg("task dispatched")
	return nil
}

// Run 执行一个生成任务。生成失败会写入任务并回滚项目 / 分支状态，同时返回该错误。
func (g *Generation) Run(ctx context.Context, taskID string) error {
	task, ok := g.repo.GetTask(ctx, taskID)
	if !ok {
		return ErrTaskNotFound
	}
	if task.Done() {
		// 重复投递
		g.logger.Debug().Str("taskId", taskID).Str("status", task.Status).Msg("task already done, skip")
		return nil
	}

	g.repo.UpdateTask(ctx, taskID, func(t *models.Task) {
		t.UpdateStatus(models.TaskStatusProcessing, g.repo.Now())
	})
	g.logger.Info().Str("taskId", taskID).Str("type", task.Type).Str("model", task.Parameters.Model).Msg("processing task")

	start := time.Now()
	res, err := g.client.Generate(ctx, videogen.Request{
		Prompt:         task.Parameters.Prompt,
		Model:          task.Parameters.Model,
		NegativePrompt: task.Parameters.NegativePrompt,
		Seed:           task.Parameters.Seed,
		OnProgress: func(p videogen.Progress) {
			g.repo.UpdateTask(ctx, taskID, func(t *models.Task) {
				if p.Percent != videogen.UnknownPercent {
					t.Progress = p.Percent
				}
				t.Message = p.Status
				if p.Logs != nil {
					t.Logs = p.Logs
				}
			})
		},
	})
	generationDuration.WithLabelValues(task.Type).Observe(time.Since(start).Seconds())
	if err != nil {
		g.fail(ctx, task, err)
		return err
	}

	videoUrl := g.mirrorVideo(ctx, task.ID, res.VideoUrl)

	result := models.TaskResult{ResourceUrl: videoUrl, Seed: res.Seed}
	switch task.Type {
	case models.TaskTypeProjectVersion:
		v, ok := g.versions.AddVersion(ctx, task.ProjectId, task.Parameters.Prompt, task.Parameters.Settings, videoUrl, "")
		if !ok {
			err = ErrProjectNotFound
			break
		}
		result.ResourceType = "version"
		result.ResourceId = v.ID

	case models.TaskTypeBranchVideo:
		b, ok := g.repo.MutateBranch(ctx, task.BranchId, func(b *models.Branch) {
			b.Status = models.BranchStatusCompleted
			b.VideoUrl = videoUrl
			b.Thumbnail = models.PlaceholderThumbnail(b.Settings.Style)
			b.UpdatedAt = g.repo.Now()
		})
		if !ok {
			err = ErrBranchNotFound
			break
		}
		result.ResourceType = "branch"
		result.ResourceId = b.ID

	default:
		err = fmt.Errorf("unknown task type: %s", task.Type)
	}
	if err != nil {
		g.fail(ctx, task, err)
		return err
	}

	g.repo.UpdateTask(ctx, taskID, func(t *models.Task) {
		t.UpdateStatus(models.TaskStatusSuccess, g.repo.Now())
		t.Progress = 100
		t.Message = "Complete!"
		t.Result = result
	})
	generationTasksTotal.WithLabelValues(task.Type, models.TaskStatusSuccess).Inc()
	g.logger.Info().Str("taskId", taskID).Str("videoUrl", videoUrl).Msg("task completed")
	return nil
}

// fail 记录失败原因，并把项目 / 分支从 generating 状态中恢复
func (g *Generation) fail(ctx context.Context, task *models.Task, cause error) {
	g.logger.Error().Err(cause).Str("taskId", task.ID).Str("type", task.Type).Msg("generation failed")
	generationTasksTotal.WithLabelValues(task.Type, models.TaskStatusFailed).Inc()

	g.repo.UpdateTask(ctx, task.ID, func(t *models.Task) {
		t.UpdateStatus(models.TaskStatusFailed, g.repo.Now())
		t.Error = cause.Error()
		t.ErrorKind = string(videogen.KindOf(cause))
		t.Message = "Generation failed"
	})

	switch task.Type {
	case models.TaskTypeProjectVersion:
		status := models.ProjectStatusFailed
		g.repo.UpdateProject(ctx, task.ProjectId, models.ProjectPatch{Status: &status})
	case models.TaskTypeBranchVideo:
		status := models.BranchStatusDraft
		g.repo.UpdateBranch(ctx, task.BranchId, models.BranchPatch{Status: &status})
	}
}

// mirrorVideo 转存失败时保留原地址；相对路径（占位视频）不转存
func (g *Generation) mirrorVideo(ctx context.Context, taskID, src string) string {
	if g.mirror == nil || !(strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")) {
		return src
	}
	name := path.Base(strings.SplitN(src, "?", 2)[0])
	if name == "" || name == "/" || name == "." {
		name = "output.mp4"
	}
	mirrored, err := g.mirror.Mirror(ctx, src, fmt.Sprintf("videos/%s/%s", taskID, name))
	if err != nil {
		g.logger.Warn().Err(err).Str("taskId", taskID).Msg("mirror video failed, keep source url")
		return src
	}
	return mirrored
}
