package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	TypeGenerateTask = "task:generate"
)

type TaskPayload struct {
	TaskID string `json:"task_id"`
}

// Queue 通过 asynq (Redis) 投递生成任务，由 Processor 消费
type Queue struct {
	client   *asynq.Client
	maxRetry int
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewQueue(opt asynq.RedisClientOpt, maxRetry int, timeout time.Duration) *Queue {
	if timeout <= 0 {
		timeout = 20 * time.Minute
	}
	return &Queue{
		client:   asynq.NewClient(opt),
		maxRetry: maxRetry,
		timeout:  timeout,
		logger:   log.With().Str("component", "queue").Logger(),
	}
}

func (q *Queue) Dispatch(ctx context.Context, taskID string) error {
	payload, err := json.Marshal(TaskPayload{TaskID: taskID})
	if err != nil {
		return fmt.Errorf("marshal payload failed: %w", err)
	}

	task := asynq.NewTask(TypeGenerateTask, payload,
		asynq.MaxRetry(q.maxRetry),
		asynq.Timeout(q.timeout),      // 视频生成较慢，设置较长超时
		asynq.Retention(24*time.Hour), // 任务结果在 Redis 保留时间
	)

	info, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue failed: %w", err)
	}

	q.logger.Info().Str("taskId", taskID).Str("queueId", info.ID).Msg("task enqueued")
	return nil
}

func (q *Queue) Close() error {
	return q.client.Close()
}

// Inline 未启用队列时在本进程的 goroutine 中执行任务
type Inline struct {
	run    func(ctx context.Context, taskID string) error
	wg     sync.WaitGroup
	logger zerolog.Logger
}

func NewInline(g *Generation) *Inline {
	return &Inline{
		run:    g.Run,
		logger: log.With().Str("component", "inline-dispatcher").Logger(),
	}
}

// Dispatch 立即返回；任务使用独立的 context，不随请求结束而取消
func (d *Inline) Dispatch(_ context.Context, taskID string) error {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.run(context.Background(), taskID); err != nil {
			d.logger.Warn().Err(err).Str("taskId", taskID).Msg("inline task finished with error")
		}
	}()
	return nil
}

// Wait 等待所有进行中的任务结束（用于优雅退出）
func (d *Inline) Wait() {
	d.wg.Wait()
}
