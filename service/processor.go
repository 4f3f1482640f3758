package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Processor 消费 asynq 队列中的生成任务
type Processor struct {
	gen    *Generation
	server *asynq.Server
	logger zerolog.Logger
}

func NewProcessor(gen *Generation, opt asynq.RedisClientOpt, concurrency int) *Processor {
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			"default": 1,
		},
	})
	return &Processor{
		gen:    gen,
		server: srv,
		logger: log.With().Str("component", "processor").Logger(),
	}
}

// Start 非阻塞启动消费者
func (p *Processor) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeGenerateTask, p.HandleGenerateTask)
	p.logger.Info().Msg("starting task processor")
	return p.server.Start(mux)
}

func (p *Processor) Shutdown() {
	p.server.Shutdown()
}

// HandleGenerateTask 生成失败属于业务失败，已记录在任务上，不再重试
func (p *Processor) HandleGenerateTask(ctx context.Context, t *asynq.Task) error {
	var payload TaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	err := p.gen.Run(ctx, payload.TaskID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrTaskNotFound):
		return fmt.Errorf("task %s: %v: %w", payload.TaskID, err, asynq.SkipRetry)
	default:
		p.logger.Warn().Err(err).Str("taskId", payload.TaskID).Msg("task failed")
		return nil
	}
}
