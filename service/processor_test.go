package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"genvo-server/models"
	"genvo-server/videogen"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestProcessor(client videogen.Client) (*Processor, *Generation) {
	gen, _ := newTestGeneration(client)
	return &Processor{gen: gen, logger: zerolog.Nop()}, gen
}

func payloadTask(t *testing.T, taskID string) *asynq.Task {
	b, err := json.Marshal(TaskPayload{TaskID: taskID})
	require.NoError(t, err)
	return asynq.NewTask(TypeGenerateTask, b)
}

func TestHandleGenerateTaskBadPayload(t *testing.T) {
	p, _ := newTestProcessor(new(MockClient))
	err := p.HandleGenerateTask(context.Background(), asynq.NewTask(TypeGenerateTask, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleGenerateTaskMissingTask(t *testing.T) {
	p, _ := newTestProcessor(new(MockClient))
	err := p.HandleGenerateTask(context.Background(), payloadTask(t, "missing"))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleGenerateTaskFailureIsNotRetried(t *testing.T) {
	ctx := context.Background()
	client := new(MockClient)
	client.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("upstream 500"))

	p, gen := newTestProcessor(client)
	task, err := gen.StartProjectVersion(ctx, "2", GenerateInput{Prompt: "p"})
	require.NoError(t, err)

	assert.NoError(t, p.HandleGenerateTask(ctx, payloadTask(t, task.ID)))
	got, _ := gen.repo.GetTask(ctx, task.ID)
	assert.Equal(t, models.TaskStatusFailed, got.Status)
	assert.Equal(t, "upstream 500", got.Error)
	assert.Equal(t, string(videogen.KindGeneric), got.ErrorKind)
}

func TestContentTypeOf(t *testing.T) {
	assert.Equal(t, "video/mp4", contentTypeOf("videos/t1/out.mp4"))
	assert.Equal(t, "image/jpeg", contentTypeOf("a.jpeg"))
	assert.Equal(t, "application/octet-stream", contentTypeOf("noext"))
}
