package models

import "time"

// 任务状态
const (
	// pending: 已创建，等待执行器取走
	TaskStatusPending    = "pending"
	TaskStatusProcessing = "processing"
	TaskStatusSuccess    = "finished"
	TaskStatusFailed     = "failed"

	TaskTypeProjectVersion = "generate_version" // 生成视频并追加为项目新版本
	TaskTypeBranchVideo    = "generate_branch"  // 为分支生成视频
)

type Task struct {
	ID         string         `json:"id"`
	ProjectId  string         `json:"projectId"`
	BranchId   string         `json:"branchId,omitempty"`
	Type       string         `json:"type"`
	Status     string         `json:"status"`
	Progress   int            `json:"progress"`
	Message    string         `json:"message"`
	Logs       []string       `json:"logs,omitempty"`
	Parameters TaskParameters `json:"parameters"`
	Result     TaskResult     `json:"result"`
	Error      string         `json:"error"`
	ErrorKind  string         `json:"errorKind,omitempty"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

type TaskParameters struct {
	Prompt         string             `json:"prompt"`
	Settings       GenerationSettings `json:"settings"`
	Model          string             `json:"model"`
	NegativePrompt string             `json:"negative_prompt,omitempty"`
	Seed           *int64             `json:"seed,omitempty"`
}

// TaskResult 仅保留最小资源定位信息
type TaskResult struct {
	ResourceType string `json:"resource_type,omitempty"` // "version" / "branch"
	ResourceId   string `json:"resource_id,omitempty"`
	ResourceUrl  string `json:"resource_url,omitempty"`
	Seed         *int64 `json:"seed,omitempty"`
}

// Done 任务是否已进入终态
func (t *Task) Done() bool {
	return t.Status == TaskStatusSuccess || t.Status == TaskStatusFailed
}

// UpdateStatus 切换状态并记录时间点
func (t *Task) UpdateStatus(status string, now time.Time) {
	t.Status = status
	t.UpdatedAt = now
	switch status {
	case TaskStatusProcessing:
		if t.StartedAt.IsZero() {
			t.StartedAt = now
		}
	case TaskStatusSuccess, TaskStatusFailed:
		t.FinishedAt = now
	}
}
