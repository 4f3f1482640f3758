package repository

import (
	"context"

	"genvo-server/models"
)

// 只保留最近的任务记录
const maxTasks = 200

func (r *Repository) loadTasks(ctx context.Context) ([]models.Task, bool) {
	var tasks []models.Task
	found, err := r.read(ctx, KeyTasks, &tasks)
	if err != nil {
		return []models.Task{}, false
	}
	if !found {
		return []models.Task{}, true
	}
	return tasks, true
}

// CreateTask 保存新任务，超出上限时丢弃最旧的记录
func (r *Repository) CreateTask(ctx context.Context, t *models.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	t.CreatedAt = now
	t.UpdatedAt = now

	tasks, loaded := r.loadTasks(ctx)
	tasks = append(tasks, *t)
	if len(tasks) > maxTasks {
		tasks = tasks[len(tasks)-maxTasks:]
	}
	r.save(ctx, KeyTasks, tasks, loaded)
}

func (r *Repository) GetTask(ctx context.Context, id string) (*models.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tasks, _ := r.loadTasks(ctx)
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], true
		}
	}
	return nil, false
}

// UpdateTask 读改写单个任务，UpdatedAt 总是刷新
func (r *Repository) UpdateTask(ctx context.Context, id string, fn func(t *models.Task)) (*models.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, loaded := r.loadTasks(ctx)
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		fn(&tasks[i])
		tasks[i].UpdatedAt = r.now()
		r.save(ctx, KeyTasks, tasks, loaded)
		t := tasks[i]
		return &t, true
	}
	return nil, false
}
