package repository

import (
	"context"

	"genvo-server/models"
)

const descriptionLimit = 100

// ListProjects 按存储顺序返回，新建的项目在最前面
func (r *Repository) ListProjects(ctx context.Context) []models.Project {
	r.mu.Lock()
	defer r.mu.Unlock()
	projects, _ := r.loadProjects(ctx)
	return projects
}

func (r *Repository) GetProject(ctx context.Context, id string) (*models.Project, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	projects, _ := r.loadProjects(ctx)
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], true
		}
	}
	return nil, false
}

// CreateProject 新项目状态为 generating，插入到集合头部
func (r *Repository) CreateProject(ctx context.Context, title, prompt string, settings models.GenerationSettings) *models.Project {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	p := models.Project{
		ID:          r.ids.NewID(),
		Title:       title,
		Description: describe(prompt),
		Thumbnail:   models.PlaceholderThumbnail(settings.Style),
		CreatedAt:   now,
		UpdatedAt:   now,
		Status:      models.ProjectStatusGenerating,
		IsPublic:    false,
		Forks:       0,
		Views:       0,
		Author:      models.DefaultAuthor(),
		Versions:    []models.Version{},
		Prompt:      prompt,
		Settings:    settings,
	}

	projects, loaded := r.loadProjects(ctx)
	projects = append([]models.Project{p}, projects...)
	r.save(ctx, KeyProjects, projects, loaded)

	r.logger.Info().Str("projectId", p.ID).Msg("project created")
	return &p
}

// describe 截取 prompt 前 100 个字符，被截断时追加 "..."
func describe(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= descriptionLimit {
		return prompt
	}
	return string(runes[:descriptionLimit]) + "..."
}

func (r *Repository) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, bool) {
	return r.MutateProject(ctx, id, func(p *models.Project) {
		patch.Apply(p, r.now())
	})
}

// MutateProject 在同一次读改写中修改单个项目。fn 负责刷新 UpdatedAt。
func (r *Repository) MutateProject(ctx context.Context, id string, fn func(p *models.Project)) (*models.Project, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, loaded := r.loadProjects(ctx)
	for i := range projects {
		if projects[i].ID != id {
			continue
		}
		fn(&projects[i])
		r.save(ctx, KeyProjects, projects, loaded)
		p := projects[i]
		return &p, true
	}
	return nil, false
}

// DeleteProject 同时删除该项目下的所有分支；没有匹配时不写入
func (r *Repository) DeleteProject(ctx context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, loaded := r.loadProjects(ctx)
	kept := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(projects) {
		return false
	}
	r.save(ctx, KeyProjects, kept, loaded)

	branches, branchesLoaded := r.loadBranches(ctx)
	keptBranches := make([]models.Branch, 0, len(branches))
	for _, b := range branches {
		if b.ProjectId != id {
			keptBranches = append(keptBranches, b)
		}
	}
	if len(keptBranches) != len(branches) {
		// 项目删除未落盘时分支也保持原样
		r.save(ctx, KeyBranches, keptBranches, loaded && branchesLoaded)
	}

	r.logger.Info().Str("projectId", id).Int("branchesRemoved", len(branches)-len(keptBranches)).Msg("project deleted")
	return true
}
