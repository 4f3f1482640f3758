package repository

import (
	"context"

	"genvo-server/models"
)

func (r *Repository) ListBranches(ctx context.Context) []models.Branch {
	r.mu.Lock()
	defer r.mu.Unlock()
	branches, _ := r.loadBranches(ctx)
	return branches
}

func (r *Repository) ListBranchesByProject(ctx context.Context, projectID string) []models.Branch {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []models.Branch{}
	branches, _ := r.loadBranches(ctx)
	for _, b := range branches {
		if b.ProjectId == projectID {
			res = append(res, b)
		}
	}
	return res
}

func (r *Repository) GetBranch(ctx context.Context, id string) (*models.Branch, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	branches, _ := r.loadBranches(ctx)
	for i := range branches {
		if branches[i].ID == id {
			return &branches[i], true
		}
	}
	return nil, false
}

// CreateBranch 名称规范化后追加到集合末尾，初始状态为 draft。
// 不校验 projectId 是否存在。
func (r *Repository) CreateBranch(ctx context.Context, projectID, name, baseVersionID, prompt string, settings models.GenerationSettings) *models.Branch {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b := models.Branch{
		ID:            r.ids.NewID(),
		Name:          models.NormalizeBranchName(name),
		ProjectId:     projectID,
		BaseVersionId: baseVersionID,
		CreatedAt:     now,
		UpdatedAt:     now,
		Author:        models.DefaultAuthor(),
		Prompt:        prompt,
		Settings:      settings,
		Status:        models.BranchStatusDraft,
	}

	branches, loaded := r.loadBranches(ctx)
	branches = append(branches, b)
	r.save(ctx, KeyBranches, branches, loaded)

	r.logger.Info().Str("branchId", b.ID).Str("projectId", projectID).Str("name", b.Name).Msg("branch created")
	return &b
}

func (r *Repository) UpdateBranch(ctx context.Context, id string, patch models.BranchPatch) (*models.Branch, bool) {
	return r.MutateBranch(ctx, id, func(b *models.Branch) {
		patch.Apply(b, r.now())
	})
}

// MutateBranch 在同一次读改写中修改单个分支。fn 负责刷新 UpdatedAt。
func (r *Repository) MutateBranch(ctx context.Context, id string, fn func(b *models.Branch)) (*models.Branch, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	branches, loaded := r.loadBranches(ctx)
	for i := range branches {
		if branches[i].ID != id {
			continue
		}
		fn(&branches[i])
		r.save(ctx, KeyBranches, branches, loaded)
		b := branches[i]
		return &b, true
	}
	return nil, false
}

func (r *Repository) DeleteBranch(ctx context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	branches, loaded := r.loadBranches(ctx)
	kept := make([]models.Branch, 0, len(branches))
	for _, b := range branches {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(branches) {
		return false
	}
	r.save(ctx, KeyBranches, kept, loaded)
	return true
}
