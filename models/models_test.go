package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBranchName(t *testing.T) {
	assert.Equal(t, "my-cool-branch", NormalizeBranchName("My Cool Branch"))
	assert.Equal(t, "rain--effect", NormalizeBranchName("Rain  Effect"))
	assert.Equal(t, "", NormalizeBranchName(""))
}

func TestPlaceholderThumbnail(t *testing.T) {
	assert.Equal(t,
		"https://images.unsplash.com/photo-1578632767115-351597cf2477?w=400&h=225&fit=crop",
		PlaceholderThumbnail("Anime"))
	assert.Equal(t, PlaceholderThumbnail("Cinematic"), PlaceholderThumbnail("Watercolor"))
}

func TestProjectPatchApply(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := Project{ID: "1", Title: "old", Prompt: "keep", CreatedAt: created, UpdatedAt: created}

	title := "new"
	now := created.Add(time.Hour)
	ProjectPatch{Title: &title}.Apply(&p, now)

	assert.Equal(t, "new", p.Title)
	assert.Equal(t, "keep", p.Prompt)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)

	later := now.Add(time.Hour)
	ProjectPatch{}.Apply(&p, later)
	assert.Equal(t, later, p.UpdatedAt)
}

func TestBranchPatchApplyEmptyString(t *testing.T) {
	b := Branch{Prompt: "something"}
	empty := ""
	BranchPatch{Prompt: &empty}.Apply(&b, time.Now())
	assert.Equal(t, "", b.Prompt)
}

func TestSeedIsFreshCopy(t *testing.T) {
	a := SeedProjects()
	a[0].Versions[0].Prompt = "mutated"
	b := SeedProjects()
	assert.Equal(t, "A futuristic city at night with neon lights", b[0].Versions[0].Prompt)
	assert.Len(t, b, 4)
	assert.Len(t, SeedBranches(), 4)
	assert.Len(t, CommunityProjects(), 6)
}

func TestSeedVersionNumbersContiguous(t *testing.T) {
	for _, p := range SeedProjects() {
		for i, v := range p.Versions {
			assert.Equal(t, i+1, v.VersionNumber, "project %s", p.ID)
		}
	}
}

func TestTaskUpdateStatus(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	task := Task{Status: TaskStatusPending}

	task.UpdateStatus(TaskStatusProcessing, start)
	assert.Equal(t, start, task.StartedAt)
	assert.False(t, task.Done())

	end := start.Add(time.Minute)
	task.UpdateStatus(TaskStatusSuccess, end)
	assert.Equal(t, end, task.FinishedAt)
	assert.Equal(t, start, task.StartedAt)
	assert.True(t, task.Done())
}
