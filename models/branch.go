package models

import (
	"strings"
	"time"
)

const (
	BranchStatusDraft      = "draft"
	BranchStatusGenerating = "generating"
	BranchStatusCompleted  = "completed"
)

// Branch 项目上的并行探索分支，prompt/settings 独立于项目当前状态
type Branch struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	ProjectId     string             `json:"projectId"`
	BaseVersionId string             `json:"baseVersionId"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Author        Author             `json:"author"`
	Prompt        string             `json:"prompt"`
	Settings      GenerationSettings `json:"settings"`
	Status        string             `json:"status"`
	Thumbnail     string             `json:"thumbnail,omitempty"`
	VideoUrl      string             `json:"videoUrl,omitempty"`
}

// NormalizeBranchName 转小写，每个空格替换为 "-"
func NormalizeBranchName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

type BranchPatch struct {
	Name          *string             `json:"name,omitempty"`
	BaseVersionId *string             `json:"baseVersionId,omitempty"`
	Prompt        *string             `json:"prompt,omitempty"`
	Settings      *GenerationSettings `json:"settings,omitempty"`
	Status        *string             `json:"status,omitempty"`
	Thumbnail     *string             `json:"thumbnail,omitempty"`
	VideoUrl      *string             `json:"videoUrl,omitempty"`
}

func (bp BranchPatch) Apply(b *Branch, now time.Time) {
	if bp.Name != nil {
		b.Name = *bp.Name
	}
	if bp.BaseVersionId != nil {
		b.BaseVersionId = *bp.BaseVersionId
	}
	if bp.Prompt != nil {
		b.Prompt = *bp.Prompt
	}
	if bp.Settings != nil {
		b.Settings = *bp.Settings
	}
	if bp.Status != nil {
		b.Status = *bp.Status
	}
	if bp.Thumbnail != nil {
		b.Thumbnail = *bp.Thumbnail
	}
	if bp.VideoUrl != nil {
		b.VideoUrl = *bp.VideoUrl
	}
	b.UpdatedAt = now
}
