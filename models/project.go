package models

import "time"

// 项目状态：反映最近一次生成的结果
const (
	ProjectStatusDraft      = "draft"
	ProjectStatusGenerating = "generating"
	ProjectStatusCompleted  = "completed"
	ProjectStatusFailed     = "failed"
)

type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// DefaultAuthor 当前用户的展示身份
func DefaultAuthor() Author {
	return Author{
		Name:   "You",
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=user",
	}
}

type Project struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Thumbnail   string             `json:"thumbnail"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Status      string             `json:"status"`
	IsPublic    bool               `json:"isPublic"`
	Forks       int                `json:"forks"`
	Views       int                `json:"views"`
	Author      Author             `json:"author"`
	Versions    []Version          `json:"versions"`
	Prompt      string             `json:"prompt"`
	Settings    GenerationSettings `json:"settings"`
}

// Version 一次生成结果的不可变快照，versionNumber 从 1 开始连续递增
type Version struct {
	ID            string             `json:"id"`
	VersionNumber int                `json:"versionNumber"`
	Prompt        string             `json:"prompt"`
	CreatedAt     time.Time          `json:"createdAt"`
	VideoUrl      string             `json:"videoUrl"`
	Thumbnail     string             `json:"thumbnail"`
	Settings      GenerationSettings `json:"settings"`
}

// LatestVersion 返回当前 head 版本，没有版本时返回 nil
func (p *Project) LatestVersion() *Version {
	if len(p.Versions) == 0 {
		return nil
	}
	return &p.Versions[len(p.Versions)-1]
}

// ProjectPatch 局部更新：非 nil 字段覆盖原值，UpdatedAt 总是刷新。
// id / createdAt / versions / author / forks / views 不允许通过 patch 修改。
type ProjectPatch struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Thumbnail   *string             `json:"thumbnail,omitempty"`
	Status      *string             `json:"status,omitempty"`
	IsPublic    *bool               `json:"isPublic,omitempty"`
	Prompt      *string             `json:"prompt,omitempty"`
	Settings    *GenerationSettings `json:"settings,omitempty"`
}

func (pp ProjectPatch) Apply(p *Project, now time.Time) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Thumbnail != nil {
		p.Thumbnail = *pp.Thumbnail
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	if pp.IsPublic != nil {
		p.IsPublic = *pp.IsPublic
	}
	if pp.Prompt != nil {
		p.Prompt = *pp.Prompt
	}
	if pp.Settings != nil {
		p.Settings = *pp.Settings
	}
	p.UpdatedAt = now
}
