package service

import (
	"sort"
	"strings"

	"genvo-server/models"
)

const (
	SortTrending = "trending"
	SortNewest   = "newest"
	SortPopular  = "popular"
)

type ExploreQuery struct {
	Search string `form:"q"`
	Style  string `form:"style"`
	Sort   string `form:"sort"`
}

// Explore 搜索（标题/描述/prompt，不区分大小写）+ 风格过滤 + 排序。
// 未知的排序方式保持原顺序。
func Explore(projects []models.Project, q ExploreQuery) []models.Project {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	res := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if q.Style != "" && !strings.EqualFold(q.Style, "all") && p.Settings.Style != q.Style {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) &&
			!strings.Contains(strings.ToLower(p.Prompt), search) {
			continue
		}
		res = append(res, p)
	}

	switch q.Sort {
	case SortTrending, "":
		sort.SliceStable(res, func(i, j int) bool { return res[i].Forks > res[j].Forks })
	case SortNewest:
		sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	case SortPopular:
		sort.SliceStable(res, func(i, j int) bool { return res[i].Views > res[j].Views })
	}
	return res
}

type DashboardStats struct {
	TotalProjects int `json:"totalProjects"`
	Completed     int `json:"completed"`
	Generating    int `json:"generating"`
	TotalViews    int `json:"totalViews"`
}

func Dashboard(projects []models.Project) DashboardStats {
	var s DashboardStats
	s.TotalProjects = len(projects)
	for _, p := range projects {
		switch p.Status {
		case models.ProjectStatusCompleted:
			s.Completed++
		case models.ProjectStatusGenerating:
			s.Generating++
		}
		s.TotalViews += p.Views
	}
	return s
}
