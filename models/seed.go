package models

import "time"

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func unsplash(id string) string {
	return "https://images.unsplash.com/" + id + "?w=400&h=225&fit=crop"
}

func avatar(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
}

const cyberpunkPrompt = "A cinematic aerial flythrough of a futuristic cyberpunk city at night, neon lights reflecting on wet streets, flying cars, holographic billboards"

var cyberpunkSettings = GenerationSettings{Duration: 5, AspectRatio: AspectLandscape, Style: "Cinematic", Model: "Gen-3 Alpha"}

// SeedProjects 首次启动写入的示例项目，每次调用返回新切片
func SeedProjects() []Project {
	return []Project{
		{
			ID:          "1",
			Title:       "Cyberpunk City Flythrough",
			Description: "A cinematic flythrough of a neon-lit cyberpunk metropolis at night",
			Thumbnail:   unsplash("photo-1545569341-9eb8b30979d9"),
			CreatedAt:   ts("2024-01-15T10:30:00Z"),
			UpdatedAt:   ts("2024-01-18T14:22:00Z"),
			Status:      ProjectStatusCompleted,
			IsPublic:    true,
			Forks:       24,
			Views:       1420,
			Author:      DefaultAuthor(),
			Prompt:      cyberpunkPrompt,
			Settings:    cyberpunkSettings,
			Versions: []Version{
				{
					ID:            "v1",
					VersionNumber: 1,
					Prompt:        "A futuristic city at night with neon lights",
					CreatedAt:     ts("2024-01-15T10:30:00Z"),
					VideoUrl:      PlaceholderVideoUrl,
					Thumbnail:     unsplash("photo-1545569341-9eb8b30979d9"),
					Settings:      GenerationSettings{Duration: 4, AspectRatio: AspectLandscape, Style: "Default", Model: "Gen-3 Alpha"},
				},
				{
					ID:            "v2",
					VersionNumber: 2,
					Prompt:        "A cinematic aerial flythrough of a futuristic cyberpunk city at night, neon lights reflecting on wet streets",
					CreatedAt:     ts("2024-01-16T09:15:00Z"),
					VideoUrl:      PlaceholderVideoUrl,
					Thumbnail:     unsplash("photo-1545569341-9eb8b30979d9"),
					Settings:      cyberpunkSettings,
				},
				{
					ID:            "v3",
					VersionNumber: 3,
					Prompt:        cyberpunkPrompt,
					CreatedAt:     ts("2024-01-18T14:22:00Z"),
					VideoUrl:      PlaceholderVideoUrl,
					Thumbnail:     unsplash("photo-1545569341-9eb8b30979d9"),
					Settings:      cyberpunkSettings,
				},
			},
		},
		{
			ID:          "2",
			Title:       "Ocean Sunrise Timelapse",
			Description: "Peaceful sunrise over calm ocean waters with gentle waves",
			Thumbnail:   unsplash("photo-1507525428034-b723cf961d3e"),
			CreatedAt:   ts("2024-01-12T08:00:00Z"),
			UpdatedAt:   ts("2024-01-12T08:45:00Z"),
			Status:      ProjectStatusCompleted,
			IsPublic:    true,
			Forks:       12,
			Views:       856,
			Author:      DefaultAuthor(),
			Prompt:      "Timelapse of a beautiful sunrise over a calm ocean, golden light spreading across the water, gentle waves lapping at the shore",
			Settings:    GenerationSettings{Duration: 6, AspectRatio: AspectLandscape, Style: "Natural", Model: "Gen-3 Alpha"},
			Versions: []Version{
				{
					ID:            "v1",
					VersionNumber: 1,
					Prompt:        "Timelapse of a beautiful sunrise over a calm ocean, golden light spreading across the water, gentle waves lapping at the shore",
					CreatedAt:     ts("2024-01-12T08:00:00Z"),
					VideoUrl:      PlaceholderVideoUrl,
					Thumbnail:     unsplash("photo-1507525428034-b723cf961d3e"),
					Settings:      GenerationSettings{Duration: 6, AspectRatio: AspectLandscape, Style: "Natural", Model: "Gen-3 Alpha"},
				},
			},
		},
		{
			ID:          "3",
			Title:       "Abstract Fluid Motion",
			Description: "Colorful abstract fluid dynamics animation",
			Thumbnail:   unsplash("photo-1618005182384-a83a8bd57fbe"),
			CreatedAt:   ts("2024-01-10T16:20:00Z"),
			UpdatedAt:   ts("2024-01-11T11:30:00Z"),
			Status:      ProjectStatusCompleted,
			IsPublic:    false,
			Forks:       0,
			Views:       45,
			Author:      DefaultAuthor(),
			Prompt:      "Abstract fluid dynamics with vibrant colors flowing and merging, iridescent bubbles, smooth motion",
			Settings:    GenerationSettings{Duration: 4, AspectRatio: AspectSquare, Style: "Abstract", Model: "Stable Video"},
			Versions: []Version{
				{
					ID:            "v1",
					VersionNumber: 1,
					Prompt:        "Abstract colorful fluid motion",
					CreatedAt:     ts("2024-01-10T16:20:00Z"),
					VideoUrl:      PlaceholderVideoUrl,
					Thumbnail:     unsplash("photo-1618005182384-a83a8bd57fbe"),
					Settings:      GenerationSettings{Duration: 3, AspectRatio: AspectSquare, Style: "Abstract", Model: "Stable Video"},
				},
				{
					ID:            "v2",
					VersionNumber: 2,
					Prompt:        "Abstract fluid dynamics with vibrant colors flowing and merging, iridescent bubbles, smooth motion",
					CreatedAt:     ts("2024-01-11T11:30:00Z"),
					VideoUrl:      PlaceholderVideoUrl,
					Thumbnail:     unsplash("photo-1618005182384-a83a8bd57fbe"),
					Settings:      GenerationSettings{Duration: 4, AspectRatio: AspectSquare, Style: "Abstract", Model: "Stable Video"},
				},
			},
		},
		{
			ID:          "4",
			Title:       "Product Showcase",
			Description: "Elegant product rotation for e-commerce",
			Thumbnail:   unsplash("photo-1523275335684-37898b6baf30"),
			CreatedAt:   ts("2024-01-08T13:00:00Z"),
			UpdatedAt:   ts("2024-01-08T13:00:00Z"),
			Status:      ProjectStatusGenerating,
			IsPublic:    false,
			Forks:       0,
			Views:       12,
			Author:      DefaultAuthor(),
			Prompt:      "Elegant 360-degree product rotation of a minimalist watch on a white background, soft studio lighting",
			Settings:    GenerationSettings{Duration: 3, AspectRatio: AspectSquare, Style: "Product", Model: "Gen-3 Alpha"},
			Versions:    []Version{},
		},
	}
}

// SeedBranches Cyberpunk 项目上的示例分支
func SeedBranches() []Branch {
	return []Branch{
		{
			ID:            "b1",
			Name:          "main",
			ProjectId:     "1",
			BaseVersionId: "v3",
			CreatedAt:     ts("2024-01-15T10:30:00Z"),
			UpdatedAt:     ts("2024-01-18T14:22:00Z"),
			Author:        DefaultAuthor(),
			Prompt:        cyberpunkPrompt,
			Settings:      cyberpunkSettings,
			Status:        BranchStatusCompleted,
			Thumbnail:     unsplash("photo-1545569341-9eb8b30979d9"),
			VideoUrl:      PlaceholderVideoUrl,
		},
		{
			ID:            "b2",
			Name:          "blue-lighting",
			ProjectId:     "1",
			BaseVersionId: "v2",
			CreatedAt:     ts("2024-01-17T11:00:00Z"),
			UpdatedAt:     ts("2024-01-17T15:30:00Z"),
			Author:        Author{Name: "Sarah", Avatar: avatar("sarah")},
			Prompt:        "A cinematic aerial flythrough of a futuristic cyberpunk city at night, deep blue neon lighting, cyan reflections on wet streets, moody atmosphere",
			Settings:      cyberpunkSettings,
			Status:        BranchStatusCompleted,
			Thumbnail:     unsplash("photo-1519608487953-e999c86e7455"),
			VideoUrl:      PlaceholderVideoUrl,
		},
		{
			ID:            "b3",
			Name:          "more-traffic",
			ProjectId:     "1",
			BaseVersionId: "v2",
			CreatedAt:     ts("2024-01-17T12:00:00Z"),
			UpdatedAt:     ts("2024-01-17T16:45:00Z"),
			Author:        Author{Name: "John", Avatar: avatar("john")},
			Prompt:        "A cinematic aerial flythrough of a futuristic cyberpunk city at night, neon lights reflecting on wet streets, heavy flying car traffic, busy aerial highways, dense urban atmosphere",
			Settings:      cyberpunkSettings,
			Status:        BranchStatusCompleted,
			Thumbnail:     unsplash("photo-1480714378408-67cf0d13bc1b"),
			VideoUrl:      PlaceholderVideoUrl,
		},
		{
			ID:            "b4",
			Name:          "rain-effect",
			ProjectId:     "1",
			BaseVersionId: "v3",
			CreatedAt:     ts("2024-01-18T09:00:00Z"),
			UpdatedAt:     ts("2024-01-18T09:00:00Z"),
			Author:        DefaultAuthor(),
			Prompt:        "A cinematic aerial flythrough of a futuristic cyberpunk city at night, heavy rain, neon lights reflecting on wet streets, flying cars with headlights cutting through rain",
			Settings:      cyberpunkSettings,
			Status:        BranchStatusDraft,
		},
	}
}

func community(id, title, desc, thumb, created string, forks, views int, author, seed, prompt string, s GenerationSettings) Project {
	return Project{
		ID:          id,
		Title:       title,
		Description: desc,
		Thumbnail:   unsplash(thumb),
		CreatedAt:   ts(created),
		UpdatedAt:   ts(created),
		Status:      ProjectStatusCompleted,
		IsPublic:    true,
		Forks:       forks,
		Views:       views,
		Author:      Author{Name: author, Avatar: avatar(seed)},
		Prompt:      prompt,
		Settings:    s,
		Versions:    []Version{},
	}
}

// CommunityProjects Explore 页面展示的公开项目（只读）
func CommunityProjects() []Project {
	return []Project{
		community("c1", "Northern Lights Dance", "Aurora borealis dancing over snowy mountains",
			"photo-1531366936337-7c912a4589a7", "2024-01-14T22:00:00Z", 89, 5420, "AuroraCreator", "aurora",
			"Northern lights dancing over snow-covered mountains in Norway, stars visible, peaceful winter night",
			GenerationSettings{Duration: 8, AspectRatio: AspectLandscape, Style: "Cinematic", Model: "Gen-3 Alpha"}),
		community("c2", "Tokyo Street Walk", "First-person walk through Tokyo's neon streets",
			"photo-1540959733332-eab4deabeeaf", "2024-01-13T18:30:00Z", 156, 8932, "TokyoDreamer", "tokyo",
			"First-person POV walking through Shibuya at night, neon signs, crowds, rain-slicked streets, cinematic",
			GenerationSettings{Duration: 6, AspectRatio: AspectPortrait, Style: "Cinematic", Model: "Gen-3 Alpha"}),
		community("c3", "Underwater Coral Reef", "Exploring a vibrant coral reef ecosystem",
			"photo-1546026423-cc4642628d2b", "2024-01-11T10:15:00Z", 67, 3211, "OceanExplorer", "ocean",
			"Underwater POV swimming through a colorful coral reef, tropical fish, sunlight rays penetrating water",
			GenerationSettings{Duration: 5, AspectRatio: AspectLandscape, Style: "Natural", Model: "Stable Video"}),
		community("c4", "Zen Garden Meditation", "Peaceful Japanese zen garden with raked sand",
			"photo-1464822759023-fed622ff2c3b", "2024-01-09T07:00:00Z", 34, 1876, "ZenMaster", "zen",
			"Japanese zen garden with raked sand patterns, stone arrangements, gentle wind moving bamboo, morning mist",
			GenerationSettings{Duration: 10, AspectRatio: AspectLandscape, Style: "Natural", Model: "Gen-3 Alpha"}),
		community("c5", "Space Station Orbit", "View of Earth from an orbiting space station",
			"photo-1446776811953-b23d57bd21aa", "2024-01-07T14:45:00Z", 203, 12450, "SpaceVoyager", "space",
			"POV from space station window looking at Earth, slow rotation, sunrise over the planet, stars visible",
			GenerationSettings{Duration: 8, AspectRatio: AspectLandscape, Style: "Cinematic", Model: "Gen-3 Alpha"}),
		community("c6", "Rainy Window", "Cozy view through a rain-streaked window",
			"photo-1501999635878-71cb5379c2d8", "2024-01-05T20:00:00Z", 45, 2890, "CozyVibes", "cozy",
			"Raindrops on window glass, blurred city lights in background, cozy indoor atmosphere, lofi aesthetic",
			GenerationSettings{Duration: 15, AspectRatio: AspectPortrait, Style: "Lofi", Model: "Stable Video"}),
	}
}
