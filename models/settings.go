package models

const (
	AspectLandscape = "16:9"
	AspectPortrait  = "9:16"
	AspectSquare    = "1:1"

	DefaultStyle = "Cinematic"

	// PlaceholderVideoUrl 没有真实生成后端时（demo 模式）使用
	PlaceholderVideoUrl = "/videos/placeholder.mp4"
)

// GenerationSettings 值类型，嵌入在 Project / Version / Branch 中
type GenerationSettings struct {
	Duration    int    `json:"duration"`
	AspectRatio string `json:"aspectRatio"`
	Style       string `json:"style"`
	Model       string `json:"model"`
}

var StyleOptions = []string{
	"Cinematic",
	"Natural",
	"Abstract",
	"Anime",
	"Product",
	"Lofi",
	"Vintage",
	"Neon",
	"Minimalist",
	"Fantasy",
}

type ModelOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var ModelOptions = []ModelOption{
	{ID: "gen3", Name: "Gen-3 Alpha", Description: "Best quality, slower"},
	{ID: "stable", Name: "Stable Video", Description: "Fast, good quality"},
	{ID: "animate", Name: "AnimateDiff", Description: "Best for animation"},
}

type AspectRatioOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var AspectRatioOptions = []AspectRatioOption{
	{Value: AspectLandscape, Label: "16:9 Landscape"},
	{Value: AspectPortrait, Label: "9:16 Portrait"},
	{Value: AspectSquare, Label: "1:1 Square"},
}

var styleThumbnails = map[string]string{
	"Cinematic":  "photo-1545569341-9eb8b30979d9",
	"Natural":    "photo-1507525428034-b723cf961d3e",
	"Abstract":   "photo-1618005182384-a83a8bd57fbe",
	"Anime":      "photo-1578632767115-351597cf2477",
	"Product":    "photo-1523275335684-37898b6baf30",
	"Lofi":       "photo-1501999635878-71cb5379c2d8",
	"Vintage":    "photo-1558618666-fcd25c85cd64",
	"Neon":       "photo-1519608487953-e999c86e7455",
	"Minimalist": "photo-1494438639946-1ebd1d20bf85",
	"Fantasy":    "photo-1518709268805-4e9042af9f23",
}

// PlaceholderThumbnail 按风格选占位缩略图，未知风格退回 Cinematic
func PlaceholderThumbnail(style string) string {
	id, ok := styleThumbnails[style]
	if !ok {
		id = styleThumbnails[DefaultStyle]
	}
	return "https://images.unsplash.com/" + id + "?w=400&h=225&fit=crop"
}
