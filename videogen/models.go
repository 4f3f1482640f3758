package videogen

const DefaultModel = "veo3"

type Model struct {
	Key         string `json:"key"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        string `json:"costPerVideo"`
}

// Catalog 按展示顺序排列
var Catalog = []Model{
	{Key: "veo3", ID: "fal-ai/veo3/fast", Name: "Veo 3 (Google)", Description: "Google's latest, with audio generation", Cost: "~$0.50"},
	{Key: "mochi", ID: "fal-ai/mochi-v1", Name: "Mochi v1", Description: "Open-source, high-fidelity motion", Cost: "~$0.10"},
	{Key: "minimax", ID: "fal-ai/minimax/video-01-live", Name: "MiniMax Video", Description: "Fast, commercial-ready", Cost: "~$0.50"},
	{Key: "hunyuan", ID: "fal-ai/hunyuan-video", Name: "Hunyuan Video", Description: "High visual quality", Cost: "~$0.20"},
}

func Lookup(key string) (Model, bool) {
	for _, m := range Catalog {
		if m.Key == key {
			return m, true
		}
	}
	return Model{}, false
}

// BuildInput 按模型构造请求体，veo3 的 schema 与其他模型不同
func BuildInput(modelKey string, req Request) map[string]interface{} {
	if modelKey == "veo3" {
		in := map[string]interface{}{
			"prompt":         req.Prompt,
			"aspect_ratio":   "16:9",
			"duration":       "8s",
			"resolution":     "720p",
			"generate_audio": true,
		}
		if req.NegativePrompt != "" {
			in["negative_prompt"] = req.NegativePrompt
		}
		if req.Seed != nil {
			in["seed"] = *req.Seed
		}
		return in
	}

	in := map[string]interface{}{
		"prompt":                  req.Prompt,
		"negative_prompt":         req.NegativePrompt,
		"enable_prompt_expansion": true,
	}
	if req.Seed != nil {
		in["seed"] = *req.Seed
	}
	return in
}
