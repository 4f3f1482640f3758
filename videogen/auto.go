package videogen

import "context"

// Auto 有 API key 时走 fal.ai，没有时按配置退回 demo 模式
type Auto struct {
	Keys         *Keys
	Fal          FalConfig
	Demo         Client
	DemoFallback bool
}

func (a *Auto) Generate(ctx context.Context, req Request) (*Result, error) {
	key := a.Keys.Get(ctx)
	if key == "" {
		if a.DemoFallback && a.Demo != nil {
			return a.Demo.Generate(ctx, req)
		}
		return nil, ErrMissingAPIKey
	}
	return NewFal(a.Fal, key).Generate(ctx, req)
}
