package videogen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"genvo-server/store"
)

// KeyAPIKey store 中保存 fal.ai API key 的 key
const KeyAPIKey = "fal_api_key"

// Keys 用户保存的 key 优先，其次是配置文件 / 环境变量中的 key
type Keys struct {
	store    store.Store
	fallback string
}

func NewKeys(s store.Store, fallback string) *Keys {
	return &Keys{store: s, fallback: fallback}
}

func (k *Keys) Get(ctx context.Context) string {
	b, err := k.store.Read(ctx, KeyAPIKey)
	if err != nil {
		return k.fallback
	}
	var key string
	if err := json.Unmarshal(b, &key); err != nil || key == "" {
		return k.fallback
	}
	return key
}

func (k *Keys) Configured(ctx context.Context) bool {
	return k.Get(ctx) != ""
}

func (k *Keys) Save(ctx context.Context, key string) error {
	b, err := json.Marshal(key)
	if err != nil {
		return err
	}
	if err := k.store.Write(ctx, KeyAPIKey, b); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	return nil
}

func (k *Keys) Clear(ctx context.Context) error {
	if err := k.store.Delete(ctx, KeyAPIKey); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("clear api key: %w", err)
	}
	return nil
}
