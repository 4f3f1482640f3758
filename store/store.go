package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound key 不存在
	ErrNotFound = errors.New("store: key not found")
	// ErrUnavailable 后端不可用（未配置或连接失败）
	ErrUnavailable = errors.New("store: backend unavailable")
)

// Store 是一个持久化的 key -> JSON 文档映射，没有事务，后写覆盖先写。
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
