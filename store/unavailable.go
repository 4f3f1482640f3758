package store

import "context"

// Unavailable 所有操作都返回 ErrUnavailable。
// 后端连接失败时使用，仓库层会退回到种子数据并忽略写入。
type Unavailable struct{}

func (Unavailable) Read(context.Context, string) ([]byte, error) { return nil, ErrUnavailable }

func (Unavailable) Write(context.Context, string, []byte) error { return ErrUnavailable }

func (Unavailable) Delete(context.Context, string) error { return ErrUnavailable }
