package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"genvo-server/idgen"
	"genvo-server/models"
	"genvo-server/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// store 中的 key 布局
const (
	KeyProjects    = "projects"
	KeyBranches    = "branches"
	KeyInitialized = "initialized"
	KeyTasks       = "tasks"
)

var initializedValue = []byte("true")

// Repository 对 Project / Branch 集合做整表读改写。
// 每个集合序列化后存在一个 key 下，没有乐观锁：同一进程内由 mu 串行化，
// 多个进程共享同一个 store 时以最后一次整表写入为准。
type Repository struct {
	store  store.Store
	ids    idgen.Generator
	now    func() time.Time
	logger zerolog.Logger

	seedProjects func() []models.Project
	seedBranches func() []models.Branch

	mu sync.Mutex
}

type Option func(*Repository)

func WithIDGenerator(g idgen.Generator) Option {
	return func(r *Repository) { r.ids = g }
}

func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Repository) { r.logger = l }
}

// WithSeed 替换首次启动写入的默认数据
func WithSeed(projects func() []models.Project, branches func() []models.Branch) Option {
	return func(r *Repository) {
		r.seedProjects = projects
		r.seedBranches = branches
	}
}

func New(s store.Store, opts ...Option) *Repository {
	r := &Repository{
		store:        s,
		ids:          idgen.Default,
		now:          time.Now,
		logger:       log.With().Str("component", "repository").Logger(),
		seedProjects: models.SeedProjects,
		seedBranches: models.SeedBranches,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now 仓库使用的时钟，上层服务共用同一个时间源
func (r *Repository) Now() time.Time {
	return r.now()
}

// NewID 仓库使用的 ID 生成器
func (r *Repository) NewID() string {
	return r.ids.NewID()
}

// ensureInitialized 首次访问时写入种子数据。
// initialized 标记一旦写入就不会再次播种，即使集合之后被删空。
func (r *Repository) ensureInitialized(ctx context.Context) {
	_, err := r.store.Read(ctx, KeyInitialized)
	if err == nil {
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		// store 不可用时直接读种子数据，不做任何写入
		r.logger.Debug().Err(err).Msg("store unavailable, skip seeding")
		return
	}
	r.logger.Info().Msg("seeding store with default dataset")
	r.write(ctx, KeyProjects, r.seedProjects())
	r.write(ctx, KeyBranches, r.seedBranches())
	r.writeRaw(ctx, KeyInitialized, initializedValue)
}

// loadProjects 第二个返回值为 false 时集合来自种子数据的兜底副本，不能写回 store
func (r *Repository) loadProjects(ctx context.Context) ([]models.Project, bool) {
	r.ensureInitialized(ctx)
	var projects []models.Project
	found, err := r.read(ctx, KeyProjects, &projects)
	switch {
	case err != nil:
		return r.seedProjects(), false
	case !found:
		return r.seedProjects(), true
	}
	return projects, true
}

func (r *Repository) loadBranches(ctx context.Context) ([]models.Branch, bool) {
	r.ensureInitialized(ctx)
	var branches []models.Branch
	found, err := r.read(ctx, KeyBranches, &branches)
	switch {
	case err != nil:
		return r.seedBranches(), false
	case !found:
		return r.seedBranches(), true
	}
	return branches, true
}

// read 区分两种情况：key 不存在返回 (false, nil)；
// store 不可用或数据损坏返回 error，调用方只能读兜底数据
func (r *Repository) read(ctx context.Context, key string, out interface{}) (bool, error) {
	b, err := r.store.Read(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("store read failed, using fallback")
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("corrupted collection, using fallback")
		return false, err
	}
	return true, nil
}

// save 集合来自兜底数据时跳过写入，避免用种子数据覆盖 store 中的真实内容
func (r *Repository) save(ctx context.Context, key string, v interface{}, loaded bool) {
	if !loaded {
		r.logger.Warn().Str("key", key).Msg("collection not loaded from store, change not persisted")
		return
	}
	r.write(ctx, key, v)
}

func (r *Repository) write(ctx context.Context, key string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("marshal collection failed")
		return
	}
	r.writeRaw(ctx, key, b)
}

// writeRaw 写失败只记日志，不向调用方返回错误
func (r *Repository) writeRaw(ctx context.Context, key string, b []byte) {
	if err := r.store.Write(ctx, key, b); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("store write failed, change not persisted")
	}
}

// Reset 用默认数据覆盖当前内容
func (r *Repository) Reset(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.write(ctx, KeyProjects, r.seedProjects())
	r.write(ctx, KeyBranches, r.seedBranches())
	r.writeRaw(ctx, KeyInitialized, initializedValue)
	r.logger.Info().Msg("store reset to default dataset")
}

// Clear 删除全部集合和初始化标记，下一次访问会重新播种
func (r *Repository) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range []string{KeyProjects, KeyBranches, KeyInitialized} {
		if err := r.store.Delete(ctx, key); err != nil {
			r.logger.Warn().Err(err).Str("key", key).Msg("store delete failed")
		}
	}
	r.logger.Info().Msg("store cleared")
}
