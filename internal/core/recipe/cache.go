package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"ohmycook/internal/pkg/common"
)

// DetailHydrator 取得單一食譜的詳細內容
type DetailHydrator interface {
	HydrateDetail(ctx context.Context, recipeName string, ingredients []string, lang common.Language) (*common.RecipeDetail, error)
}

// HydratedHook 食譜載入完成後的通知
type HydratedHook func(r *common.Recipe)

// Cache 食譜名稱到食譜的快取，涵蓋概要與詳細內容。
// 同一名稱同時只會有一個載入請求。
type Cache struct {
	hydrator DetailHydrator

	mu      sync.RWMutex
	entries map[string]*common.Recipe
	order   []string
	batchID string
	// ticket 最近一次套用的推薦序號，用於擋下過期的批次
	ticket uint64
	issued uint64
	hooks  []HydratedHook

	flights singleflight.Group
}

// NewCache 創建新的食譜快取
func NewCache(hydrator DetailHydrator) *Cache {
	return &Cache{
		hydrator: hydrator,
		entries:  make(map[string]*common.Recipe),
	}
}

// OnHydrated 註冊載入完成的回呼
func (c *Cache) OnHydrated(hook HydratedHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, hook)
}

// BeginBatch 取得推薦序號，Put 時用來判斷結果是否已被更新的推薦取代
func (c *Cache) BeginBatch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

// Put 以新的批次取代目前內容，所有食譜進入 pending 狀態。
// ticket 比已套用的舊時回傳 false，內容不變。
func (c *Cache) Put(ticket uint64, batchID string, overviews []common.RecipeOverview) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ticket <= c.ticket {
		common.LogWarn("Discarding superseded recommendation batch",
			zap.String("batch_id", batchID),
			zap.Uint64("ticket", ticket),
			zap.Uint64("current_ticket", c.ticket),
		)
		return false
	}

	entries := make(map[string]*common.Recipe, len(overviews))
	order := make([]string, 0, len(overviews))
	for _, o := range overviews {
		if _, dup := entries[o.Name]; dup {
			common.LogWarn("Duplicate recipe name in batch, keeping the first",
				zap.String("recipe", o.Name),
				zap.String("batch_id", batchID),
			)
			continue
		}
		r := &common.Recipe{
			RecipeOverview: o,
			ID:             common.RecipeID(o.EnglishName, batchID),
			BatchID:        batchID,
			HydrationState: common.HydrationPending,
		}
		entries[o.Name] = r.Clone()
		order = append(order, o.Name)
	}

	c.entries = entries
	c.order = order
	c.batchID = batchID
	c.ticket = ticket
	return true
}

// Get 以名稱取得食譜副本
func (c *Cache) Get(name string) (*common.Recipe, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.entries[name]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// List 依推薦順序列出目前批次
func (c *Cache) List() []*common.Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*common.Recipe, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.entries[name].Clone())
	}
	return out
}

// BatchID 目前批次識別碼
func (c *Cache) BatchID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.batchID
}

// EnsureHydrated 確保食譜已載入詳細內容。
// 同名的並行呼叫共用同一次請求；失敗時食譜維持 pending，下次呼叫重新請求。
func (c *Cache) EnsureHydrated(ctx context.Context, name string, ingredients []string, lang common.Language) (*common.Recipe, error) {
	c.mu.RLock()
	cur, ok := c.entries[name]
	var snapshot *common.Recipe
	if ok {
		snapshot = cur.Clone()
	}
	c.mu.RUnlock()

	if !ok {
		return nil, common.ErrRecipeNotFound
	}
	if snapshot.IsHydrated() {
		return snapshot, nil
	}

	key := snapshot.ID + "\x00" + name
	ch := c.flights.DoChan(key, func() (interface{}, error) {
		return c.hydrate(ctx, snapshot, ingredients, lang)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			common.LogDebug("Joined in-flight hydration", zap.String("recipe", name))
		}
		return res.Val.(*common.Recipe).Clone(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// hydrate 實際的載入流程，只在 singleflight 內執行
func (c *Cache) hydrate(ctx context.Context, snapshot *common.Recipe, ingredients []string, lang common.Language) (*common.Recipe, error) {
	name := snapshot.Name

	c.mu.RLock()
	if cur, ok := c.entries[name]; ok && cur.ID == snapshot.ID && cur.IsHydrated() {
		out := cur.Clone()
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	// 共用的請求不隨第一個呼叫者取消，逾時交給傳輸層
	detail, err := c.hydrator.HydrateDetail(context.WithoutCancel(ctx), name, ingredients, lang)
	if err != nil {
		common.LogWarn("Recipe hydration failed", zap.String("recipe", name), zap.Error(err))
		return nil, &common.HydrationFailure{Name: name, Err: err}
	}

	hydrated := snapshot.Clone()
	hydrated.Detail = detail
	hydrated.HydrationState = common.HydrationHydrated

	c.mu.Lock()
	cur, ok := c.entries[name]
	if ok && cur.ID == snapshot.ID && cur.BatchID == c.batchID {
		cur.Detail = hydrated.Clone().Detail
		cur.HydrationState = common.HydrationHydrated
	} else {
		common.LogInfo("Recipe batch replaced during hydration, result not cached",
			zap.String("recipe", name),
			zap.String("batch_id", snapshot.BatchID),
		)
	}
	hooks := append([]HydratedHook(nil), c.hooks...)
	c.mu.Unlock()

	for _, hook := range hooks {
		hook(hydrated.Clone())
	}
	return hydrated, nil
}

type cacheSnapshot struct {
	BatchID string           `json:"batchId"`
	Recipes []*common.Recipe `json:"recipes"`
}

// Snapshot 序列化目前批次（含載入狀態）
func (c *Cache) Snapshot() ([]byte, error) {
	c.mu.RLock()
	snap := cacheSnapshot{BatchID: c.batchID, Recipes: make([]*common.Recipe, 0, len(c.order))}
	for _, name := range c.order {
		snap.Recipes = append(snap.Recipes, c.entries[name])
	}
	data, err := json.Marshal(snap)
	c.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot recipe cache: %w", err)
	}
	return data, nil
}

// Restore 從 Snapshot 的結果還原
func (c *Cache) Restore(data []byte) error {
	var snap cacheSnapshot
	if err := common.ParseJSONBytes(data, &snap); err != nil {
		return fmt.Errorf("failed to restore recipe cache: %w", err)
	}

	entries := make(map[string]*common.Recipe, len(snap.Recipes))
	order := make([]string, 0, len(snap.Recipes))
	for _, r := range snap.Recipes {
		if r == nil {
			continue
		}
		if _, dup := entries[r.Name]; dup {
			continue
		}
		if r.HydrationState != common.HydrationHydrated || r.Detail == nil {
			r.HydrationState = common.HydrationPending
			r.Detail = nil
		}
		entries[r.Name] = r
		order = append(order, r.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	c.order = order
	c.batchID = snap.BatchID
	return nil
}

// Reset 清空快取
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*common.Recipe)
	c.order = nil
	c.batchID = ""
	c.ticket = c.issued
}
