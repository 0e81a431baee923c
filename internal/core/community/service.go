package community

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"ohmycook/internal/infrastructure/store"
	"ohmycook/internal/pkg/common"
)

// Channel 搜尋次數變更的通知通道
const Channel = "recipe_search_counts"

const countKeyPrefix = "recipe_search_counts:"

// RecipeSearchCount 一份食譜的搜尋次數紀錄
type RecipeSearchCount struct {
	RecipeName  string `json:"recipe_name"`
	SearchCount int64  `json:"search_count"`
}

// PopularRecipe 熱門食譜與其搜尋次數
type PopularRecipe struct {
	*common.Recipe
	SearchCount int64 `json:"searchCount"`
}

// Service 熱門食譜的讀取模型，收到變更通知時讓快取失效
type Service struct {
	store    store.Store
	notifier store.Notifier

	mu    sync.RWMutex
	view  []PopularRecipe
	valid bool
	// version 每次失效遞增，避免載入期間的變更被舊資料覆蓋
	version uint64

	unsubscribe func()
}

// NewService 創建熱門食譜服務並訂閱變更通知
func NewService(ctx context.Context, st store.Store, notifier store.Notifier) (*Service, error) {
	s := &Service{store: st, notifier: notifier}
	unsubscribe, err := notifier.Subscribe(ctx, Channel, s.handleChange)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", Channel, err)
	}
	s.unsubscribe = unsubscribe
	return s, nil
}

func countKey(englishName string) string {
	return countKeyPrefix + strings.ToLower(common.CollapseSpace(englishName))
}

func (s *Service) handleChange(payload string) {
	var change RecipeSearchCount
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		common.LogWarn("Ignoring malformed search count notification", zap.Error(err))
	}
	s.Invalidate()
	common.LogDebug("Popular recipes invalidated", zap.String("recipe", change.RecipeName))
}

// Invalidate 清除排行快取
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.valid = false
	s.view = nil
	s.version++
}

// RecordSearch 記錄一次搜尋並發出通知
func (s *Service) RecordSearch(ctx context.Context, englishName string) (int64, error) {
	name := common.CollapseSpace(englishName)
	if name == "" {
		return 0, nil
	}
	count, err := s.store.Incr(ctx, countKey(name), 1)
	if err != nil {
		return 0, fmt.Errorf("failed to record search for %q: %w", name, err)
	}

	payload, err := json.Marshal(RecipeSearchCount{RecipeName: name, SearchCount: count})
	if err != nil {
		return count, err
	}
	if err := s.notifier.Publish(ctx, Channel, string(payload)); err != nil {
		// 通知失敗時至少讓本機快取失效
		s.Invalidate()
		common.LogWarn("Failed to publish search count change", zap.String("recipe", name), zap.Error(err))
	}
	return count, nil
}

// SearchCount 讀取單一食譜的搜尋次數
func (s *Service) SearchCount(ctx context.Context, englishName string) (int64, error) {
	return store.GetCount(ctx, s.store, countKey(englishName))
}

// Popular 依搜尋次數排序的熱門食譜，同次數時維持預設順序
func (s *Service) Popular(ctx context.Context) ([]PopularRecipe, error) {
	s.mu.RLock()
	if s.valid {
		out := copyView(s.view)
		s.mu.RUnlock()
		return out, nil
	}
	version := s.version
	s.mu.RUnlock()

	view := make([]PopularRecipe, 0, len(popularSeed))
	for _, r := range popularSeed {
		count, err := s.SearchCount(ctx, r.EnglishName)
		if err != nil {
			return nil, fmt.Errorf("failed to load search count for %q: %w", r.EnglishName, err)
		}
		view = append(view, PopularRecipe{Recipe: r.Clone(), SearchCount: count})
	}
	sort.SliceStable(view, func(i, j int) bool {
		return view[i].SearchCount > view[j].SearchCount
	})

	s.mu.Lock()
	if s.version == version {
		s.view = view
		s.valid = true
	}
	s.mu.Unlock()

	return copyView(view), nil
}

// Find 以名稱或英文名稱找熱門食譜
func (s *Service) Find(name string) (*common.Recipe, bool) {
	for _, r := range popularSeed {
		if r.Name == name || strings.EqualFold(r.EnglishName, name) {
			return r.Clone(), true
		}
	}
	return nil, false
}

func copyView(view []PopularRecipe) []PopularRecipe {
	out := make([]PopularRecipe, len(view))
	for i, p := range view {
		out[i] = PopularRecipe{Recipe: p.Recipe.Clone(), SearchCount: p.SearchCount}
	}
	return out
}

// Close 取消訂閱
func (s *Service) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
