package recipe

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"ohmycook/internal/pkg/common"
)

// SavedRecipes 使用者收藏的食譜，以名稱為鍵，保留收藏順序
type SavedRecipes struct {
	mu    sync.RWMutex
	items map[string]*common.Recipe
	order []string
}

// NewSavedRecipes 創建收藏清單
func NewSavedRecipes() *SavedRecipes {
	return &SavedRecipes{items: make(map[string]*common.Recipe)}
}

// Toggle 切換收藏；收藏時保存當下狀態的副本。回傳切換後是否為收藏狀態
func (s *SavedRecipes) Toggle(r *common.Recipe) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[r.Name]; ok {
		delete(s.items, r.Name)
		for i, name := range s.order {
			if name == r.Name {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return false
	}
	s.items[r.Name] = r.Clone()
	s.order = append(s.order, r.Name)
	return true
}

// Contains 是否已收藏
func (s *SavedRecipes) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[name]
	return ok
}

// Get 取得收藏副本
func (s *SavedRecipes) Get(name string) (*common.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.items[name]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// List 依收藏順序列出
func (s *SavedRecipes) List() []*common.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*common.Recipe, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.items[name].Clone())
	}
	return out
}

// ApplyHydrated 同名食譜載入完成時就地更新 pending 的收藏（不限批次），回傳是否有更新
func (s *SavedRecipes) ApplyHydrated(r *common.Recipe) bool {
	if !r.IsHydrated() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, ok := s.items[r.Name]
	if !ok || saved.IsHydrated() {
		return false
	}
	if saved.ID != r.ID {
		common.LogDebug("Saved recipe hydrated from another batch",
			zap.String("recipe", r.Name),
			zap.String("saved_id", saved.ID),
			zap.String("hydrated_id", r.ID),
		)
	}
	s.items[r.Name] = r.Clone()
	return true
}

// Snapshot 序列化收藏清單
func (s *SavedRecipes) Snapshot() ([]byte, error) {
	s.mu.RLock()
	list := make([]*common.Recipe, 0, len(s.order))
	for _, name := range s.order {
		list = append(list, s.items[name])
	}
	data, err := json.Marshal(list)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot saved recipes: %w", err)
	}
	return data, nil
}

// Restore 從 Snapshot 的結果還原
func (s *SavedRecipes) Restore(data []byte) error {
	var list []*common.Recipe
	if err := common.ParseJSONBytes(data, &list); err != nil {
		return fmt.Errorf("failed to restore saved recipes: %w", err)
	}
	items := make(map[string]*common.Recipe, len(list))
	order := make([]string, 0, len(list))
	for _, r := range list {
		if r == nil {
			continue
		}
		if _, dup := items[r.Name]; dup {
			continue
		}
		items[r.Name] = r
		order = append(order, r.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.order = order
	return nil
}

// Reset 清空收藏
func (s *SavedRecipes) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*common.Recipe)
	s.order = nil
}
