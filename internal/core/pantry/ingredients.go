package pantry

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"ohmycook/internal/pkg/common"
)

// DefaultQuantity 未指定數量時的預設值
const DefaultQuantity = "1"

// Resolver 將自由輸入的名稱對應到食材目錄鍵
type Resolver interface {
	ResolveCanonicalKey(text string) (string, bool)
}

// Canonicalize 清理輸入並對應目錄鍵；查無時以 Title Case 產生鍵，不丟棄資料。
// 清理後為空字串時回傳 false。
func Canonicalize(r Resolver, raw string) (string, bool) {
	cleaned := common.CollapseSpace(norm.NFC.String(raw))
	if cleaned == "" {
		return "", false
	}
	if key, ok := r.ResolveCanonicalKey(cleaned); ok {
		return key, true
	}
	key := cases.Title(language.English).String(strings.ToLower(cleaned))
	common.LogWarn("Unresolved ingredient name, using synthesized key",
		zap.String("raw", raw),
		zap.String("key", key),
	)
	return key, true
}

// IngredientSet 使用者持有的食材，以目錄鍵去重並保留加入順序
type IngredientSet struct {
	mu       sync.RWMutex
	items    []common.Ingredient
	priority map[string]bool
}

// NewIngredientSet 創建食材集合
func NewIngredientSet() *IngredientSet {
	return &IngredientSet{priority: make(map[string]bool)}
}

func (s *IngredientSet) indexLocked(key string) int {
	for i, it := range s.items {
		if it.CanonicalKey == key {
			return i
		}
	}
	return -1
}

// Add 加入食材；已存在時回傳 false
func (s *IngredientSet) Add(ing common.Ingredient) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(ing)
}

func (s *IngredientSet) addLocked(ing common.Ingredient) bool {
	if ing.CanonicalKey == "" || s.indexLocked(ing.CanonicalKey) >= 0 {
		return false
	}
	if strings.TrimSpace(ing.Quantity) == "" {
		ing.Quantity = DefaultQuantity
	}
	s.items = append(s.items, ing)
	return true
}

// AddAll 批次加入，回傳實際新增的項目
func (s *IngredientSet) AddAll(ings []common.Ingredient) []common.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := make([]common.Ingredient, 0, len(ings))
	for _, ing := range ings {
		if s.addLocked(ing) {
			added = append(added, s.items[len(s.items)-1])
		}
	}
	return added
}

// Remove 移除食材並清除其優先標記
func (s *IngredientSet) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(key)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.priority, key)
	return true
}

// UpdateQuantity 更新數量
func (s *IngredientSet) UpdateQuantity(key, quantity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(key)
	if i < 0 {
		return common.ErrNotFound.Wrap(fmt.Errorf("ingredient %q is not in the set", key))
	}
	if strings.TrimSpace(quantity) == "" {
		quantity = DefaultQuantity
	}
	s.items[i].Quantity = strings.TrimSpace(quantity)
	return nil
}

// TogglePriority 切換優先標記，只能標記集合中的食材
func (s *IngredientSet) TogglePriority(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(key) < 0 {
		return false, common.ErrNotFound.Wrap(fmt.Errorf("ingredient %q is not in the set", key))
	}
	if s.priority[key] {
		delete(s.priority, key)
		return false, nil
	}
	s.priority[key] = true
	return true, nil
}

// List 依加入順序列出
func (s *IngredientSet) List() []common.Ingredient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]common.Ingredient, len(s.items))
	copy(out, s.items)
	return out
}

// Keys 目前持有的目錄鍵
func (s *IngredientSet) Keys() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make(map[string]bool, len(s.items))
	for _, it := range s.items {
		keys[it.CanonicalKey] = true
	}
	return keys
}

// PriorityKeys 依加入順序列出有優先標記的鍵
func (s *IngredientSet) PriorityKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	for _, it := range s.items {
		if s.priority[it.CanonicalKey] {
			out = append(out, it.CanonicalKey)
		}
	}
	return out
}

type ingredientSnapshot struct {
	Items    []common.Ingredient `json:"items"`
	Priority []string            `json:"priority"`
}

// Snapshot 序列化食材與優先標記
func (s *IngredientSet) Snapshot() ([]byte, error) {
	snap := ingredientSnapshot{Items: s.List(), Priority: s.PriorityKeys()}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot ingredients: %w", err)
	}
	return data, nil
}

// Restore 從 Snapshot 的結果還原
func (s *IngredientSet) Restore(data []byte) error {
	var snap ingredientSnapshot
	if err := common.ParseJSONBytes(data, &snap); err != nil {
		return fmt.Errorf("failed to restore ingredients: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.priority = make(map[string]bool)
	for _, it := range snap.Items {
		s.addLocked(it)
	}
	for _, key := range snap.Priority {
		if s.indexLocked(key) >= 0 {
			s.priority[key] = true
		}
	}
	return nil
}

// Reset 清空集合
func (s *IngredientSet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.priority = make(map[string]bool)
}
