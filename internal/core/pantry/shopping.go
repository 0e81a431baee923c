package pantry

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"ohmycook/internal/pkg/common"
)

// ShoppingList 購物清單，以名稱為成員，沒有數量
type ShoppingList struct {
	mu    sync.RWMutex
	items []string
}

// NewShoppingList 創建購物清單
func NewShoppingList() *ShoppingList {
	return &ShoppingList{}
}

func (l *ShoppingList) indexLocked(name string) int {
	for i, it := range l.items {
		if it == name {
			return i
		}
	}
	return -1
}

// Toggle 切換成員，回傳切換後是否在清單中
func (l *ShoppingList) Toggle(name string) bool {
	name = strings.TrimSpace(name)
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexLocked(name); i >= 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
		return false
	}
	l.items = append(l.items, name)
	return true
}

// Add 加入尚未在清單中的名稱，回傳實際新增的項目
func (l *ShoppingList) Add(names ...string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	added := []string{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || l.indexLocked(name) >= 0 {
			continue
		}
		l.items = append(l.items, name)
		added = append(added, name)
	}
	return added
}

// List 依加入順序列出
func (l *ShoppingList) List() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Snapshot 序列化購物清單
func (l *ShoppingList) Snapshot() ([]byte, error) {
	data, err := json.Marshal(l.List())
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot shopping list: %w", err)
	}
	return data, nil
}

// Restore 從 Snapshot 的結果還原
func (l *ShoppingList) Restore(data []byte) error {
	var items []string
	if err := common.ParseJSONBytes(data, &items); err != nil {
		return fmt.Errorf("failed to restore shopping list: %w", err)
	}
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
	l.Add(items...)
	return nil
}

// Reset 清空清單
func (l *ShoppingList) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}
