// Package session 依使用者分區管理各自的食材、食譜快取、對話、購物清單與收藏。
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"ohmycook/internal/core/chat"
	"ohmycook/internal/core/pantry"
	"ohmycook/internal/core/recipe"
	"ohmycook/internal/infrastructure/store"
	"ohmycook/internal/pkg/common"
)

// GuestPartition 未登入使用者的分區
const GuestPartition = "guest"

// 分區內的元件名稱，也是儲存鍵的後綴
const (
	ComponentIngredients = "ingredients"
	ComponentRecipes     = "recipes"
	ComponentChats       = "chats"
	ComponentShopping    = "shopping"
	ComponentSaved       = "saved"
)

var allComponents = []string{ComponentIngredients, ComponentRecipes, ComponentChats, ComponentShopping, ComponentSaved}

// 背景寫回（例如載入完成的回呼）使用的逾時
const backgroundSaveTimeout = 5 * time.Second

// PartitionKey 由使用者識別碼產生分區鍵
func PartitionKey(userID string) string {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return GuestPartition
	}
	return "user:" + userID
}

func recordKey(partition, component string) string {
	return partition + ":" + component
}

type snapshotter interface {
	Snapshot() ([]byte, error)
	Restore(data []byte) error
	Reset()
}

// Session 單一分區的狀態
type Session struct {
	Partition   string
	Ingredients *pantry.IngredientSet
	Recipes     *recipe.Cache
	Chats       *chat.Store
	Shopping    *pantry.ShoppingList
	Saved       *recipe.SavedRecipes

	store store.Store
	// saveMu 讓同一元件的寫回依序進行
	saveMu sync.Mutex
}

func (s *Session) components() map[string]snapshotter {
	return map[string]snapshotter{
		ComponentIngredients: s.Ingredients,
		ComponentRecipes:     s.Recipes,
		ComponentChats:       s.Chats,
		ComponentShopping:    s.Shopping,
		ComponentSaved:       s.Saved,
	}
}

// Save 將指定元件寫回儲存
func (s *Session) Save(ctx context.Context, components ...string) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	all := s.components()
	for _, name := range components {
		c, ok := all[name]
		if !ok {
			return fmt.Errorf("unknown session component %q", name)
		}
		data, err := c.Snapshot()
		if err != nil {
			return err
		}
		if err := s.store.Put(ctx, recordKey(s.Partition, name), data); err != nil {
			return fmt.Errorf("failed to save %s for %s: %w", name, s.Partition, err)
		}
	}
	return nil
}

func (s *Session) load(ctx context.Context) error {
	for name, c := range s.components() {
		data, err := s.store.Get(ctx, recordKey(s.Partition, name))
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load %s for %s: %w", name, s.Partition, err)
		}
		if err := c.Restore(data); err != nil {
			// 損壞的紀錄不影響其他元件
			common.LogWarn("Discarding unreadable session record",
				zap.String("partition", s.Partition),
				zap.String("component", name),
				zap.Error(err),
			)
			c.Reset()
		}
	}
	return nil
}

// ToggleSaved 切換收藏；收藏當下若快取已載入完成則使用最新內容
func (s *Session) ToggleSaved(name string, fallback *common.Recipe) (bool, error) {
	r, ok := s.Recipes.Get(name)
	if !ok {
		if s.Saved.Contains(name) {
			r, _ = s.Saved.Get(name)
		} else if fallback != nil {
			r = fallback
		} else {
			return false, common.ErrRecipeNotFound
		}
	}
	saved := s.Saved.Toggle(r)
	if saved {
		if latest, ok := s.Recipes.Get(name); ok {
			s.Saved.ApplyHydrated(latest)
		}
	}
	return saved, nil
}

// Arena 分區鍵到 Session 的對應，首次存取時從儲存載入
type Arena struct {
	store     store.Store
	hydrator  recipe.DetailHydrator
	responder chat.Responder
	hooks     []recipe.HydratedHook

	mu       sync.Mutex
	sessions map[string]*Session
	loads    singleflight.Group
}

// NewArena 創建分區管理
func NewArena(st store.Store, hydrator recipe.DetailHydrator, responder chat.Responder, hooks ...recipe.HydratedHook) *Arena {
	return &Arena{
		store:     st,
		hydrator:  hydrator,
		responder: responder,
		hooks:     hooks,
		sessions:  make(map[string]*Session),
	}
}

func (a *Arena) newSession(partition string) *Session {
	s := &Session{
		Partition:   partition,
		Ingredients: pantry.NewIngredientSet(),
		Recipes:     recipe.NewCache(a.hydrator),
		Chats:       chat.NewStore(a.responder),
		Shopping:    pantry.NewShoppingList(),
		Saved:       recipe.NewSavedRecipes(),
		store:       a.store,
	}

	s.Recipes.OnHydrated(func(r *common.Recipe) {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundSaveTimeout)
		defer cancel()
		components := []string{ComponentRecipes}
		if s.Saved.ApplyHydrated(r) {
			components = append(components, ComponentSaved)
		}
		if err := s.Save(ctx, components...); err != nil {
			common.LogError("Failed to persist hydrated recipe",
				zap.String("partition", partition),
				zap.String("recipe", r.Name),
				zap.Error(err),
			)
		}
	})
	for _, hook := range a.hooks {
		s.Recipes.OnHydrated(hook)
	}
	return s
}

// Get 取得分區的 Session
func (a *Arena) Get(ctx context.Context, partition string) (*Session, error) {
	a.mu.Lock()
	if s, ok := a.sessions[partition]; ok {
		a.mu.Unlock()
		return s, nil
	}
	a.mu.Unlock()

	v, err, _ := a.loads.Do(partition, func() (interface{}, error) {
		a.mu.Lock()
		if s, ok := a.sessions[partition]; ok {
			a.mu.Unlock()
			return s, nil
		}
		a.mu.Unlock()

		s := a.newSession(partition)
		if err := s.load(ctx); err != nil {
			return nil, err
		}

		a.mu.Lock()
		a.sessions[partition] = s
		a.mu.Unlock()
		common.LogDebug("Session loaded", zap.String("partition", partition))
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

// Clear 清除分區的所有資料
func (a *Arena) Clear(ctx context.Context, partition string) error {
	s, err := a.Get(ctx, partition)
	if err != nil {
		return err
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	for _, c := range s.components() {
		c.Reset()
	}

	keys := make([]string, 0, len(allComponents))
	for _, name := range allComponents {
		keys = append(keys, recordKey(partition, name))
	}
	if err := a.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to clear %s: %w", partition, err)
	}
	common.LogInfo("Session cleared", zap.String("partition", partition))
	return nil
}

// Len 目前載入的分區數
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.sessions)
}
