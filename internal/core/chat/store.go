package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"ohmycook/internal/pkg/common"
)

// Responder 以完整歷史取得一則模型回覆
type Responder interface {
	Chat(ctx context.Context, history []common.ChatMessage, message string, profile common.UserProfile, lang common.Language, recipe *common.Recipe) (string, error)
}

// thread 單一上下文鍵的對話
type thread struct {
	// sem 容量為 1，同一鍵的訊息依序送出
	sem      chan struct{}
	messages []common.ChatMessage
}

func newThread() *thread {
	return &thread{sem: make(chan struct{}, 1), messages: []common.ChatMessage{}}
}

// Store 上下文鍵到對話紀錄的對應。
// 同一鍵的訊息嚴格依序處理，不同鍵互不影響。
type Store struct {
	responder Responder

	mu      sync.Mutex
	threads map[string]*thread
	order   []string
}

// NewStore 創建對話紀錄儲存
func NewStore(responder Responder) *Store {
	return &Store{
		responder: responder,
		threads:   make(map[string]*thread),
	}
}

// threadLocked 取得或建立對話，呼叫者需持有 s.mu
func (s *Store) threadLocked(key string) *thread {
	th, ok := s.threads[key]
	if !ok {
		th = newThread()
		s.threads[key] = th
		s.order = append(s.order, key)
	}
	return th
}

func contextOf(key string, th *thread) *common.ChatContext {
	msgs := make([]common.ChatMessage, len(th.messages))
	copy(msgs, th.messages)
	return &common.ChatContext{Key: key, Messages: msgs}
}

// GetOrCreate 取得對話紀錄，不存在時建立空的
func (s *Store) GetOrCreate(key string) *common.ChatContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contextOf(key, s.threadLocked(key))
}

// Open 從食譜卡片進入對話；沒有紀錄時以提到食譜名稱的問候語開始
func (s *Store) Open(key, recipeName string, lang common.Language) *common.ChatContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	th := s.threadLocked(key)
	if len(th.messages) == 0 && recipeName != "" {
		th.messages = append(th.messages, common.ChatMessage{
			Role: common.RoleModel,
			Text: common.ChatGreeting(recipeName, lang),
		})
	}
	return contextOf(key, th)
}

// Keys 依建立順序列出所有上下文鍵
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// AppendAndReply 加入使用者訊息、以先前的完整歷史呼叫模型，再加入回覆。
// 呼叫失敗時移除剛加入的使用者訊息。
func (s *Store) AppendAndReply(ctx context.Context, key, text string, profile common.UserProfile, lang common.Language, recipe *common.Recipe) (*common.ChatMessage, error) {
	s.mu.Lock()
	th := s.threadLocked(key)
	s.mu.Unlock()

	select {
	case th.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-th.sem }()

	s.mu.Lock()
	history := make([]common.ChatMessage, len(th.messages))
	copy(history, th.messages)
	th.messages = append(th.messages, common.ChatMessage{Role: common.RoleUser, Text: text})
	s.mu.Unlock()

	reply, err := s.responder.Chat(ctx, history, text, profile, lang, recipe)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Reset 之後舊的 thread 已不在 map 中
	live := s.threads[key] == th

	if err != nil {
		if live {
			th.messages = th.messages[:len(history)]
		}
		common.LogWarn("Chat reply failed",
			zap.String("context_key", key),
			zap.Error(err),
		)
		return nil, err
	}

	msg := common.ChatMessage{Role: common.RoleModel, Text: reply}
	if live {
		th.messages = append(th.messages, msg)
	} else {
		common.LogInfo("Chat context cleared while waiting for reply", zap.String("context_key", key))
	}
	return &msg, nil
}

// Snapshot 序列化所有對話（保留建立順序與訊息順序）
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.Lock()
	list := make([]*common.ChatContext, 0, len(s.order))
	for _, key := range s.order {
		list = append(list, contextOf(key, s.threads[key]))
	}
	s.mu.Unlock()

	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot chat contexts: %w", err)
	}
	return data, nil
}

// Restore 從 Snapshot 的結果還原
func (s *Store) Restore(data []byte) error {
	var list []*common.ChatContext
	if err := common.ParseJSONBytes(data, &list); err != nil {
		return fmt.Errorf("failed to restore chat contexts: %w", err)
	}

	threads := make(map[string]*thread, len(list))
	order := make([]string, 0, len(list))
	for _, c := range list {
		if c == nil {
			continue
		}
		if _, dup := threads[c.Key]; dup {
			continue
		}
		th := newThread()
		th.messages = append(th.messages, c.Messages...)
		threads[c.Key] = th
		order = append(order, c.Key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads = threads
	s.order = order
	return nil
}

// Reset 清除所有對話
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads = make(map[string]*thread)
	s.order = nil
}
