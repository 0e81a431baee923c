package store

import (
	"context"
	"strconv"
	"sync"
)

// Memory 行程內儲存，適用於單機開發與測試
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory 建立記憶體儲存
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *Memory) Incr(_ context.Context, key string, delta int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, err := parseCount(m.data[key])
	if err != nil {
		return 0, err
	}
	n += delta
	m.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }

// LocalNotifier 行程內的發布訂閱
type LocalNotifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func(string)
}

// NewLocalNotifier 建立行程內通知通道
func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{subs: make(map[string]map[int]func(string))}
}

// Publish 同步呼叫所有訂閱者
func (n *LocalNotifier) Publish(_ context.Context, channel, payload string) error {
	n.mu.RLock()
	handlers := make([]func(string), 0, len(n.subs[channel]))
	for _, h := range n.subs[channel] {
		handlers = append(handlers, h)
	}
	n.mu.RUnlock()

	for _, h := range handlers {
		h(payload)
	}
	return nil
}

func (n *LocalNotifier) Subscribe(_ context.Context, channel string, handler func(string)) (func(), error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs[channel] == nil {
		n.subs[channel] = make(map[int]func(string))
	}
	id := n.nextID
	n.nextID++
	n.subs[channel][id] = handler

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs[channel], id)
	}, nil
}
