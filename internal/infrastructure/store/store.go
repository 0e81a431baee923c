// Package store 依使用者分區保存的扁平鍵值紀錄，以及即時通知通道。
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"ohmycook/internal/infrastructure/config"
)

// ErrNotFound 紀錄不存在
var ErrNotFound = errors.New("store: record not found")

// Store 扁平鍵值儲存
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	// Incr 原子地增加整數計數並回傳新值
	Incr(ctx context.Context, key string, delta int64) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// Notifier 即時變更通知
type Notifier interface {
	Publish(ctx context.Context, channel, payload string) error
	// Subscribe 註冊處理函式，回傳取消訂閱函式
	Subscribe(ctx context.Context, channel string, handler func(payload string)) (func(), error)
}

// Open 依設定建立儲存與通知通道
func Open(ctx context.Context, cfg config.StoreConfig) (Store, Notifier, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(), NewLocalNotifier(), nil
	case "redis":
		r, err := NewRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	case "badger":
		b, err := NewBadger(cfg.BadgerPath, false)
		if err != nil {
			return nil, nil, err
		}
		return b, NewLocalNotifier(), nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// GetCount 讀取計數，不存在時為 0
func GetCount(ctx context.Context, s Store, key string) (int64, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return parseCount(raw)
}

func parseCount(raw []byte) (int64, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("store: invalid counter value %q: %w", raw, err)
	}
	return n, nil
}
