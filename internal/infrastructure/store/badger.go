package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"

	"ohmycook/internal/pkg/common"

	"go.uber.org/zap"
)

// Badger 以 Badger 為後端的單機持久化儲存
type Badger struct {
	db *badger.DB
}

// NewBadger 開啟資料庫；inMemory 為 true 時不寫入磁碟
func NewBadger(path string, inMemory bool) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts.SyncWrites = true
		opts.CompactL0OnClose = true
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	common.LogInfo("Badger database opened", zap.String("path", path), zap.Bool("in_memory", inMemory))
	return &Badger{db: db}, nil
}

func (b *Badger) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return out, err
}

func (b *Badger) Put(_ context.Context, key string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (b *Badger) Delete(_ context.Context, keys ...string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			if err := txn.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Incr 在單一交易內讀取並寫回；衝突時重試
func (b *Badger) Incr(_ context.Context, key string, delta int64) (int64, error) {
	for {
		var n int64
		err := b.db.Update(func(txn *badger.Txn) error {
			var raw []byte
			item, err := txn.Get([]byte(key))
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
			case err != nil:
				return err
			default:
				if raw, err = item.ValueCopy(nil); err != nil {
					return err
				}
			}
			if n, err = parseCount(raw); err != nil {
				return err
			}
			n += delta
			return txn.Set([]byte(key), []byte(strconv.FormatInt(n, 10)))
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		return n, err
	}
}

func (b *Badger) Ping(context.Context) error {
	if b.db.IsClosed() {
		return errors.New("badger: database closed")
	}
	return nil
}

func (b *Badger) Close() error {
	common.LogInfo("Closing badger database")
	return b.db.Close()
}
