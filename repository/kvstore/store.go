// Package kvstore 提供扁平的字符串键值存储，作为未确认标注的持久化底座。
package kvstore

import (
	"context"
	"strings"
	"sync"
)

// Store 是扁平的字符串键值存储。键不存在时 Get 返回 ok=false，不视为错误。
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type MemStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

func (s *MemStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	return value, ok, nil
}

func (s *MemStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *MemStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

type namespaced struct {
	prefix string
	inner  Store
}

var prefixEscaper = strings.NewReplacer(`\`, `\\`, ":", `\:`)

/*
Namespace 给 inner 的所有键加上 prefix + ":" 前缀，用于按标注人隔离暂存区。

prefix 中的 \ 和 : 会被转义，第一个未转义的 : 总是分隔符，不同 prefix 的键不会重叠。
*/
func Namespace(inner Store, prefix string) Store {
	return &namespaced{prefix: prefixEscaper.Replace(prefix) + ":", inner: inner}
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}
