package ledger

import (
	"context"
	"sync"
)

// Memory はプロセス内メモリに保持する台帳。
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemory は空のインメモリ台帳を生成する。
func NewMemory() *Memory {
	return &Memory{}
}

var _ Ledger = (*Memory)(nil)

// Append はエントリを追記する。
func (m *Memory) Append(_ context.Context, e Entry) error {
	m.mu.Lock()
	m.entries = append(m.entries, e)
	m.mu.Unlock()
	return nil
}

// Query は指定レベルのエントリを1ページ分返す。
func (m *Memory) Query(_ context.Context, level string, page, pageSize int) ([]Entry, error) {
	m.mu.RLock()
	filtered := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		if e.Level == level {
			filtered = append(filtered, e)
		}
	}
	m.mu.RUnlock()

	rank(filtered)
	return paginate(filtered, page, pageSize), nil
}

// Count は保持しているエントリ数を返す。
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// Close は何もしない。
func (m *Memory) Close() error {
	return nil
}
