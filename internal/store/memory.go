package store

import (
	"sort"
	"sync"
)

// Memory is a Store held in process memory.
// The whole of each call runs under one lock, writes exclusive and reads shared.
type Memory struct {
	mu    sync.RWMutex
	hosts map[string]map[string]struct{}
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		hosts: make(map[string]map[string]struct{}),
	}
}

// InsertUnique implements Store. It never fails.
func (m *Memory) InsertUnique(host string, urls []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.hosts[host]
	if !ok {
		set = make(map[string]struct{}, len(urls))
		m.hosts[host] = set
	}

	fresh := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, seen := set[u]; seen {
			continue
		}
		set[u] = struct{}{}
		fresh = append(fresh, u)
	}

	return fresh, nil
}

// URLs implements Store. The result is sorted and owned by the caller.
func (m *Memory) URLs(host string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	set := m.hosts[host]
	out := make([]string, 0, len(set))
	for u := range set {
		out = append(out, u)
	}
	sort.Strings(out)

	return out, nil
}

// Count implements Store.
func (m *Memory) Count(host string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hosts[host]), nil
}

// Hosts implements Store. The result is sorted.
func (m *Memory) Hosts() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.hosts))
	for h, set := range m.hosts {
		if len(set) > 0 {
			out = append(out, h)
		}
	}
	sort.Strings(out)

	return out, nil
}

// Close implements Store. It is a no-op.
func (m *Memory) Close() error {
	return nil
}
