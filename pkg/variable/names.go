package variable

import (
	"sort"
	"sync"
)

// Names allocates variable ids for scenario variable names. Ids start at 1.
type Names struct {
	mu    sync.RWMutex
	ids   map[string]int
	names []string // names[id-1]
}

// NewNames returns an empty allocator.
func NewNames() *Names {
	return &Names{ids: make(map[string]int)}
}

// Find returns the id of name. When create is set an unknown name is
// allocated a new id; otherwise 0 is returned for unknown names.
func (n *Names) Find(name string, create bool) int {
	n.mu.RLock()
	id, ok := n.ids[name]
	n.mu.RUnlock()
	if ok || !create {
		return id
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if id, ok := n.ids[name]; ok {
		return id
	}
	n.names = append(n.names, name)
	id = len(n.names)
	n.ids[name] = id
	return id
}

// Name implements NameLookup. Unknown ids yield "".
func (n *Names) Name(id int) string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if id <= 0 || id > len(n.names) {
		return ""
	}
	return n.names[id-1]
}

// Len returns the number of allocated ids.
func (n *Names) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.names)
}

// Sorted returns all allocated names in lexical order.
func (n *Names) Sorted() []string {
	n.mu.RLock()
	out := make([]string, len(n.names))
	copy(out, n.names)
	n.mu.RUnlock()
	sort.Strings(out)
	return out
}
