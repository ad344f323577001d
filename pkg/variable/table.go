package variable

// Table is the per-call variable store. Ids are opaque handles allocated by
// the scenario loader; id 0 never refers to a variable.
//
// A Table belongs to exactly one call and is not safe for concurrent use.
type Table interface {
	Get(id int) Value
	Set(id int, v Value)
	Reset(id int)
}

// NameLookup resolves variable ids back to their scenario names.
type NameLookup interface {
	Name(id int) string
}

// MemTable is a map backed Table.
type MemTable struct {
	vars map[int]Value
}

// NewMemTable returns an empty table.
func NewMemTable() *MemTable {
	return &MemTable{vars: make(map[int]Value)}
}

func (t *MemTable) Get(id int) Value {
	return t.vars[id]
}

func (t *MemTable) Set(id int, v Value) {
	if id <= 0 {
		return
	}
	t.vars[id] = v
}

func (t *MemTable) Reset(id int) {
	delete(t.vars, id)
}

// Len returns the number of assigned variables.
func (t *MemTable) Len() int {
	return len(t.vars)
}
