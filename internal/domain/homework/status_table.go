// internal/domain/homework/status_table.go
package homework

// StatusTable remembers the last observed status per homework name.
// It lives only in memory: after a restart every homework is reported again.
// Not safe for concurrent use; it is owned by a single polling loop.
type StatusTable struct {
	last map[string]Status
}

func NewStatusTable() *StatusTable {
	return &StatusTable{last: make(map[string]Status)}
}

// Get returns the stored status for name and whether one exists.
func (t *StatusTable) Get(name string) (Status, bool) {
	s, ok := t.last[name]
	return s, ok
}

// Set overwrites the stored status for name.
func (t *StatusTable) Set(name string, status Status) {
	t.last[name] = status
}

// Len returns the number of distinct homework names seen so far.
func (t *StatusTable) Len() int {
	return len(t.last)
}
