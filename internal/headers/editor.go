// Package headers implements the add/remove editor behind a target's header
// list.
package headers

import "github.com/brizzai/target-wizard/internal/target"

// Editor stages a key/value pair and commits it to an ordered list. Committed
// entries are read-only; replacing one means removing it and adding again.
type Editor struct {
	pendingKey   string
	pendingValue string
	entries      []target.Header
}

// NewEditor creates an editor seeded with a copy of initial
func NewEditor(initial []target.Header) *Editor {
	e := &Editor{}
	e.Reset(initial)
	return e
}

// Reset replaces the committed entries with a copy of entries and clears the
// pending pair
func (e *Editor) Reset(entries []target.Header) {
	e.entries = append([]target.Header(nil), entries...)
	e.pendingKey = ""
	e.pendingValue = ""
}

func (e *Editor) SetPendingKey(key string)     { e.pendingKey = key }
func (e *Editor) SetPendingValue(value string) { e.pendingValue = value }

// Pending returns the staged pair
func (e *Editor) Pending() (string, string) {
	return e.pendingKey, e.pendingValue
}

// CanAdd reports whether Add would commit anything
func (e *Editor) CanAdd() bool {
	return e.pendingKey != "" && e.pendingValue != ""
}

// Add commits the pending pair when both halves are non-empty. Duplicate keys
// are kept in order. The pending pair is cleared only on commit.
func (e *Editor) Add() bool {
	if !e.CanAdd() {
		return false
	}
	e.entries = append(e.entries, target.NewHeader(e.pendingKey, e.pendingValue))
	e.pendingKey = ""
	e.pendingValue = ""
	return true
}

// Remove drops the entry at index; out of range indexes are ignored
func (e *Editor) Remove(index int) bool {
	if index < 0 || index >= len(e.entries) {
		return false
	}
	e.entries = append(e.entries[:index:index], e.entries[index+1:]...)
	return true
}

// Len returns the number of committed entries
func (e *Editor) Len() int {
	return len(e.entries)
}

// Entries returns a copy of the committed entries, or nil when there are none
func (e *Editor) Entries() []target.Header {
	if len(e.entries) == 0 {
		return nil
	}
	return append([]target.Header(nil), e.entries...)
}
