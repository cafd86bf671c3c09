// Package filelist holds the ordered, duplicate-free queue of input files
// that a combine operation consumes.
package filelist

import (
	"path/filepath"
	"sort"
	"strings"
)

// Observer is called with a snapshot of the paths after every mutation.
type Observer func(paths []string)

// List is an ordered sequence of file paths. Paths are compared exactly
// (case-sensitive), and a path appears at most once.
type List struct {
	paths    []string
	observer Observer
}

// New returns a list pre-populated with paths, duplicates dropped.
func New(paths ...string) *List {
	l := &List{}
	l.add(paths)
	return l
}

// SetObserver registers fn to be notified after each mutation. Passing nil
// removes the observer.
func (l *List) SetObserver(fn Observer) {
	l.observer = fn
}

// Add appends every path not already present, in the given order, and
// returns how many were added. Duplicates are ignored silently.
func (l *List) Add(paths ...string) int {
	added := l.add(paths)
	l.notify()
	return added
}

func (l *List) add(paths []string) int {
	added := 0
	for _, p := range paths {
		if l.Contains(p) {
			continue
		}
		l.paths = append(l.paths, p)
		added++
	}
	return added
}

// Remove deletes the entries at the given positions. Positions are
// processed from highest to lowest; invalid positions are ignored.
func (l *List) Remove(indices ...int) {
	sel := l.selection(indices)
	for i := len(sel) - 1; i >= 0; i-- {
		idx := sel[i]
		l.paths = append(l.paths[:idx], l.paths[idx+1:]...)
	}
	l.notify()
}

// Clear empties the list.
func (l *List) Clear() {
	l.paths = nil
	l.notify()
}

// MoveUp swaps each selected entry with the one above it and returns the
// new positions of the selection. Nothing moves when the selection is
// empty or its topmost entry is already first.
func (l *List) MoveUp(indices ...int) []int {
	sel := l.selection(indices)
	if len(sel) == 0 || sel[0] == 0 {
		return sel
	}
	for _, idx := range sel {
		l.paths[idx-1], l.paths[idx] = l.paths[idx], l.paths[idx-1]
	}
	moved := make([]int, len(sel))
	for i, idx := range sel {
		moved[i] = idx - 1
	}
	l.notify()
	return moved
}

// MoveDown swaps each selected entry with the one below it and returns the
// new positions of the selection. Nothing moves when the selection is
// empty or its bottommost entry is already last.
func (l *List) MoveDown(indices ...int) []int {
	sel := l.selection(indices)
	if len(sel) == 0 || sel[len(sel)-1] == len(l.paths)-1 {
		return sel
	}
	for i := len(sel) - 1; i >= 0; i-- {
		idx := sel[i]
		l.paths[idx+1], l.paths[idx] = l.paths[idx], l.paths[idx+1]
	}
	moved := make([]int, len(sel))
	for i, idx := range sel {
		moved[i] = idx + 1
	}
	l.notify()
	return moved
}

// Len returns the number of queued paths.
func (l *List) Len() int {
	return len(l.paths)
}

// At returns the path at position i.
func (l *List) At(i int) string {
	return l.paths[i]
}

// Paths returns a copy of the queued paths in merge order.
func (l *List) Paths() []string {
	out := make([]string, len(l.paths))
	copy(out, l.paths)
	return out
}

// Contains reports whether path is queued.
func (l *List) Contains(path string) bool {
	return l.IndexOf(path) >= 0
}

// IndexOf returns the position of path, or -1.
func (l *List) IndexOf(path string) int {
	for i, p := range l.paths {
		if p == path {
			return i
		}
	}
	return -1
}

// selection normalises a set of positions: sorted ascending, unique, and
// restricted to the current bounds.
func (l *List) selection(indices []int) []int {
	seen := make(map[int]struct{}, len(indices))
	sel := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(l.paths) {
			continue
		}
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		sel = append(sel, idx)
	}
	sort.Ints(sel)
	return sel
}

func (l *List) notify() {
	if l.observer != nil {
		l.observer(l.Paths())
	}
}

// Extension returns the lower-cased extension of path, including the dot.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
