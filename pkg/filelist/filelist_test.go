package filelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	testCases := []struct {
		name     string
		initial  []string
		add      []string
		expected []string
		added    int
	}{
		{
			name:     "Empty list",
			add:      []string{"a.txt", "b.csv"},
			expected: []string{"a.txt", "b.csv"},
			added:    2,
		},
		{
			name:     "Duplicate of existing entry",
			initial:  []string{"a.txt"},
			add:      []string{"a.txt"},
			expected: []string{"a.txt"},
			added:    0,
		},
		{
			name:     "Duplicates within one call",
			add:      []string{"a.txt", "b.txt", "a.txt"},
			expected: []string{"a.txt", "b.txt"},
			added:    2,
		},
		{
			name:     "Case sensitive identity",
			initial:  []string{"A.txt"},
			add:      []string{"a.txt"},
			expected: []string{"A.txt", "a.txt"},
			added:    1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := New(tc.initial...)
			assert.Equal(t, tc.added, l.Add(tc.add...))
			assert.Equal(t, tc.expected, l.Paths())
		})
	}
}

func TestAddIsIdempotent(t *testing.T) {
	l := New()
	l.Add("same.txt")
	l.Add("same.txt")
	assert.Equal(t, 1, l.Len())
}

func TestRemove(t *testing.T) {
	l := New("a", "b", "c", "d")
	l.Remove(3, 1, 1, 42, -1)
	assert.Equal(t, []string{"a", "c"}, l.Paths())

	l.Remove()
	assert.Equal(t, []string{"a", "c"}, l.Paths())
}

func TestClear(t *testing.T) {
	l := New("a", "b")
	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Paths())
}

func TestMoveUp(t *testing.T) {
	testCases := []struct {
		name     string
		sel      []int
		expected []string
		moved    []int
	}{
		{name: "Single", sel: []int{2}, expected: []string{"a", "c", "b", "d"}, moved: []int{1}},
		{name: "Contiguous block", sel: []int{2, 3}, expected: []string{"a", "c", "d", "b"}, moved: []int{1, 2}},
		{name: "Unsorted selection", sel: []int{3, 1}, expected: []string{"b", "a", "d", "c"}, moved: []int{0, 2}},
		{name: "Top boundary", sel: []int{0, 2}, expected: []string{"a", "b", "c", "d"}, moved: []int{0, 2}},
		{name: "Empty selection", sel: nil, expected: []string{"a", "b", "c", "d"}, moved: []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := New("a", "b", "c", "d")
			moved := l.MoveUp(tc.sel...)
			assert.Equal(t, tc.expected, l.Paths())
			assert.Equal(t, tc.moved, moved)
		})
	}
}

func TestMoveDown(t *testing.T) {
	testCases := []struct {
		name     string
		sel      []int
		expected []string
		moved    []int
	}{
		{name: "Single", sel: []int{1}, expected: []string{"a", "c", "b", "d"}, moved: []int{2}},
		{name: "Contiguous block", sel: []int{0, 1}, expected: []string{"c", "a", "b", "d"}, moved: []int{1, 2}},
		{name: "Bottom boundary", sel: []int{1, 3}, expected: []string{"a", "b", "c", "d"}, moved: []int{1, 3}},
		{name: "Empty selection", sel: []int{}, expected: []string{"a", "b", "c", "d"}, moved: []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := New("a", "b", "c", "d")
			moved := l.MoveDown(tc.sel...)
			assert.Equal(t, tc.expected, l.Paths())
			assert.Equal(t, tc.moved, moved)
		})
	}
}

func TestMoveUpThenDownRestoresOrder(t *testing.T) {
	l := New("a", "b", "c")
	moved := l.MoveUp(1)
	require.Equal(t, []int{0}, moved)
	l.MoveDown(moved...)
	assert.Equal(t, []string{"a", "b", "c"}, l.Paths())
}

func TestObserver(t *testing.T) {
	l := New()
	var snapshots [][]string
	l.SetObserver(func(paths []string) {
		snapshots = append(snapshots, paths)
	})

	l.Add("a", "b")
	l.MoveDown(0)
	l.MoveDown(1) // boundary, no notification
	l.Remove(0)
	l.Clear()

	assert.Equal(t, [][]string{
		{"a", "b"},
		{"b", "a"},
		{"a"},
		{},
	}, snapshots)
}

func TestPathsReturnsCopy(t *testing.T) {
	l := New("a")
	p := l.Paths()
	p[0] = "mutated"
	assert.Equal(t, "a", l.At(0))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".csv", Extension("/data/REPORT.CSV"))
	assert.Equal(t, ".txt", Extension("notes.Txt"))
	assert.Equal(t, "", Extension("README"))
}
