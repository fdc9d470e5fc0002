package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type item struct {
	ID   string
	Name string
}

func itemKey(i item) string { return i.ID }

func catalog() []item {
	return []item{
		{ID: "a", Name: "Chair"},
		{ID: "b", Name: "Desk"},
		{ID: "c", Name: "Printer"},
		{ID: "d", Name: "Scanner"},
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name        string
		observed    Set
		wantPresent []string
		wantMissing []string
	}{
		{"nothing observed", NewSet(), nil, []string{"a", "b", "c", "d"}},
		{"all observed", NewSet("d", "c", "b", "a"), []string{"a", "b", "c", "d"}, nil},
		{"some observed keeps order", NewSet("c", "a"), []string{"a", "c"}, []string{"b", "d"}},
		{"unknown keys ignored", NewSet("zzz", "b"), []string{"b"}, []string{"a", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			present, missing := Partition(catalog(), itemKey, tt.observed)
			assert.Equal(t, tt.wantPresent, keys(present))
			assert.Equal(t, tt.wantMissing, keys(missing))
			assert.Len(t, append(present, missing...), len(catalog()))
		})
	}
}

func TestPartition_EmptyCatalog(t *testing.T) {
	present, missing := Partition(nil, itemKey, NewSet("a"))
	assert.Empty(t, present)
	assert.Empty(t, missing)
}

func TestOrphans(t *testing.T) {
	assert.Equal(t, []string{"x", "y"}, Orphans(catalog(), itemKey, NewSet("y", "a", "x")))
	assert.Empty(t, Orphans(catalog(), itemKey, NewSet("a")))
}

func TestSet(t *testing.T) {
	s := NewSet("a", "", "a", "b")
	assert.Len(t, s, 2)
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has(""))
}

func TestSummary_Consistent(t *testing.T) {
	assert.True(t, NewSummary(0, 0).Consistent())
	assert.True(t, NewSummary(5, 3).Consistent())
	assert.False(t, NewSummary(2, 3).Consistent())
	assert.False(t, Summary{Total: 3, Found: 1, NotFound: 1}.Consistent())
}

func keys(items []item) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
