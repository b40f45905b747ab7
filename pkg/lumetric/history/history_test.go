package history

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
)

func table(category string) models.Table {
	return models.Table{
		CategoryLabel: "Category",
		Categories:    []string{category},
		Series: []models.Series{
			{ID: "s", Name: "A", Visible: true, Data: []models.DataPoint{{Category: category, Value: 1}}},
		},
	}
}

func testStore(opts ...Option) *Store {
	n := 0
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	opts = append([]Option{
		WithIDs(func() string {
			n++
			return fmt.Sprintf("e%d", n)
		}),
		WithClock(func() time.Time { return base.Add(time.Duration(n) * time.Minute) }),
	}, opts...)
	return NewStore(opts...)
}

func TestStoreAdd(t *testing.T) {
	s := testStore()

	e := s.Add("first.csv", table("x"))
	assert.Equal(t, "e1", e.ID)
	assert.Equal(t, "first.csv", e.Name)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 5, 5, 0, time.UTC), e.Timestamp)

	s.Add("second.csv", table("y"))

	got := s.List()
	require.Len(t, got, 2)
	assert.Equal(t, "second.csv", got[0].Name)
	assert.Equal(t, "first.csv", got[1].Name)
}

func TestStoreEvictsOldest(t *testing.T) {
	s := testStore()
	for i := 0; i < MaxEntries+2; i++ {
		s.Add(fmt.Sprintf("f%d", i), table("x"))
	}

	got := s.List()
	require.Len(t, got, MaxEntries)
	assert.Equal(t, "f6", got[0].Name)
	assert.Equal(t, "f2", got[MaxEntries-1].Name)

	_, ok := s.Get("e1")
	assert.False(t, ok)
}

func TestStoreWithLimit(t *testing.T) {
	s := testStore(WithLimit(2))
	s.Add("a", table("x"))
	s.Add("b", table("x"))
	s.Add("c", table("x"))
	assert.Equal(t, 2, s.Len())

	assert.Equal(t, MaxEntries, NewStore(WithLimit(0)).limit)
}

func TestStoreGetAndLatest(t *testing.T) {
	s := testStore()

	_, ok := s.Latest()
	assert.False(t, ok)

	first := s.Add("a", table("x"))
	s.Add("b", table("y"))

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, "b", latest.Name)

	got, ok := s.Get(first.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, got.Table.Categories)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStoreIsolatesTables(t *testing.T) {
	s := testStore()
	in := table("x")
	e := s.Add("a", in)

	in.Categories[0] = "mutated"
	e.Table.Series[0].Data[0].Value = 42

	listed := s.List()
	listed[0].Table.Categories[0] = "also mutated"

	got, ok := s.Get(e.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, got.Table.Categories)
	assert.Equal(t, 1.0, got.Table.Series[0].Data[0].Value)
}

func TestStoreClear(t *testing.T) {
	s := testStore()
	s.Add("a", table("x"))
	s.Clear()

	assert.Empty(t, s.List())
	assert.Equal(t, 0, s.Len())
}

func TestStoreConcurrentAdd(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add(fmt.Sprintf("f%d", i), table("x"))
			s.List()
		}(i)
	}
	wg.Wait()

	got := s.List()
	assert.Len(t, got, MaxEntries)
	seen := map[string]bool{}
	for _, e := range got {
		assert.False(t, seen[e.ID])
		seen[e.ID] = true
	}
}
