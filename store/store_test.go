package store

import (
	"slices"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/reapenglish/ttlcache/types"
)

type StoreSuite struct {
	suite.Suite
	index IndexType
	store Store
	t0    time.Time
}

func (s *StoreSuite) SetupTest() {
	s.store = New(s.index)
	s.t0 = time.Unix(1_700_000_000, 0)
}

func (s *StoreSuite) put(key string, offset time.Duration) bool {
	return s.store.Put(&types.CacheEntry{Key: key, Value: key, StoredAt: s.t0.Add(offset)})
}

func (s *StoreSuite) keys(entries []*types.CacheEntry) []string {
	out := make([]string, 0, len(entries))
	for _, ent := range entries {
		out = append(out, ent.Key)
	}
	sort.Strings(out)
	return out
}

func (s *StoreSuite) TestPutReportsCreation() {
	s.True(s.put("a", 0))
	s.False(s.put("a", time.Second))
	s.Equal(1, s.store.Len())

	ent, ok := s.store.Get("a")
	s.True(ok)
	s.Equal(s.t0.Add(time.Second), ent.StoredAt)
}

func (s *StoreSuite) TestDelete() {
	s.put("a", 0)

	ent, ok := s.store.Delete("a")
	s.True(ok)
	s.Equal("a", ent.Key)

	_, ok = s.store.Delete("a")
	s.False(ok)
	s.Equal(0, s.store.Len())
}

func (s *StoreSuite) TestRemoveBefore() {
	s.put("old1", 0)
	s.put("old2", time.Second)
	s.put("edge", 2*time.Second)
	s.put("new", 3*time.Second)

	removed := s.store.RemoveBefore(s.t0.Add(2 * time.Second))
	s.Equal([]string{"old1", "old2"}, s.keys(removed))
	s.Equal(2, s.store.Len())

	_, ok := s.store.Get("edge")
	s.True(ok, "entry stored exactly at cutoff is kept")
	_, ok = s.store.Get("new")
	s.True(ok)
}

func (s *StoreSuite) TestRemoveBeforeAfterOverwrite() {
	s.put("a", 0)
	s.put("b", time.Second)
	// refreshing a moves it after b
	s.put("a", 5*time.Second)

	removed := s.store.RemoveBefore(s.t0.Add(2 * time.Second))
	s.Equal([]string{"b"}, s.keys(removed))

	_, ok := s.store.Get("a")
	s.True(ok)
}

func (s *StoreSuite) TestRangeStops() {
	for i, k := range []string{"a", "b", "c"} {
		s.put(k, time.Duration(i)*time.Second)
	}
	visited := 0
	s.store.Range(func(*types.CacheEntry) bool {
		visited++
		return visited < 2
	})
	s.Equal(2, visited)
}

func (s *StoreSuite) TestReset() {
	s.put("a", 0)
	s.put("b", 0)
	s.store.Reset()

	s.Equal(0, s.store.Len())
	s.Empty(s.store.RemoveBefore(s.t0.Add(time.Hour)))
	s.True(s.put("a", 0))
}

func TestMapStore(t *testing.T) {
	suite.Run(t, &StoreSuite{index: IndexScan})
}

func TestOrderedStore(t *testing.T) {
	suite.Run(t, &StoreSuite{index: IndexOrdered})
}

func TestOrderedStoreRangeIsOldestFirst(t *testing.T) {
	st := NewOrderedStore()
	t0 := time.Unix(0, 0)
	st.Put(&types.CacheEntry{Key: "c", StoredAt: t0.Add(3 * time.Second)})
	st.Put(&types.CacheEntry{Key: "a", StoredAt: t0.Add(1 * time.Second)})
	st.Put(&types.CacheEntry{Key: "b", StoredAt: t0.Add(2 * time.Second)})
	// same instant as b, inserted later
	st.Put(&types.CacheEntry{Key: "b2", StoredAt: t0.Add(2 * time.Second)})

	var order []string
	st.Range(func(ent *types.CacheEntry) bool {
		order = append(order, ent.Key)
		return true
	})
	if got, want := order, []string{"a", "b", "b2", "c"}; !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNewPanicsOnUnknownIndex(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown index type")
		}
	}()
	New("bogus")
}
