package eviction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertEvicts(t *testing.T, p Policy, want string) {
	t.Helper()
	k, ok := p.Evict()
	assert.True(t, ok)
	assert.Equal(t, want, k)
}

func assertEmpty(t *testing.T, p Policy) {
	t.Helper()
	_, ok := p.Evict()
	assert.False(t, ok)
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	p := NewEvictionPolicy(LRU)
	p.OnPut("a")
	p.OnPut("b")
	p.OnPut("c")

	p.OnGet("a")

	assertEvicts(t, p, "b")
	assertEvicts(t, p, "c")
	assertEvicts(t, p, "a")
	assertEmpty(t, p)
}

func TestLRUOverwriteCountsAsUse(t *testing.T) {
	p := NewEvictionPolicy(LRU)
	p.OnPut("a")
	p.OnPut("b")
	p.OnPut("a")

	assert.Equal(t, 2, p.Len())
	assertEvicts(t, p, "b")
}

func TestFIFOIgnoresReadsAndOverwrites(t *testing.T) {
	p := NewEvictionPolicy(FIFO)
	p.OnPut("a")
	p.OnPut("b")
	p.OnGet("a")
	p.OnPut("a")

	assert.Equal(t, 2, p.Len())
	assertEvicts(t, p, "a")
	assertEvicts(t, p, "b")
}

func TestRemoveAndReset(t *testing.T) {
	for _, typ := range []PolicyType{LRU, FIFO} {
		t.Run(string(typ), func(t *testing.T) {
			p := NewEvictionPolicy(typ)
			p.OnPut("a")
			p.OnPut("b")

			p.Remove("a")
			p.Remove("missing")
			assert.Equal(t, 1, p.Len())
			assertEvicts(t, p, "b")

			p.OnPut("c")
			p.Reset()
			assert.Equal(t, 0, p.Len())
			assertEmpty(t, p)
		})
	}
}

func TestPolicyTypeValid(t *testing.T) {
	assert.True(t, LRU.Valid())
	assert.True(t, FIFO.Valid())
	assert.False(t, PolicyType("lfu").Valid())
	assert.Panics(t, func() { NewEvictionPolicy("lfu") })
}

func TestEmptyKeyIsEvictable(t *testing.T) {
	for _, typ := range []PolicyType{LRU, FIFO} {
		t.Run(string(typ), func(t *testing.T) {
			p := NewEvictionPolicy(typ)
			p.OnPut("")
			p.OnPut("a")

			assertEvicts(t, p, "")
			assertEvicts(t, p, "a")
			assertEmpty(t, p)
		})
	}
}
