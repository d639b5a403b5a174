package scheduler

import (
	"sync"
	"sync/atomic"
)

// Token identifies one request for a key. Only the most recently issued
// token for a key is current; results carrying an older token are stale.
type Token struct {
	key string
	gen uint64
}

func (t Token) Key() string         { return t.key }
func (t Token) Generation() uint64 { return t.gen }

// Generations hands out per-key monotonically increasing tokens. It replaces
// a global refresh lock: concurrent refreshes run freely and the loser's
// result is discarded.
type Generations struct {
	m sync.Map // key -> *atomic.Uint64
}

func NewGenerations() *Generations { return &Generations{} }

func (g *Generations) counter(key string) *atomic.Uint64 {
	if c, ok := g.m.Load(key); ok {
		return c.(*atomic.Uint64)
	}
	c, _ := g.m.LoadOrStore(key, new(atomic.Uint64))
	return c.(*atomic.Uint64)
}

// Next issues a new token for key, making every earlier token stale.
func (g *Generations) Next(key string) Token {
	return Token{key: key, gen: g.counter(key).Add(1)}
}

// Current reports whether t is still the newest token for its key.
func (g *Generations) Current(t Token) bool {
	return g.counter(t.key).Load() == t.gen
}
