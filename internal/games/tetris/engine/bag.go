package engine

import "math/rand"

// MinLookahead is the smallest number of queued kinds the bag keeps after
// every Next call. Previews rely on it.
const MinLookahead = 3

// Bag is a 7-bag randomizer. Every aligned group of seven kinds it produces
// is a permutation of all kinds.
type Bag struct {
	rng       *rand.Rand
	queue     []Kind
	lookahead int
}

// NewBag creates a bag drawing from rng. The lookahead is raised to
// MinLookahead when smaller.
func NewBag(rng *rand.Rand, lookahead int) *Bag {
	return &Bag{
		rng:       rng,
		queue:     make([]Kind, 0, 2*KindCount),
		lookahead: max(lookahead, MinLookahead),
	}
}

// Refill appends one shuffled permutation of all kinds to the queue.
func (b *Bag) Refill() {
	perm := Kinds
	for i := len(perm) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	b.queue = append(b.queue, perm[:]...)
}

// Next removes and returns the front of the queue.
func (b *Bag) Next() Kind {
	if len(b.queue) == 0 {
		b.Refill()
	}
	k := b.queue[0]
	b.queue = b.queue[1:]
	for len(b.queue) < b.lookahead {
		b.Refill()
	}
	return k
}

// Peek returns a copy of up to n queued kinds without consuming them.
func (b *Bag) Peek(n int) []Kind {
	n = min(max(n, 0), len(b.queue))
	out := make([]Kind, n)
	copy(out, b.queue[:n])
	return out
}

// Len returns the number of queued kinds.
func (b *Bag) Len() int {
	return len(b.queue)
}

// Reset drops all queued kinds. The random source keeps its position.
func (b *Bag) Reset() {
	b.queue = b.queue[:0]
}
