// Package hashtable implements a generic open addressing hash table with
// linear scanning for collisions.
//
// Removed entries leave tombstones behind, so that collision chains running
// through a removed slot stay intact for every other key. Tombstones count
// against the load factor, and are dropped whenever storage is rehashed.
package hashtable

import (
	"fmt"
	"hash/maphash"
	"iter"
)

const (
	// MinCapacity is the capacity allocated by the first growth. Later growth
	// doubles capacity, except when tombstones outnumber live entries: then
	// storage is rehashed at the same capacity, dropping the tombstones.
	MinCapacity = 64

	// MaxLoad is the load factor, counting both live entries and tombstones,
	// at or past which an insert first rehashes.
	MaxLoad = 0.75
)

// Table maps keys to values. The zero value is not usable, create one with
// New. A Table must not be used from more than one goroutine at a time.
type Table[K comparable, V any] struct {
	slots []slot[K, V]

	occupied int
	deleted  int
	vacant   int

	hash    Hasher[K]
	initCap int
	logfn   func(mess string, args ...interface{})
}

// New creates an empty table. Unless WithCapacity is given, no storage is
// allocated until the first insert.
func New[K comparable, V any](opts ...Option[K, V]) *Table[K, V] {
	var t Table[K, V]
	t.apply(opts...)
	if t.hash == nil {
		t.hash = MaphashHasher[K](maphash.MakeSeed())
	}
	if t.initCap > 0 {
		t.rehash(capacityFor(t.initCap))
	}
	return &t
}

// capacityFor returns the smallest capacity reachable by growth that holds n
// entries under MaxLoad.
func capacityFor(n int) int {
	c := MinCapacity
	for float64(n) >= MaxLoad*float64(c) {
		c *= 2
	}
	return c
}

// Len returns the number of entries.
func (t *Table[K, V]) Len() int { return t.occupied }

// Cap returns the number of slots in storage.
func (t *Table[K, V]) Cap() int { return len(t.slots) }

func (t *Table[K, V]) load() float64 {
	if len(t.slots) == 0 {
		return 1
	}
	return float64(t.occupied+t.deleted) / float64(len(t.slots))
}

func (t *Table[K, V]) home(key K) int {
	return int(t.hash(key) % uint64(len(t.slots)))
}

// Insert sets the value for key, returning any previous value and whether
// there was one.
func (t *Table[K, V]) Insert(key K, value V) (prev V, replaced bool) {
	if t.load() >= MaxLoad {
		t.grow()
	}
	return t.insert(key, value)
}

func (t *Table[K, V]) insert(key K, value V) (prev V, replaced bool) {
	n := len(t.slots)
	reuse := -1
	for i, j := 0, t.home(key); i < n; i, j = i+1, j+1 {
		if j == n {
			j = 0
		}
		sl := &t.slots[j]
		switch sl.state {
		case occupied:
			if sl.key == key {
				return sl.replace(value), true
			}
		case deleted:
			if reuse < 0 {
				reuse = j
			}
		case empty:
			if reuse >= 0 {
				t.slots[reuse].fill(key, value)
				t.deleted--
			} else {
				sl.fill(key, value)
				t.vacant--
			}
			t.occupied++
			return prev, false
		}
	}
	if reuse >= 0 {
		t.slots[reuse].fill(key, value)
		t.deleted--
		t.occupied++
		return prev, false
	}
	panic(&ExhaustedError{Op: "insert", Cap: n})
}

// grow rehashes into max(MinCapacity, 2*Cap()) slots, or into Cap() slots when
// tombstones outnumber live entries.
func (t *Table[K, V]) grow() {
	c := len(t.slots)
	if t.deleted <= t.occupied {
		c *= 2
	}
	if c < MinCapacity {
		c = MinCapacity
	}
	t.rehash(c)
}

func (t *Table[K, V]) rehash(capacity int) {
	old, dropped := t.slots, t.deleted
	t.slots = make([]slot[K, V], capacity)
	t.occupied, t.deleted, t.vacant = 0, 0, capacity
	for i := range old {
		if sl := &old[i]; sl.state == occupied {
			t.insert(sl.key, sl.value)
		}
	}
	t.logf("rehash cap:%v -> %v len:%v dropped:%v", len(old), capacity, t.occupied, dropped)
}

// find returns the storage index of key, or -1 if it is not present.
func (t *Table[K, V]) find(op string, key K) int {
	n := len(t.slots)
	if t.occupied == 0 {
		return -1
	}
	for i, j := 0, t.home(key); i < n; i, j = i+1, j+1 {
		if j == n {
			j = 0
		}
		switch sl := &t.slots[j]; sl.state {
		case empty:
			return -1
		case occupied:
			if sl.key == key {
				return j
			}
		}
	}
	panic(&ExhaustedError{Op: op, Cap: n})
}

// Get returns the value for key, and whether it was present.
func (t *Table[K, V]) Get(key K) (value V, ok bool) {
	if i := t.find("get", key); i >= 0 {
		return t.slots[i].value, true
	}
	return value, false
}

// Ref returns a pointer to the value stored for key, or nil if there is none.
// The pointer is invalidated by the next Insert.
func (t *Table[K, V]) Ref(key K) *V {
	if i := t.find("ref", key); i >= 0 {
		return &t.slots[i].value
	}
	return nil
}

// Contains returns true if key has a value.
func (t *Table[K, V]) Contains(key K) bool {
	return t.find("contains", key) >= 0
}

// Remove deletes any value for key, returning it and whether there was one.
func (t *Table[K, V]) Remove(key K) (value V, ok bool) {
	i := t.find("remove", key)
	if i < 0 {
		return value, false
	}
	value = t.slots[i].take()
	t.occupied--
	t.deleted++
	return value, true
}

// All iterates over every entry in storage order. Each call starts a new
// traversal; the table must not be modified during one.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range t.slots {
			if sl := &t.slots[i]; sl.state == occupied && !yield(sl.key, sl.value) {
				return
			}
		}
	}
}

// Keys iterates over every key in storage order.
func (t *Table[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}

func (t *Table[K, V]) logf(mess string, args ...interface{}) {
	if t.logfn != nil {
		t.logfn(mess, args...)
	}
}

// ExhaustedError is the panic value raised when a lookup scan visits every slot
// without terminating, which means the table's invariants were broken.
type ExhaustedError struct {
	Op  string
	Cap int
}

func (pe *ExhaustedError) Error() string {
	return fmt.Sprintf("hashtable: %v scan exhausted all %v slots", pe.Op, pe.Cap)
}
