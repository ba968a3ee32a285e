package hashtable

// Option configures a Table at construction time.
type Option[K comparable, V any] interface{ apply(t *Table[K, V]) }

func (t *Table[K, V]) apply(opts ...Option[K, V]) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(t)
		}
	}
}

type withHasher[K comparable, V any] Hasher[K]
type withCapacity[K comparable, V any] int
type withLogfn[K comparable, V any] func(mess string, args ...interface{})

// WithHasher sets the hash function used to place keys.
func WithHasher[K comparable, V any](h Hasher[K]) Option[K, V] { return withHasher[K, V](h) }

// WithCapacity pre-sizes storage so that n entries fit without a rehash.
func WithCapacity[K comparable, V any](n int) Option[K, V] { return withCapacity[K, V](n) }

// WithLogf enables trace logging of rehash events.
func WithLogf[K comparable, V any](logfn func(mess string, args ...interface{})) Option[K, V] {
	return withLogfn[K, V](logfn)
}

func (h withHasher[K, V]) apply(t *Table[K, V]) {
	if h != nil {
		t.hash = Hasher[K](h)
	}
}

func (n withCapacity[K, V]) apply(t *Table[K, V]) {
	t.initCap = int(n)
}

func (logfn withLogfn[K, V]) apply(t *Table[K, V]) {
	t.logfn = logfn
}
