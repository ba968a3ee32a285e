package symtab

import "github.com/jcorbin/symtab/hashtable"

// Option configures a Table at construction time.
type Option interface{ apply(st *Table) }

var defaults = []Option{
	WithHasher(hashtable.XXHash),
}

func (st *Table) apply(opts ...Option) {
	for _, opt := range defaults {
		if opt != nil {
			opt.apply(st)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(st)
		}
	}
}

type withHasher hashtable.Hasher[string]
type withLogfn func(mess string, args ...interface{})

// WithHasher sets the token hash function; the default is hashtable.XXHash.
func WithHasher(h hashtable.Hasher[string]) Option { return withHasher(h) }

// WithLogf enables trace logging of identifier assignment, removal, and any
// rehashing of the underlying hash table.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

func (h withHasher) apply(st *Table) {
	if h != nil {
		st.hash = hashtable.Hasher[string](h)
	}
}

func (logfn withLogfn) apply(st *Table) {
	st.logfn = logfn
}
