package symtab

import (
	"iter"

	"github.com/google/btree"

	"github.com/jcorbin/symtab/hashtable"
)

// Table assigns sequential identifiers to distinct tokens.
type Table struct {
	logging

	ids     *hashtable.Table[string, int]
	symbols *btree.BTreeG[symbol]
	next    int

	hash hashtable.Hasher[string]
}

type symbol struct {
	id    int
	token string
}

func symbolLess(a, b symbol) bool { return a.id < b.id }

// New creates an empty symbol table; the first token inserted gets
// identifier 0.
func New(opts ...Option) *Table {
	var st Table
	st.apply(opts...)
	tableOpts := []hashtable.Option[string, int]{
		hashtable.WithHasher[string, int](st.hash),
	}
	if st.logfn != nil {
		tableOpts = append(tableOpts, hashtable.WithLogf[string, int](st.logging.prefixed("#")))
	}
	st.ids = hashtable.New(tableOpts...)
	st.symbols = btree.NewG(32, symbolLess)
	return &st
}

// Len returns the number of tokens currently in the table.
func (st *Table) Len() int { return st.ids.Len() }

// Insert assigns the next identifier to token, unless it already has one.
func (st *Table) Insert(token string) { st.Symbolicate(token) }

// Symbolicate returns token's identifier, assigning the next one if token is
// new.
func (st *Table) Symbolicate(token string) (id int) {
	id, defined := st.ids.Get(token)
	if !defined {
		id = st.next
		st.next++
		st.ids.Insert(token, id)
		st.symbols.ReplaceOrInsert(symbol{id, token})
		st.logf("+", "%v %q", id, token)
	}
	return id
}

// ID returns the identifier of token, if it has one.
func (st *Table) ID(token string) (int, bool) {
	return st.ids.Get(token)
}

// Symbol returns the token with the given identifier, if any token still has it.
func (st *Table) Symbol(id int) (string, bool) {
	sym, found := st.symbols.Get(symbol{id: id})
	return sym.token, found
}

// Contains returns true if token has an identifier.
func (st *Table) Contains(token string) bool {
	return st.ids.Contains(token)
}

// Remove forgets token. Its identifier is not reused.
func (st *Table) Remove(token string) {
	if id, removed := st.ids.Remove(token); removed {
		st.symbols.Delete(symbol{id: id})
		st.logf("-", "%v %q", id, token)
	}
}

// All iterates over every (identifier, token) pair in identifier order.
func (st *Table) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		st.symbols.Ascend(func(sym symbol) bool {
			return yield(sym.id, sym.token)
		})
	}
}
