package symtab

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/jcorbin/symtab/internal/runeio"
)

// Dump writes a listing of every symbol in identifier order, followed by a
// dump of the backing hash table.
func (st *Table) Dump(w io.Writer) error {
	dump := tableDumper{st: st, out: w}
	return dump.dump()
}

type tableDumper struct {
	st  *Table
	out io.Writer

	idWidth int
	buf     bytes.Buffer
}

func (dump *tableDumper) dump() error {
	fmt.Fprintf(&dump.buf, "# Symbol Table Dump\n")
	fmt.Fprintf(&dump.buf, "  len: %v next: %v\n", dump.st.Len(), dump.st.next)

	dump.idWidth = len(strconv.Itoa(dump.st.next))
	for id, token := range dump.st.All() {
		fmt.Fprintf(&dump.buf, "  #%*v %v\n", dump.idWidth, id, runeio.Quote(token))
		if dump.buf.Len() >= 4096 {
			if err := dump.flush(); err != nil {
				return err
			}
		}
	}
	if err := dump.flush(); err != nil {
		return err
	}

	return dump.st.ids.Dump(dump.out)
}

func (dump *tableDumper) flush() error {
	_, err := dump.buf.WriteTo(dump.out)
	return err
}
