package hashtable

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Dump writes a human readable listing of the table's storage to w: a
// summary line, then one line for every non-empty slot, giving each live
// entry's home index when a collision displaced it. String keys and values
// are quoted, so that each slot stays on one line.
func (t *Table[K, V]) Dump(w io.Writer) error {
	dump := tableDumper[K, V]{t: t, out: w}
	return dump.dump()
}

type tableDumper[K comparable, V any] struct {
	t   *Table[K, V]
	out io.Writer

	addrWidth int
	buf       bytes.Buffer
}

func (dump *tableDumper[K, V]) dump() error {
	t := dump.t
	fmt.Fprintf(&dump.buf, "# Table Dump\n")
	fmt.Fprintf(&dump.buf, "  len: %v cap: %v deleted: %v vacant: %v\n",
		t.occupied, len(t.slots), t.deleted, t.vacant)
	if err := dump.flush(); err != nil {
		return err
	}

	dump.addrWidth = len(strconv.Itoa(len(t.slots)))
	for i := range t.slots {
		if t.slots[i].state == empty {
			continue
		}
		dump.formatSlot(i)
		if err := dump.flush(); err != nil {
			return err
		}
	}
	return nil
}

func (dump *tableDumper[K, V]) formatSlot(i int) {
	sl := &dump.t.slots[i]
	fmt.Fprintf(&dump.buf, "  @%*v ", dump.addrWidth, i)
	switch sl.state {
	case occupied:
		fmt.Fprintf(&dump.buf, "%v => %v", dumpDatum(sl.key), dumpDatum(sl.value))
		if home := dump.t.home(sl.key); home != i {
			fmt.Fprintf(&dump.buf, " home:%v", home)
		}
	default:
		dump.buf.WriteString(sl.state.String())
	}
	dump.buf.WriteByte('\n')
}

func dumpDatum(v any) any {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return v
}

func (dump *tableDumper[K, V]) flush() error {
	_, err := dump.buf.WriteTo(dump.out)
	return err
}
