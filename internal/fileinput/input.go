// Package fileinput reads runes sequentially across a queue of input streams,
// tracking file name and line number for diagnostics.
package fileinput

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jcorbin/symtab/internal/runeio"
)

// Location names a line in an input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Line is the content read so far from a Location.
type Line struct {
	Location
	bytes.Buffer
}

func (il Line) String() string { return fmt.Sprintf("%v %q", il.Location, il.Buffer.String()) }

// Input reads runes from each stream in Queue in turn. Streams that implement
// io.Closer are closed once exhausted.
//
// Between streams ReadRune returns a 0 rune and nil error, so that stream
// boundaries may be treated like any other delimiter.
type Input struct {
	Queue []io.Reader

	// Scan is the line currently being read, Last the one before it.
	Scan Line
	Last Line

	cur io.Reader
	rr  io.RuneReader
}

// ReadRune reads one rune from the current stream, advancing to the next
// queued stream at EOF. Returns io.EOF only once the queue is exhausted.
func (in *Input) ReadRune() (rune, int, error) {
	if in.rr == nil && !in.nextIn() {
		return 0, 0, io.EOF
	}

	r, n, err := in.rr.ReadRune()
	if err == nil {
		if r == '\n' {
			in.nextLine()
		} else {
			in.Scan.WriteRune(r)
		}
		return r, n, nil
	}
	if err == io.EOF && in.nextIn() {
		err = nil
	}
	return 0, n, err
}

// Close closes the current stream and every stream still queued, for when
// reading stops before the queue is exhausted. Returns the first close error.
func (in *Input) Close() (err error) {
	if in.cur != nil {
		in.Queue = append([]io.Reader{in.cur}, in.Queue...)
		in.cur, in.rr = nil, nil
	}
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) nextLine() {
	in.Last.Reset()
	in.Last.Location = in.Scan.Location
	in.Last.Write(in.Scan.Bytes())
	in.Scan.Reset()
	in.Scan.Line++
}

func (in *Input) nextIn() bool {
	if in.rr != nil {
		in.nextLine()
		if cl, ok := in.cur.(io.Closer); ok {
			cl.Close()
		}
		in.cur, in.rr = nil, nil
	}
	if len(in.Queue) > 0 {
		in.cur = in.Queue[0]
		in.Queue = in.Queue[1:]
		in.rr = runeio.NewReader(in.cur)
		in.Scan.Name = nameOf(in.cur)
		in.Scan.Line = 1
	}
	return in.rr != nil
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
