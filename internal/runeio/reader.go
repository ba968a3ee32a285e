package runeio

import (
	"bufio"
	"io"
)

// NewReader returns r itself when it can already read runes, so that any
// buffering it does is not duplicated; otherwise r is wrapped in a
// bufio.Reader.
func NewReader(r io.Reader) io.RuneReader {
	if rr, ok := r.(io.RuneReader); ok {
		return rr
	}
	return bufio.NewReader(r)
}
