package logio

import (
	"bytes"
	"sync"
)

// Writer adapts a printf-style log function into an io.WriteCloser: each
// complete line written becomes one Logf call, without its trailing newline.
// A partial final line is held until Close.
type Writer struct {
	Logf func(mess string, args ...interface{})

	mu      sync.Mutex
	partial []byte
}

// Write logs every line completed by p; it never fails.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	n := len(p)
	for {
		line, rest, ok := bytes.Cut(p, []byte{'\n'})
		if !ok {
			break
		}
		if len(lw.partial) > 0 {
			line = append(lw.partial, line...)
			lw.partial = lw.partial[:0]
		}
		lw.Logf("%s", bytes.TrimSuffix(line, []byte{'\r'}))
		p = rest
	}
	lw.partial = append(lw.partial, p...)
	return n, nil
}

// Close logs any partial line left over.
func (lw *Writer) Close() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.partial) > 0 {
		lw.Logf("%s", lw.partial)
		lw.partial = nil
	}
	return nil
}
