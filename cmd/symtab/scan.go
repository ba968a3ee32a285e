package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/symtab"
	"github.com/jcorbin/symtab/internal/fileinput"
	"github.com/jcorbin/symtab/internal/flushio"
	"github.com/jcorbin/symtab/internal/logio"
)

type symtabCmd struct {
	Config
	log   *logio.Logger
	logfn func(mess string, args ...interface{})

	in  fileinput.Input
	out flushio.WriteFlusher
	st  *symtab.Table
}

// run scans tokens from the input queue in one goroutine, while another
// symbolicates them, writing a line for every newly assigned identifier.
func (cmd *symtabCmd) run(ctx context.Context) error {
	if cmd.Trace {
		cmd.logfn = cmd.log.Leveledf("TRACE")
	}
	cmd.st = symtab.New(cmd.options()...)

	tokens := make(chan string, 64)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer close(tokens)
		for {
			token, err := cmd.scan()
			if err == io.EOF {
				return nil
			} else if err != nil {
				return scanError{cmd.in.Scan.Location, err}
			}
			select {
			case tokens <- token:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	eg.Go(func() error {
		for token := range tokens {
			if cmd.st.Contains(token) {
				continue
			}
			id := cmd.st.Symbolicate(token)
			if _, err := fmt.Fprintf(cmd.out, "%v\t%v\n", id, token); err != nil {
				return fmt.Errorf("write symbol %v: %w", id, err)
			}
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return errors.Join(err, cmd.in.Close(), cmd.out.Flush())
	}

	for _, token := range splitList(cmd.Remove) {
		cmd.st.Remove(token)
	}

	if cmd.Dump {
		if err := cmd.st.Dump(cmd.out); err != nil {
			return fmt.Errorf("dump: %w", err)
		}
	}
	return cmd.out.Flush()
}

// scan reads the next whitespace delimited token; input boundaries also
// delimit tokens. Returns io.EOF after the last token.
func (cmd *symtabCmd) scan() (token string, err error) {
	defer func() {
		if token != "" {
			loc := cmd.in.Scan.Location
			if cmd.in.Scan.Len() == 0 {
				loc = cmd.in.Last.Location
			}
			cmd.logf("scan %q from %v", token, loc)
		}
	}()

	var sb strings.Builder
	for {
		r, _, err := cmd.in.ReadRune()
		if err != nil {
			return "", err
		}
		if !isDelim(r) {
			sb.WriteRune(r)
			break
		}
	}
	for {
		r, _, err := cmd.in.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		} else if isDelim(r) {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

func isDelim(r rune) bool {
	return r == 0 || unicode.IsControl(r) || unicode.IsSpace(r)
}

func (cmd *symtabCmd) logf(mess string, args ...interface{}) {
	if cmd.logfn != nil {
		cmd.logfn(mess, args...)
	}
}
