package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fulldump/goconfig"

	"github.com/jcorbin/symtab"
	"github.com/jcorbin/symtab/hashtable"
	"github.com/jcorbin/symtab/internal/flushio"
	"github.com/jcorbin/symtab/internal/logio"
	"github.com/jcorbin/symtab/internal/panicerr"
)

// Config is read from flags, environment and config file by goconfig.
type Config struct {
	Input  string `usage:"comma separated input files; stdin when empty"`
	Remove string `usage:"comma separated tokens to remove after scanning"`
	Seed   int64  `usage:"token hash seed; 0 for unseeded xxhash"`
	Trace  bool   `usage:"enable trace logging"`
	Dump   bool   `usage:"dump the symbol table after scanning"`
}

func main() {
	var log logio.Logger
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	c := Config{}
	goconfig.Read(&c)

	cmd := symtabCmd{Config: c, log: &log}
	for _, name := range splitList(c.Input) {
		f, err := os.Open(name)
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		cmd.in.Queue = append(cmd.in.Queue, f)
	}
	if len(cmd.in.Queue) == 0 {
		cmd.in.Queue = append(cmd.in.Queue, os.Stdin)
	}
	cmd.out = flushio.NewWriteFlusher(os.Stdout)

	log.ErrorIf(panicerr.Recover("symtab", func() error {
		return cmd.run(context.Background())
	}))
}

func (cmd *symtabCmd) options() []symtab.Option {
	opts := []symtab.Option{
		symtab.WithHasher(hashtable.SeededXXHash(uint64(cmd.Seed))),
	}
	if cmd.logfn != nil {
		opts = append(opts, symtab.WithLogf(cmd.logfn))
	}
	return opts
}

func splitList(s string) (parts []string) {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

type scanError struct {
	loc fmt.Stringer
	err error
}

func (err scanError) Error() string { return fmt.Sprintf("scan %v: %v", err.loc, err.err) }
func (err scanError) Unwrap() error { return err.err }
