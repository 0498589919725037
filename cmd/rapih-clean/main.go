// Command rapih-clean cleans plain text lines or JSONL records in batch.
// Output is one JSON record per input line, in input order.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"rapih/internal/core/clean"
	"rapih/internal/core/lexicon"
	"rapih/internal/core/version"
	"rapih/internal/platform/logger"
	"rapih/internal/services/clean/domain"
	cleansvc "rapih/internal/services/clean/service"
)

const maxLine = 16 << 20

type flags struct {
	in, out  string
	field    string
	profile  string
	lexicon  string
	workers  int
	chunk    int
	explain  bool
	showVers bool
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("rapih-clean", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.in, "in", "-", "input file or '-' for stdin")
	fs.StringVar(&f.out, "out", "-", "output file or '-' for stdout")
	fs.StringVar(&f.field, "field", "", "read JSONL and clean this field; empty reads plain lines")
	fs.StringVar(&f.profile, "profile", clean.Model.String(), "tokenizer | analysis | model")
	fs.StringVar(&f.lexicon, "lexicon", "", "lexicon file (.json/.yaml); empty uses the embedded one")
	fs.IntVar(&f.workers, "workers", 0, "parallel workers; 0 uses GOMAXPROCS")
	fs.IntVar(&f.chunk, "chunk", 1000, "lines cleaned per batch")
	fs.BoolVar(&f.explain, "explain", false, "include the per stage trace")
	fs.BoolVar(&f.showVers, "version", false, "print build info and exit")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	if f.chunk <= 0 {
		return flags{}, errors.New("-chunk must be positive")
	}
	return f, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if f.showVers {
		_, err := fmt.Fprintln(stdout, version.Info("rapih-clean").String())
		return err
	}
	profile, err := clean.ParseProfile(f.profile)
	if err != nil {
		return err
	}

	opt := logger.FromEnv()
	opt.Writer = stderr
	opt.Service = "rapih-clean"
	logger.Init(opt)
	log := logger.Named("cli")

	lex, err := lexicon.Open(f.lexicon)
	if err != nil {
		return err
	}
	p, err := clean.New(lex)
	if err != nil {
		return err
	}
	svc := cleansvc.New(p, cleansvc.Options{Workers: f.workers, DefaultProfile: profile})

	in, closeIn, err := openIn(f.in, stdin)
	if err != nil {
		return err
	}
	defer closeIn()
	out, closeOut, err := openOut(f.out, stdout)
	if err != nil {
		return err
	}

	n, stats, err := process(ctx, svc, profile, f, in, out)
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	log.Info().
		Int("lines", n).
		Int("dropped", stats.dropped).
		Int("invalid", stats.invalid).
		Str("profile", profile.String()).
		Msg("clean finished")
	return nil
}

type counts struct{ dropped, invalid int }

func process(ctx context.Context, svc domain.ValuesPort, p clean.Profile, f flags, in io.Reader, out io.Writer) (int, counts, error) {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64<<10), maxLine)

	bw := bufio.NewWriter(out)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)

	var (
		total int
		c     counts
		batch = make([]any, 0, f.chunk)
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		recs, err := svc.CleanValues(ctx, p, batch, f.explain)
		if err != nil {
			return err
		}
		for _, r := range recs {
			if r.Dropped {
				c.dropped++
			}
			if r.InvalidInput {
				c.invalid++
			}
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	line := 0
	for sc.Scan() {
		line++
		if f.field != "" {
			batch = append(batch, fieldOf(sc.Bytes(), f.field, line))
		} else {
			batch = append(batch, sc.Text())
		}
		if len(batch) == f.chunk {
			if err := flush(); err != nil {
				return total, c, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return total, c, fmt.Errorf("read line %d: %w", line+1, err)
	}
	if err := flush(); err != nil {
		return total, c, err
	}
	return total, c, bw.Flush()
}

// fieldOf returns the named field of a JSON object line. Missing fields,
// non string values and malformed lines come back as nil, which the
// cleaner reports as invalid input.
func fieldOf(b []byte, field string, line int) any {
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(b, &obj); err != nil {
		logger.Named("cli").Warn().Int("line", line).Err(err).Msg("malformed JSONL line")
		return nil
	}
	return obj[field]
}

func openIn(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return stdin, func() {}, nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return fh, func() { _ = fh.Close() }, nil
}

func openOut(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return fh, fh.Close, nil
}
