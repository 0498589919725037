// Command rapih-lexpack merges lexicon fragments into one lexicon file
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"rapih/internal/core/lexicon"

	"gopkg.in/yaml.v3"
)

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func isFragment(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// findFragments walks root in lexical order. Directories starting with '_'
// or '.' are skipped, as is the output file when it lives under root.
func findFragments(root, skip string) ([]string, error) {
	skipAbs, _ := filepath.Abs(skip)
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if abs, _ := filepath.Abs(path); skip != "" && abs == skipAbs {
			return nil
		}
		if isFragment(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// resolveRoot tries the flag, then RAPIH_LEXICON_ROOT, then ./lexicon.
// It returns the attempts for error messages.
func resolveRoot(flagRoot string) (string, []string, error) {
	var attempts []string
	try := func(p string) bool {
		if p == "" {
			return false
		}
		attempts = append(attempts, p)
		st, err := os.Stat(p)
		return err == nil && st.IsDir()
	}
	for _, c := range []string{flagRoot, strings.TrimSpace(os.Getenv("RAPIH_LEXICON_ROOT")), "./lexicon"} {
		if try(c) {
			return c, attempts, nil
		}
	}
	return "", attempts, errors.New("no fragment directory found")
}

// readFragment decodes one fragment. Fragments may omit version.
func readFragment(path string) (lexicon.Tables, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return lexicon.Tables{}, err
	}
	var t lexicon.Tables
	switch lexicon.FormatOf(path) {
	case lexicon.YAML:
		err = yaml.Unmarshal(b, &t)
	default:
		err = json.Unmarshal(b, &t)
	}
	if err != nil {
		return lexicon.Tables{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if t.Version != 0 && t.Version != lexicon.FormatVersion {
		return lexicon.Tables{}, fmt.Errorf("%s: version %d (want %d)", path, t.Version, lexicon.FormatVersion)
	}
	return t, nil
}

// assemble merges the fragments in order and checks the result builds
func assemble(paths []string) (lexicon.Tables, lexicon.Stats, error) {
	if len(paths) == 0 {
		return lexicon.Tables{}, lexicon.Stats{}, errors.New("no fragment files")
	}
	frags := make([]lexicon.Tables, 0, len(paths))
	for _, p := range paths {
		t, err := readFragment(p)
		if err != nil {
			return lexicon.Tables{}, lexicon.Stats{}, err
		}
		frags = append(frags, t)
	}
	merged := lexicon.Merge(frags...)
	s, err := lexicon.New(merged)
	if err != nil {
		return lexicon.Tables{}, lexicon.Stats{}, fmt.Errorf("merged lexicon is invalid: %w", err)
	}
	return merged, s.Stats(), nil
}

func encode(t lexicon.Tables, f lexicon.Format, pretty bool) ([]byte, error) {
	if f == lexicon.YAML {
		return yaml.Marshal(t)
	}
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(t, "", "  ")
	} else {
		b, err = json.Marshal(t)
	}
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func main() {
	var (
		flagRoot = flag.String("root", "", "fragment directory; empty tries RAPIH_LEXICON_ROOT then ./lexicon")
		out      = flag.String("out", "./internal/core/lexicon/lexicon.json", "output path or '-' for stdout")
		format   = flag.String("format", "", "json | yaml; empty picks from -out")
		pretty   = flag.Bool("pretty", true, "pretty-print JSON")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	var paths []string
	if flag.NArg() > 0 {
		paths = flag.Args()
	} else {
		root, attempts, err := resolveRoot(strings.TrimSpace(*flagRoot))
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to locate fragments (looked in):\n")
			for _, a := range attempts {
				_, _ = fmt.Fprintf(os.Stderr, "  - %s\n", a)
			}
			must(err)
		}
		paths, err = findFragments(root, *out)
		must(err)
		if *verbose {
			_, _ = fmt.Fprintf(os.Stderr, "using fragment root: %s\n", root)
		}
	}

	merged, stats, err := assemble(paths)
	must(err)

	f := lexicon.Format(strings.ToLower(*format))
	if f == "" {
		f = lexicon.FormatOf(*out)
	}
	if f != lexicon.JSON && f != lexicon.YAML {
		must(fmt.Errorf("unknown -format %q", *format))
	}
	enc, err := encode(merged, f, *pretty)
	must(err)

	if *out == "-" {
		_, err := os.Stdout.Write(enc)
		must(err)
		return
	}
	must(os.MkdirAll(filepath.Dir(*out), 0o755))
	must(os.WriteFile(*out, enc, 0o644))
	if *verbose {
		_, _ = fmt.Fprintf(os.Stderr, "wrote %s (%d bytes, %d fragments, %d slang, %d whitelist)\n",
			*out, len(enc), len(paths), stats.Slang, stats.Whitelist)
	}
}
