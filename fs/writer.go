// Package fs writes crawl results to the local filesystem.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/termspider"
)

// Ensure TermWriter implements termspider.ResultWriter at compile time.
var _ termspider.ResultWriter = (*TermWriter)(nil)

// TermWriter writes one <term>.txt file per configured term. Each file is
// written to a temporary file in the same directory and renamed into
// place, so readers never see a partial file.
type TermWriter struct {
	dir   string
	debug bool
}

// Option configures a TermWriter.
type Option func(*TermWriter)

// WithDebug writes debug blocks instead of bare URLs.
func WithDebug(debug bool) Option {
	return func(w *TermWriter) {
		w.debug = debug
	}
}

// NewTermWriter creates a TermWriter that writes into dir.
func NewTermWriter(dir string, opts ...Option) *TermWriter {
	w := &TermWriter{dir: dir}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Path returns the file a term's results are written to.
func (w *TermWriter) Path(term string) string {
	return filepath.Join(w.dir, TermFilename(term))
}

// WriteResults writes a file for every term of store, including terms
// without matches, whose files are empty. An existing file is replaced.
func (w *TermWriter) WriteResults(ctx context.Context, store *termspider.ResultStore) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return termspider.WrapError(termspider.EINTERNAL, err, "creating output directory %s", w.dir)
	}

	for _, term := range store.Terms() {
		if err := ctx.Err(); err != nil {
			return err
		}
		content := FormatTermFile(store.Records(term), w.debug)
		if err := w.writeAtomic(w.Path(term), content); err != nil {
			return termspider.WrapError(termspider.EINTERNAL, err, "writing results for %q", term)
		}
	}
	return nil
}

func (w *TermWriter) writeAtomic(path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// FormatTermFile renders the records of one term as file content: one
// entry per line, each entry a page URL or its debug block.
func FormatTermFile(records []termspider.MatchRecord, debug bool) string {
	var b strings.Builder
	for _, entry := range termspider.FormatEntries(records, debug) {
		b.WriteString(entry)
		b.WriteString("\n")
	}
	return b.String()
}

// TermFilename returns the file name for term. Path separators and other
// characters that cannot appear in a file name are replaced with '_'.
func TermFilename(term string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		return r
	}, term)
	if name == "." || name == ".." {
		name = strings.Repeat("_", len(name))
	}
	return name + ".txt"
}
