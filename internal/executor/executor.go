// Package executor decodes batches of MealMaster files concurrently.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/gubarz/mmconv/internal/mealmaster"
	"github.com/gubarz/mmconv/internal/recipe"
)

// ============================================================================
// Charsets
// ============================================================================

var charsets = map[string]encoding.Encoding{
	"":             encoding.Nop,
	"utf-8":        encoding.Nop,
	"utf8":         encoding.Nop,
	"cp437":        charmap.CodePage437,
	"ibm437":       charmap.CodePage437,
	"cp850":        charmap.CodePage850,
	"ibm850":       charmap.CodePage850,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
}

// Charsets returns the accepted charset names in sorted order.
func Charsets() []string {
	names := make([]string, 0, len(charsets))
	for name := range charsets {
		if name != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Charset looks up an input encoding by case-insensitive name. The empty
// name means UTF-8.
func Charset(name string) (encoding.Encoding, error) {
	enc, ok := charsets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported encoding %q (supported: %s)", name, strings.Join(Charsets(), ", "))
	}
	return enc, nil
}

// ============================================================================
// Opener Interface
// ============================================================================

// Opener opens a file for reading.
type Opener func(path string) (io.ReadCloser, error)

func openFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// ============================================================================
// Executor
// ============================================================================

// FileReport is the outcome of decoding one file. Failures holds the
// documents that did not parse or validate; Err is set when the file
// itself could not be read.
type FileReport struct {
	Path     string
	Recipes  []*recipe.Recipe
	Failures []error
	Err      error
}

// OK reports whether every document of the file decoded.
func (r FileReport) OK() bool {
	return r.Err == nil && len(r.Failures) == 0
}

// Executor decodes files with a bounded number of workers.
type Executor struct {
	workers    int
	charset    encoding.Encoding
	extensions []string
	opener     Opener
	logger     *slog.Logger
}

// DefaultExtensions are the file extensions collected from directories.
var DefaultExtensions = []string{".mmf", ".mm", ".txt"}

// NewExecutor creates an executor. Workers below one mean one worker.
func NewExecutor(workers int, charset string) (*Executor, error) {
	enc, err := Charset(charset)
	if err != nil {
		return nil, err
	}
	return &Executor{
		workers:    max(workers, 1),
		charset:    enc,
		extensions: DefaultExtensions,
		opener:     openFile,
		logger:     slog.Default(),
	}, nil
}

// WithOpener sets a custom opener (useful for testing)
func (e *Executor) WithOpener(o Opener) *Executor {
	e.opener = o
	return e
}

// WithLogger sets the logger passed on to the parser.
func (e *Executor) WithLogger(l *slog.Logger) *Executor {
	if l != nil {
		e.logger = l
	}
	return e
}

// WithExtensions replaces the extensions matched when walking directories.
func (e *Executor) WithExtensions(exts []string) *Executor {
	if len(exts) > 0 {
		e.extensions = make([]string, len(exts))
		for i, ext := range exts {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			e.extensions[i] = strings.ToLower(ext)
		}
	}
	return e
}

// Workers returns the worker limit.
func (e *Executor) Workers() int {
	return e.workers
}

// ============================================================================
// File Collection
// ============================================================================

// Collect expands paths into a sorted list of files. Files named directly
// are always kept; directories contribute the files whose extension
// matches.
func (e *Executor) Collect(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("path error: %w", err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && e.matches(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	slices.Sort(files)
	return files, nil
}

func (e *Executor) matches(path string) bool {
	return slices.Contains(e.extensions, strings.ToLower(filepath.Ext(path)))
}

// ============================================================================
// Decoding
// ============================================================================

// DecodeFiles decodes every file, at most Workers at a time. Reports come
// back in the order of files. Per-file problems are recorded in the
// reports; the returned error is only set when ctx ends first.
func (e *Executor) DecodeFiles(ctx context.Context, files []string) ([]FileReport, error) {
	reports := make([]FileReport, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = e.DecodeFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// DecodeFile decodes every recipe in one file.
func (e *Executor) DecodeFile(path string) FileReport {
	report := FileReport{Path: path}

	f, err := e.opener(path)
	if err != nil {
		report.Err = fmt.Errorf("open %s: %w", path, err)
		return report
	}
	defer f.Close()

	dec := mealmaster.NewDecoder(
		transform.NewReader(f, e.charset.NewDecoder()),
		mealmaster.WithLogger(e.logger.With("file", path)),
	)
	for {
		r, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		var pe *mealmaster.ParseError
		if errors.As(err, &pe) {
			report.Failures = append(report.Failures, pe)
			continue
		}
		if err != nil {
			report.Err = fmt.Errorf("read %s: %w", path, err)
			break
		}
		if err := r.Validate(); err != nil {
			report.Failures = append(report.Failures, fmt.Errorf("recipe %q: %w", r.Title, err))
			continue
		}
		report.Recipes = append(report.Recipes, r)
	}

	e.logger.Debug("decoded file", "file", path, "recipes", len(report.Recipes), "failures", len(report.Failures))
	return report
}

// Recipes flattens the decoded recipes of all reports in order.
func Recipes(reports []FileReport) []*recipe.Recipe {
	var out []*recipe.Recipe
	for _, r := range reports {
		out = append(out, r.Recipes...)
	}
	return out
}
