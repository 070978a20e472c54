// Package scan implements the batch extraction driver: it discovers test
// files under a path, parses each with tree-sitter, runs the extractor, and
// assembles the per-file report mapping.
//
// Files are processed sequentially and independently; a fatal extraction
// limitation aborts only the file that triggered it. Failures are collected
// with resolved line/column positions and reported together at the end.
package scan

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hargabyte/specmap/internal/extract"
	"github.com/hargabyte/specmap/internal/output"
	"github.com/hargabyte/specmap/internal/parser"
	"github.com/hargabyte/specmap/internal/srcmap"
	"github.com/hargabyte/specmap/internal/store"
)

// Failure records one file whose extraction was aborted by a fatal
// limitation, with the offset already translated to a line/column.
type Failure struct {
	File    string `json:"file" yaml:"file"`
	Message string `json:"message" yaml:"message"`
	Offset  int    `json:"offset" yaml:"offset"`
	Line    int    `json:"line" yaml:"line"`
	Col     int    `json:"col" yaml:"col"`
}

// String renders the failure in file:line:col form.
func (f Failure) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", f.File, f.Line, f.Col, f.Message)
}

// Options configures a scan run.
type Options struct {
	// Suffixes lists file name suffixes that identify test sources.
	Suffixes []string
	// Excludes lists glob patterns for paths to skip.
	Excludes []string
	// Store, when non-nil, caches per-file reports keyed by content hash.
	Store *store.Store
}

// Result is the outcome of one scan run.
type Result struct {
	// Report maps each processed file path (relative to the scan root when
	// scanning a directory) to its extraction result.
	Report output.Report
	// Skipped lists files that produced no records (interpreter directive
	// sources).
	Skipped []string
	// Failures lists files aborted by a fatal extraction limitation.
	Failures []Failure
}

// Run extracts every test file under root (or root itself when it is a
// file). The returned error covers I/O-level problems only; per-file fatal
// limitations land in Result.Failures.
func Run(root string, opts Options) (*Result, error) {
	files, base, err := DiscoverFiles(root, opts.Suffixes, opts.Excludes)
	if err != nil {
		return nil, err
	}

	result := &Result{Report: output.Report{}}
	parsers := map[parser.Language]*parser.Parser{}
	defer func() {
		for _, p := range parsers {
			p.Close()
		}
	}()

	srcCache := srcmap.NewCache()

	for _, rel := range files {
		path := filepath.Join(base, rel)

		source, err := os.ReadFile(path)
		if err != nil {
			return nil, &parser.FileReadError{Path: path, Err: err}
		}

		hash := contentHash(source)
		if opts.Store != nil {
			cached, hit, err := opts.Store.GetReport(rel, hash)
			if err != nil {
				return nil, err
			}
			if hit {
				result.Report[rel] = cached
				continue
			}
		}

		lang := parser.LanguageFromExtension(filepath.Ext(path))
		p, ok := parsers[lang]
		if !ok {
			p, err = parser.NewParser(lang)
			if err != nil {
				return nil, err
			}
			parsers[lang] = p
		}

		parsed, err := p.Parse(source)
		if errors.Is(err, parser.ErrInterpreterDirective) {
			result.Skipped = append(result.Skipped, rel)
			continue
		}
		if err != nil {
			return nil, err
		}
		parsed.FilePath = path

		idx := srcmap.NewIndex(source)
		srcCache.Put(path, idx)

		report, err := extract.New(parsed, idx).Extract()
		parsed.Close()

		var limit *extract.LimitationError
		if errors.As(err, &limit) {
			result.Failures = append(result.Failures, renderFailure(rel, path, source, limit, srcCache))
			continue
		}
		if err != nil {
			return nil, err
		}

		result.Report[rel] = report
		if opts.Store != nil {
			if err := opts.Store.PutReport(rel, hash, report); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// renderFailure translates a limitation error's character offset into a
// line/column using the srcmap cache.
func renderFailure(rel, path string, source []byte, limit *extract.LimitationError, cache *srcmap.Cache) Failure {
	idx, err := cache.Get(path, func() ([]byte, error) { return source, nil })
	if err != nil {
		idx = srcmap.NewIndex(source)
	}
	line, col := idx.LineCol(limit.Offset)
	return Failure{
		File:    rel,
		Message: limit.Message,
		Offset:  limit.Offset,
		Line:    line,
		Col:     col,
	}
}

// DiscoverFiles returns the test files under root, sorted, as paths
// relative to the returned base directory. When root is itself a file it is
// returned as the single entry regardless of suffix.
func DiscoverFiles(root string, suffixes, excludes []string) (files []string, base string, err error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		return []string{filepath.Base(root)}, filepath.Dir(root), nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if d.IsDir() {
			name := d.Name()
			if rel != "." && (name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !hasTestSuffix(d.Name(), suffixes) {
			return nil
		}
		if excluded(filepath.ToSlash(rel), excludes) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	sort.Strings(files)
	return files, root, nil
}

// hasTestSuffix reports whether a file name carries one of the configured
// test suffixes.
func hasTestSuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// excluded matches a slash-separated relative path against exclude globs.
// Patterns of the form "dir/**" and "**/dir/**" match whole subtrees.
func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(rel)); ok {
			return true
		}
		if strings.Contains(pattern, "**") {
			if matchSubtree(rel, pattern) {
				return true
			}
		}
	}
	return false
}

// matchSubtree handles the "dir/**" and "**/dir/**" pattern forms.
func matchSubtree(rel, pattern string) bool {
	p := strings.TrimSuffix(pattern, "/**")
	if strings.HasPrefix(p, "**/") {
		segment := strings.TrimPrefix(p, "**/")
		if segment == "" || strings.Contains(segment, "*") {
			return false
		}
		return strings.Contains("/"+rel+"/", "/"+segment+"/")
	}
	if strings.Contains(p, "*") {
		return false
	}
	return rel == p || strings.HasPrefix(rel, p+"/")
}

// contentHash returns the hex SHA-256 of a file's content.
func contentHash(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}
