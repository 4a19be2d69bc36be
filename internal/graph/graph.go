// Package graph builds the module dependency graph (C6) by BFS discovery
// from an entry file, grounded on the teacher's internal/module/loader.go
// (BFS + visited set + cycle tolerance + cache) and internal/loader/loader.go
// (canonical module-identity normalization).
package graph

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tsoniclang/tsonic-sub006/internal/clralias"
	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/errors"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// FileReader abstracts filesystem access so discovery is testable
// without touching disk.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
	Canonicalize(path string) (string, error)
	ActualCase(path string) (string, bool)
}

// SpecifierExtractor pulls the raw import/re-export specifiers out of a
// source file's content. In the full system this is backed by the
// external syntactic front end (§6); it is abstracted here so graph
// construction does not itself depend on parsing.
type SpecifierExtractor interface {
	ExtractSpecifiers(content []byte) []string
}

// DiscoveredFile is one file found during BFS, before IR construction.
type DiscoveredFile struct {
	Path         string // canonical absolute path
	RelPath      string // relative to source root, used for final sort
	Content      []byte
	Specifiers   []string
}

// Result is the outcome of Discover: either an ordered set of files with
// a designated entry, or diagnostics recorded along the way (discovery
// continues past individual failures per spec §4.1 step 5).
type Result struct {
	Files   []DiscoveredFile
	EntryIdx int
	Diags   *diag.Collector
}

// Options configures discovery.
type Options struct {
	SourceRoot    string
	SourceExt     string // e.g. ".tsn"
	Resolver      clralias.ModuleResolver
	Reader        FileReader
	Extractor     SpecifierExtractor
}

// Discover performs BFS module discovery from entryPath per spec §4.1.
func Discover(entryPath string, opts Options) Result {
	collector := diag.New()

	absEntry, err := filepath.Abs(entryPath)
	if err != nil {
		collector = collector.Addf(errors.TSN1001, diag.Error, ir.Pos{File: entryPath}, "cannot resolve entry path: %v", err)
		return Result{Diags: collector}
	}

	type queued struct {
		path           string
		importerFile   string
	}

	visited := make(map[string]bool)
	queue := []queued{{path: absEntry}}
	var files []DiscoveredFile
	entryIdx := -1

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		canonical, err := opts.Reader.Canonicalize(item.path)
		if err != nil {
			collector = collector.Addf(errors.TSN1002, diag.Error, ir.Pos{File: item.importerFile}, "cannot resolve import %q: %v", item.path, err)
			continue
		}
		if visited[canonical] {
			continue // cycle tolerated: I-6 permits cycles, discovery set breaks them
		}
		visited[canonical] = true

		if actual, ok := opts.Reader.ActualCase(canonical); ok {
			_, mismatch := clralias.CanonicalizeCase(canonical, func(string) (string, bool) { return actual, ok })
			if mismatch {
				collector = collector.Addf(errors.TSN1003, diag.Warning, ir.Pos{File: canonical}, "case mismatch: resolved %q but filesystem has %q", canonical, actual)
			}
		}

		content, err := opts.Reader.ReadFile(canonical)
		if err != nil {
			collector = collector.Addf(errors.TSN1001, diag.Error, ir.Pos{File: canonical}, "cannot read file: %v", err)
			continue
		}

		rel, err := filepath.Rel(opts.SourceRoot, canonical)
		if err != nil {
			rel = canonical
		}

		df := DiscoveredFile{Path: canonical, RelPath: rel, Content: content}
		df.Specifiers = opts.Extractor.ExtractSpecifiers(content)

		if canonical == absEntry {
			entryIdx = len(files)
		}
		files = append(files, df)

		for _, spec := range df.Specifiers {
			if clralias.Classify(spec) != clralias.ClassLocal {
				continue // only local specifiers participate in module discovery
			}
			resolved, ok := opts.Resolver.Resolve(spec, canonical)
			if !ok {
				collector = collector.Addf(errors.TSN1002, diag.Error, ir.Pos{File: canonical}, "cannot resolve import specifier %q", spec)
				continue
			}
			if !underRoot(resolved, opts.SourceRoot) {
				continue
			}
			if filepath.Ext(resolved) != opts.SourceExt {
				continue
			}
			queue = append(queue, queued{path: resolved, importerFile: canonical})
		}
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	// entryIdx must be recomputed post-sort.
	for i, f := range files {
		if f.Path == absEntry {
			entryIdx = i
			break
		}
	}

	return Result{Files: files, EntryIdx: entryIdx, Diags: collector}
}

func underRoot(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Err is returned by helpers that need to surface a plain Go error
// alongside diagnostics (e.g. when a caller wants a hard failure instead
// of a continued-discovery diagnostic).
type Err struct {
	Msg string
}

func (e *Err) Error() string { return e.Msg }

// NewErr is a convenience constructor mirroring fmt.Errorf's call shape
// without pulling in fmt at call sites that only need a static message.
func NewErr(format string, args ...interface{}) error {
	return &Err{Msg: fmt.Sprintf(format, args...)}
}
