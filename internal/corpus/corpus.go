// Package corpus orchestrates whole-corpus analysis: parallel per-file
// parsing and extraction, then the order-independent resolution pass over
// the concatenated entity list.
package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/DeusData/javagraph/internal/discover"
	"github.com/DeusData/javagraph/internal/entity"
	"github.com/DeusData/javagraph/internal/extract"
	"github.com/DeusData/javagraph/internal/graph"
	"github.com/DeusData/javagraph/internal/parser"
)

// Warning records a file that contributed no entities.
type Warning struct {
	RelPath string `json:"file"`
	Reason  string `json:"reason"`
}

// FileRecord carries per-file metadata surviving the extraction stage.
type FileRecord struct {
	RelPath string
	Hash    uint64 // xxh3 of the file content
}

// Result is the fully-resolved output of one Index run: the flat entity
// list with calls/called_by populated, the derived call graph, and the
// per-file records and warnings.
type Result struct {
	Entities []*entity.Entity
	Graph    *graph.Graph
	Files    []FileRecord
	Warnings []Warning
}

// Options configures an Index run.
type Options struct {
	// Workers bounds the parallel extraction stage; defaults to NumCPU.
	Workers int
	// IgnorePatterns are passed through to file discovery.
	IgnorePatterns []string
}

// Index discovers, extracts, and resolves a corpus rooted at rootPath.
//
// Per-file parsing and extraction run concurrently with no shared state;
// the field-type index and the resolver require the complete entity list,
// so both wait on the extraction join. A corpus is resolved as a single
// atomic pass — there is no partial or incremental resolution. A file
// that fails to parse contributes zero entities and a warning; it never
// aborts the rest of the corpus.
func Index(ctx context.Context, rootPath string, opts Options) (*Result, error) {
	files, err := discover.Discover(ctx, rootPath, &discover.Options{IgnorePatterns: opts.IgnorePatterns})
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	slog.Info("corpus.discovered", "root", rootPath, "files", len(files))

	results, err := extractAll(ctx, files, opts.Workers)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, fr := range results {
		if fr.err != nil {
			slog.Warn("corpus.file.skipped", "path", fr.file.RelPath, "err", fr.err)
			res.Warnings = append(res.Warnings, Warning{RelPath: fr.file.RelPath, Reason: fr.err.Error()})
			continue
		}
		slog.Debug("corpus.file", "path", fr.file.RelPath, "entities", len(fr.entities))
		res.Entities = append(res.Entities, fr.entities...)
		res.Files = append(res.Files, FileRecord{RelPath: fr.file.RelPath, Hash: fr.hash})
	}

	// Barrier reached: every surviving file is extracted. Build the
	// corpus-scoped indexes, then resolve in one pass.
	fields := graph.BuildFieldTypeIndex(res.Entities)
	registry := graph.NewRegistry(res.Entities)
	if err := graph.NewResolver(registry, fields).Resolve(res.Entities); err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	res.Graph = graph.Build(res.Entities)

	slog.Info("corpus.resolved",
		"entities", len(res.Entities),
		"edges", res.Graph.EdgeCount(),
		"warnings", len(res.Warnings))
	return res, nil
}

type fileResult struct {
	file     discover.FileInfo
	hash     uint64
	entities []*entity.Entity
	err      error
}

// extractAll runs the per-file stage on a bounded worker pool. Results
// land in a slice indexed by file position, so output order is stable
// regardless of completion order.
func extractAll(ctx context.Context, files []discover.FileInfo, workers int) ([]*fileResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	results := make([]*fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = extractFile(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// extractFile is a pure per-file function: read, parse, extract. The tree
// and source buffer are scoped to this call; every text field on the
// returned entities is an independent copy.
func extractFile(f discover.FileInfo) *fileResult {
	fr := &fileResult{file: f}

	source, err := os.ReadFile(f.Path)
	if err != nil {
		fr.err = err
		return fr
	}
	fr.hash = xxh3.Hash(source)

	tree, err := parser.Parse(source)
	if err != nil {
		fr.err = err
		return fr
	}
	defer tree.Close()

	if parser.HasTopLevelError(tree.RootNode()) {
		fr.err = fmt.Errorf("unrecoverable syntax errors at top level")
		return fr
	}

	fr.entities = extract.Extract(tree, source, f.RelPath)
	return fr
}

// KindCounts returns the number of entities per kind, for run summaries.
func (r *Result) KindCounts() map[entity.Kind]int {
	counts := make(map[entity.Kind]int)
	for _, e := range r.Entities {
		counts[e.Kind]++
	}
	return counts
}
