// Command javagraph indexes a Java source tree: it extracts classes,
// methods, constructors, and fields, resolves the corpus call graph, and
// persists entities, retrieval chunks, file hashes, and call edges to
// SQLite.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/DeusData/javagraph/internal/chunk"
	"github.com/DeusData/javagraph/internal/config"
	"github.com/DeusData/javagraph/internal/corpus"
	"github.com/DeusData/javagraph/internal/entity"
	"github.com/DeusData/javagraph/internal/graph"
	"github.com/DeusData/javagraph/internal/store"
	"github.com/DeusData/javagraph/internal/watcher"
)

var version = "dev"

func main() {
	var (
		dbPath      = flag.String("db", "", "SQLite output path (default <root>/.javagraph.db)")
		jsonPath    = flag.String("json", "", "also export the resolved entity list as JSON")
		workers     = flag.Int("workers", 0, "parallel extraction workers (default NumCPU)")
		watch       = flag.Bool("watch", false, "keep running and re-index on file changes")
		verbose     = flag.Bool("v", false, "debug logging")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("javagraph", version)
		return
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: javagraph [flags] <java-source-root>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root, err := filepath.Abs(flag.Arg(0))
	if err != nil {
		log.Fatalf("resolve root: %v", err)
	}
	cfg := config.Load(root)
	if *workers > 0 {
		cfg.Workers = workers
	}

	out := *dbPath
	if out == "" {
		out = cfg.EffectiveDBPath(root)
	}
	runOnce := func(ctx context.Context) error {
		res, err := corpus.Index(ctx, root, corpus.Options{
			Workers:        cfg.EffectiveWorkers(),
			IgnorePatterns: cfg.Ignore,
		})
		if err != nil {
			return fmt.Errorf("index: %w", err)
		}
		chunks := chunk.NewChunker(cfg.EffectiveMaxChunkLines()).Chunk(res.Entities)
		if err := persist(out, root, res, chunks); err != nil {
			return fmt.Errorf("persist: %w", err)
		}
		if *jsonPath != "" {
			if err := exportJSON(*jsonPath, res.Entities); err != nil {
				return fmt.Errorf("export json: %w", err)
			}
		}
		printSummary(res, len(chunks), out)
		return nil
	}

	if err := runOnce(ctx); err != nil {
		log.Fatal(err)
	}
	if *watch {
		slog.Info("watch.start", "root", root)
		if err := watcher.New(root, cfg.Ignore, runOnce).Run(ctx); err != nil && ctx.Err() == nil {
			log.Fatal(err)
		}
	}
}

// persist writes the full run into the store in one transaction,
// replacing any previous index of the same project.
func persist(dbPath, root string, res *corpus.Result, chunks []*chunk.Chunk) error {
	s, err := store.OpenPath(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	project := filepath.Base(root)
	return s.WithTransaction(func(tx *store.Store) error {
		if err := tx.DeleteProject(project); err != nil {
			return err
		}
		if err := tx.UpsertProject(project, root); err != nil {
			return err
		}
		for _, f := range res.Files {
			if err := tx.UpsertFileHash(project, f.RelPath, strconv.FormatUint(f.Hash, 16)); err != nil {
				return err
			}
		}
		if err := tx.InsertEntityBatch(project, res.Entities); err != nil {
			return err
		}
		if err := tx.InsertChunkBatch(project, chunks); err != nil {
			return err
		}
		return tx.InsertCallEdgeBatch(project, callEdges(res))
	})
}

// callEdges flattens resolved calls into store rows, marking whether the
// callee is an extracted entity or an out-of-corpus target.
func callEdges(res *corpus.Result) []store.CallEdge {
	registry := graph.NewRegistry(res.Entities)
	seen := make(map[[2]string]bool)
	var edges []store.CallEdge
	for _, e := range res.Entities {
		if !e.Kind.Callable() {
			continue
		}
		for _, callee := range e.Calls {
			if graph.IsUnresolved(callee) {
				continue
			}
			key := [2]string{e.QualifiedName, callee}
			if seen[key] {
				continue
			}
			seen[key] = true
			_, internal := registry.Lookup(callee)
			edges = append(edges, store.CallEdge{CallerQN: e.QualifiedName, CalleeQN: callee, Internal: internal})
		}
	}
	return edges
}

func exportJSON(path string, entities []*entity.Entity) error {
	data, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func printSummary(res *corpus.Result, chunkCount int, dbPath string) {
	fmt.Printf("indexed %d files, %d entities, %d call edges, %d chunks -> %s\n",
		len(res.Files), len(res.Entities), res.Graph.EdgeCount(), chunkCount, dbPath)

	counts := res.KindCounts()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("  %-12s %d\n", k, counts[entity.Kind(k)])
	}

	if len(res.Warnings) > 0 {
		fmt.Printf("skipped %d files:\n", len(res.Warnings))
		for _, w := range res.Warnings {
			fmt.Printf("  %s: %s\n", w.RelPath, w.Reason)
		}
	}
}
