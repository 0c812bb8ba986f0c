// Package ingest moves parsed import files into the store.
package ingest

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/bburn/internal/log"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/source"
	"github.com/theirongolddev/bburn/internal/store"
)

// ProgressFunc is called during parsing to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Writer is the part of the store an import needs.
type Writer interface {
	SaveEntries(ctx context.Context, entries []model.Entry) (saved, deleted int, err error)
	GetTrackedFiles(ctx context.Context) (map[string]store.FileState, error)
	TrackFile(ctx context.Context, path string, state store.FileState) error
}

// Options controls an import run.
type Options struct {
	// Categories limits imported rows to configured categories. Nil accepts all.
	Categories []model.Category
	// Force reparses files the tracker reports as unchanged.
	Force    bool
	Progress ProgressFunc
	Logger   *log.Logger
}

// Result summarizes an import run.
type Result struct {
	TotalFiles      int
	ParsedFiles     int
	Unchanged       int
	FileErrors      int
	Rows            int
	ParseErrors     int
	UnknownCategory int
	Saved           int
	Deleted         int
	Files           []source.ParseResult
}

// ParseAll parses files with a bounded worker pool. Results keep input order.
func ParseAll(ctx context.Context, files []source.DiscoveredFile, progressFn ProgressFunc) ([]source.ParseResult, error) {
	results := make([]source.ParseResult, len(files))
	if len(files) == 0 {
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))

	var processed atomic.Int64
	for i := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = source.ParseFile(files[i])
			n := processed.Add(1)
			if progressFn != nil {
				progressFn(int(n), len(files))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Import parses files and saves their entries. Files are applied in input
// order so a later file overrides an earlier one for the same slot. Unless
// opts.Force is set, files whose mtime and size match the tracker are skipped.
func Import(ctx context.Context, w Writer, files []source.DiscoveredFile, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentImport)
	start := time.Now()

	result := &Result{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	tracked, err := w.GetTrackedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading file tracker: %w", err)
	}

	var toParse []source.DiscoveredFile
	states := make(map[string]store.FileState, len(files))
	for _, f := range files {
		info, err := os.Stat(f.Path)
		if err != nil {
			result.FileErrors++
			logger.Warn("skipping unreadable file", log.FieldFile, f.Path, log.FieldError, err)
			continue
		}
		state := store.FileState{MtimeNs: info.ModTime().UnixNano(), Size: info.Size()}
		states[f.Path] = state
		if prev, ok := tracked[f.Path]; ok && prev == state && !opts.Force {
			result.Unchanged++
			continue
		}
		toParse = append(toParse, f)
	}

	parsed, err := ParseAll(ctx, toParse, opts.Progress)
	if err != nil {
		return nil, err
	}

	var known map[string]model.Category
	if opts.Categories != nil {
		known = make(map[string]model.Category, len(opts.Categories))
		for _, c := range opts.Categories {
			known[c.ID] = c
		}
	}

	for _, pr := range parsed {
		if pr.Err != nil {
			result.FileErrors++
			logger.Warn("import file failed", log.FieldFile, pr.File.Path, log.FieldError, pr.Err)
			result.Files = append(result.Files, pr)
			continue
		}
		result.ParsedFiles++
		result.Rows += pr.Rows
		result.ParseErrors += pr.ParseErrors

		entries := pr.Entries
		if known != nil {
			entries = entries[:0:0]
			for _, e := range pr.Entries {
				if _, ok := known[e.CategoryID]; !ok {
					result.UnknownCategory++
					continue
				}
				entries = append(entries, e)
			}
		}

		saved, deleted, err := w.SaveEntries(ctx, entries)
		result.Saved += saved
		result.Deleted += deleted
		if err != nil {
			return result, fmt.Errorf("importing %s: %w", pr.File.Path, err)
		}
		if err := w.TrackFile(ctx, pr.File.Path, states[pr.File.Path]); err != nil {
			return result, fmt.Errorf("tracking %s: %w", pr.File.Path, err)
		}
		result.Files = append(result.Files, pr)

		logger.Info("imported file",
			log.FieldOperation, log.OpImport,
			log.FieldFile, pr.File.Path,
			log.FieldRows, pr.Rows,
			log.FieldEntries, saved)
	}

	logger.Info("import complete",
		log.FieldOperation, log.OpImport,
		"files", result.ParsedFiles,
		"unchanged", result.Unchanged,
		log.FieldDurationMs, time.Since(start).Milliseconds())
	return result, nil
}
