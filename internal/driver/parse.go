package driver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dialang/internal/ast"
	"dialang/internal/diag"
	"dialang/internal/model"
	"dialang/internal/parser"
	"dialang/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Program is nil when the result was served from the cache.
	Program   *ast.Program
	Model     *model.Model
	Bag       *diag.Bag
	Recovered int
	Cached    bool
}

// Parse loads, lexes and parses one file and adapts the program to the model.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseLoaded(fs, fs.Get(fileID), opts), nil
}

// Analyze is Parse backed by opts.Cache: a file whose content and parser
// options were seen before is answered from disk without parsing.
func Analyze(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	if opts.Cache == nil {
		return Parse(ctx, path, opts)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)
	log := opts.logger()

	key := cacheKey(file, opts)
	var payload CachePayload
	hit, err := opts.Cache.Get(key, &payload)
	if err != nil {
		log.Warn("cache read failed", zap.String("path", file.Path), zap.Error(err))
	}
	if hit && payload.Schema == diskCacheSchemaVersion {
		log.Debug("cache hit", zap.String("path", file.Path))
		return &ParseResult{
			FileSet: fs,
			File:    file,
			Model:   payload.Model,
			Bag:     payload.restoreBag(file.ID, opts.MaxDiagnostics),
			Cached:  true,
		}, nil
	}

	res := parseLoaded(fs, file, opts)
	if err := opts.Cache.Put(key, newCachePayload(file.Path, res)); err != nil {
		log.Warn("cache write failed", zap.String("path", file.Path), zap.Error(err))
	}
	return res, nil
}

func parseLoaded(fs *source.FileSet, file *source.File, opts Options) *ParseResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	var res parser.Result
	opts.phase("parse", func() string {
		res = parser.ParseFile(file, parser.Options{
			Reporter:         diag.BagReporter{Bag: bag},
			MaxErrors:        opts.maxErrors(),
			SyncTerminators:  opts.SyncTerminators,
			SyncStarters:     opts.SyncStarters,
			KeepPlaceholders: opts.KeepPlaceholders,
		})
		return fmt.Sprintf("%d statements", len(res.Program.Statements))
	})

	var m *model.Model
	opts.phase("adapt", func() string {
		m = model.FromProgram(res.Program)
		return fmt.Sprintf("%d classes", len(m.Order))
	})

	opts.logger().Debug("parsed",
		zap.String("path", file.Path),
		zap.Int("statements", len(res.Program.Statements)),
		zap.Int("recovered", res.Recovered),
		zap.Int("diagnostics", bag.Len()),
	)

	return &ParseResult{
		FileSet:   fs,
		File:      file,
		Program:   res.Program,
		Model:     m,
		Bag:       bag,
		Recovered: res.Recovered,
	}
}
