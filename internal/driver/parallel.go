package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dialang/internal/ast"
	"dialang/internal/diag"
	"dialang/internal/model"
	"dialang/internal/source"
)

// SourceExt is the extension ParseDir picks up.
const SourceExt = ".cls"

// ParseDirResult is the outcome for one file of a directory.
type ParseDirResult struct {
	Path      string
	FileID    source.FileID
	Program   *ast.Program // nil when the file could not be loaded
	Model     *model.Model
	Bag       *diag.Bag
	Recovered int
}

// listSourceFiles returns the sorted *.cls files under dir.
func listSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ParseDir parses every *.cls file under dir with at most jobs files in
// flight (GOMAXPROCS when jobs <= 0). Results follow the sorted file order.
// Cancellation is observed between files.
func ParseDir(ctx context.Context, dir string, jobs int, opts Options) (*source.FileSet, []ParseDirResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("list %s: %w", dir, err)
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet is not safe for concurrent Add, so everything is loaded first.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		var fileID source.FileID
		fileID, err = fileSet.Load(path)
		if err != nil {
			// an empty stand-in gives the I/O diagnostic a file to point at
			fileID = fileSet.AddVirtual(path, nil)
			loadErrors[path] = err
		}
		fileIDs[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	log := opts.logger()
	log.Debug("parse dir", zap.String("dir", dir), zap.Int("files", len(files)), zap.Int("jobs", jobs))

	// each goroutine writes only its own index
	results := make([]ParseDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			fileID := fileIDs[path]
			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileID}, "failed to load file: "+loadErr.Error()))
				results[i] = ParseDirResult{Path: path, FileID: fileID, Bag: bag}
				log.Warn("load failed", zap.String("path", path), zap.Error(loadErr))
				return nil
			}

			res := parseLoaded(fileSet, fileSet.Get(fileID), opts)
			results[i] = ParseDirResult{
				Path:      path,
				FileID:    fileID,
				Program:   res.Program,
				Model:     res.Model,
				Bag:       res.Bag,
				Recovered: res.Recovered,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeDir combines the models of all loaded files, in file order, and
// collects their diagnostics into one bag.
func MergeDir(results []ParseDirResult, maxDiagnostics int) (*model.Model, *diag.Bag) {
	m := model.New()
	bag := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		if r.Model != nil {
			m.Merge(r.Model)
		}
		if r.Bag != nil {
			bag.Merge(r.Bag)
		}
	}
	return m, bag
}
