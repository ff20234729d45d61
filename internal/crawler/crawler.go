// Package crawler implements stage 1 of the analysis pipeline: a
// depth-first filesystem walk that classifies every file into one of the
// buckets described in SPEC_FULL.md §4.1, grounded on the teacher's
// worker-pool directory walk (core/filewalker.go) and gitignore/glob
// filtering (internal/scanner/scanner.go).
package crawler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/oxhq/archlens/internal/config"
	"github.com/oxhq/archlens/internal/diag"
	"github.com/oxhq/archlens/internal/logging"
	"github.com/oxhq/archlens/internal/model"
)

const stageName = "Crawler"

// Progress reports running totals as the walk proceeds.
type Progress struct {
	Files       int
	Directories int
	Bytes       int64
	CurrentPath string
}

// ProgressFunc receives periodic Progress updates. May be nil.
type ProgressFunc func(Progress)

// crawlState carries the mutable bookkeeping for one Crawl call.
type crawlState struct {
	opts       config.CrawlOptions
	root       string
	sink       logging.Sink
	onProgress ProgressFunc
	diags      *diag.Collector

	filesSeen int
	dirsSeen  int
	bytesSeen int64

	visitedDirs map[string]struct{} // resolved symlink targets, cycle guard

	pending []*model.FileRecord // flat refs into the tree, for metadata pass
}

// Crawl walks root depth-first, classifying every file it encounters and
// building both a DirectoryNode tree and the four flat buckets described in
// SPEC_FULL.md §4.1. Metadata extraction (encoding, line count, hash) runs
// in a bounded worker pool after the walk completes.
func Crawl(
	ctx context.Context,
	root string,
	opts config.CrawlOptions,
	sink logging.Sink,
	onProgress ProgressFunc,
) (*model.FileSystemAnalysis, []diag.Diagnostic, error) {
	if root == "" {
		return nil, nil, diag.InvalidInput(stageName, "root path is empty")
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, nil, diag.InvalidInput(stageName, fmt.Sprintf("root path %q is not a directory", root))
	}
	if err := config.Validate(opts); err != nil {
		return nil, nil, diag.InvalidInput(stageName, err.Error())
	}
	if sink == nil {
		sink = logging.Nop{}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, diag.InvalidInput(stageName, err.Error())
	}

	st := &crawlState{
		opts:        opts,
		root:        absRoot,
		sink:        sink,
		onProgress:  onProgress,
		diags:       diag.NewCollector(stageName),
		visitedDirs: make(map[string]struct{}),
	}

	tree, err := st.walkDir(ctx, absRoot, "", 0)
	if err != nil {
		if err == context.Canceled || err == ctx.Err() {
			return nil, st.diags.Diagnostics(), diag.Cancelled(stageName)
		}
		return nil, st.diags.Diagnostics(), err
	}

	if err := st.extractMetadata(ctx); err != nil {
		if err == context.Canceled {
			return nil, st.diags.Diagnostics(), diag.Cancelled(stageName)
		}
		return nil, st.diags.Diagnostics(), err
	}

	analysis := st.assemble(tree)
	return analysis, st.diags.Diagnostics(), nil
}

// walkDir recursively walks dir, returning its DirectoryNode. Depth is the
// number of directory levels below root.
func (st *crawlState) walkDir(ctx context.Context, dir, relDir string, depth int) (*model.DirectoryNode, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	node := &model.DirectoryNode{Path: dir, Name: filepath.Base(dir)}
	st.dirsSeen++
	st.reportProgress(dir)

	if depth > st.opts.MaxDepth {
		return node, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		st.diags.Warnf(dir, "cannot read directory: %v", err)
		return node, nil
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		name := entry.Name()
		absPath := filepath.Join(dir, name)
		relPath := name
		if relDir != "" {
			relPath = relDir + "/" + name
		}

		entryInfo, err := entry.Info()
		if err != nil {
			st.diags.Warnf(absPath, "cannot stat entry: %v", err)
			continue
		}

		if entryInfo.Mode()&os.ModeSymlink != 0 {
			if !st.opts.FollowSymlinks {
				continue
			}
			resolved, err := filepath.EvalSymlinks(absPath)
			if err != nil {
				st.diags.Warnf(absPath, "cannot resolve symlink: %v", err)
				continue
			}
			if _, seen := st.visitedDirs[resolved]; seen {
				continue
			}
			rInfo, err := os.Stat(resolved)
			if err != nil {
				st.diags.Warnf(absPath, "cannot stat symlink target: %v", err)
				continue
			}
			if rInfo.IsDir() {
				st.visitedDirs[resolved] = struct{}{}
				child, err := st.walkDir(ctx, resolved, relPath, depth+1)
				if err != nil {
					return nil, err
				}
				node.Children = append(node.Children, child)
				node.TotalFiles += child.TotalFiles
				node.TotalBytes += child.TotalBytes
				continue
			}
			entryInfo = rInfo
			absPath = resolved
		}

		if entry.IsDir() {
			child, err := st.walkDir(ctx, absPath, relPath, depth+1)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
			node.TotalFiles += child.TotalFiles
			node.TotalBytes += child.TotalBytes
			continue
		}

		if !entryInfo.Mode().IsRegular() {
			continue
		}

		if !shouldInclude(st.opts.IncludeGlobs, st.opts.ExcludeGlobs, relPath) {
			continue
		}

		if st.opts.MaxFileBytes > 0 && entryInfo.Size() > st.opts.MaxFileBytes {
			st.diags.Warnf(absPath, "file exceeds max size (%d bytes), skipped", entryInfo.Size())
			continue
		}

		rec := newFileRecord(absPath, relPath, name, entryInfo)
		node.Files = append(node.Files, rec)
		node.TotalFiles++
		node.TotalBytes += rec.SizeBytes

		st.filesSeen++
		st.bytesSeen += rec.SizeBytes
		st.reportProgress(absPath)
	}

	for i := range node.Files {
		st.pending = append(st.pending, &node.Files[i])
	}

	return node, nil
}

func newFileRecord(absPath, relPath, name string, info os.FileInfo) model.FileRecord {
	ext := strings.ToLower(filepath.Ext(name))
	modTime := info.ModTime()
	return model.FileRecord{
		AbsolutePath:   absPath,
		RelativePath:   relPath,
		Name:           name,
		Extension:      ext,
		SizeBytes:      info.Size(),
		CreatedAt:      modTime, // most filesystems do not expose creation time portably
		ModifiedAt:     modTime,
		Classification: Classify(ext),
	}
}

func (st *crawlState) reportProgress(current string) {
	if st.onProgress == nil {
		return
	}
	st.onProgress(Progress{
		Files:       st.filesSeen,
		Directories: st.dirsSeen,
		Bytes:       st.bytesSeen,
		CurrentPath: current,
	})
}

// extractMetadata fills encoding/line-count/hash for every pending text
// file in a bounded worker pool, per SPEC_FULL.md §5.
func (st *crawlState) extractMetadata(ctx context.Context) error {
	if !st.opts.ExtractMetadata && !st.opts.ComputeHash {
		return nil
	}

	workers := st.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex

	for _, recPtr := range st.pending {
		recPtr := recPtr
		if recPtr.Classification != model.ClassSource &&
			recPtr.Classification != model.ClassConfiguration &&
			recPtr.Classification != model.ClassDocumentation {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			data, err := os.ReadFile(recPtr.AbsolutePath)
			if err != nil {
				mu.Lock()
				st.diags.Warnf(recPtr.AbsolutePath, "cannot read file: %v", err)
				mu.Unlock()
				return nil
			}
			if st.opts.ExtractMetadata {
				recPtr.Encoding = detectEncoding(data)
				recPtr.LineCount = countLines(data)
			}
			if st.opts.ComputeHash {
				recPtr.ContentHash = hashContent(data)
			}
			return nil
		})
	}

	return g.Wait()
}

// assemble buckets the tree's files and builds the type histogram.
func (st *crawlState) assemble(tree *model.DirectoryNode) *model.FileSystemAnalysis {
	a := &model.FileSystemAnalysis{
		Root:          st.root,
		Tree:          tree,
		TypeHistogram: make(map[string]int),
	}
	var walk func(n *model.DirectoryNode)
	walk = func(n *model.DirectoryNode) {
		for _, f := range n.Files {
			a.TypeHistogram[f.Extension]++
			switch f.Classification {
			case model.ClassSource:
				a.SourceFiles = append(a.SourceFiles, f)
			case model.ClassConfiguration:
				a.ConfigFiles = append(a.ConfigFiles, f)
			case model.ClassResource:
				a.ResourceFiles = append(a.ResourceFiles, f)
			case model.ClassDocumentation:
				a.DocFiles = append(a.DocFiles, f)
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree)
	return a
}
