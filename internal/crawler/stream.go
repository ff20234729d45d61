package crawler

import (
	"context"
	"os"
	"path/filepath"

	"github.com/oxhq/archlens/internal/config"
	"github.com/oxhq/archlens/internal/diag"
	"github.com/oxhq/archlens/internal/logging"
	"github.com/oxhq/archlens/internal/model"
)

// Stream walks root depth-first like Crawl but yields FileRecords
// incrementally over a channel instead of materializing a DirectoryNode
// tree, for stages that only need the flat file list (SPEC_FULL.md §4.1).
// The returned channel is closed when the walk finishes, is cancelled, or
// fails; diagnostics are delivered to diags as they occur.
func Stream(
	ctx context.Context,
	root string,
	opts config.CrawlOptions,
	sink logging.Sink,
	diags *diag.Collector,
) <-chan model.FileRecord {
	out := make(chan model.FileRecord)
	if diags == nil {
		diags = diag.NewCollector(stageName)
	}
	if sink == nil {
		sink = logging.Nop{}
	}

	go func() {
		defer close(out)
		absRoot, err := filepath.Abs(root)
		if err != nil {
			diags.Warnf(root, "cannot resolve root: %v", err)
			return
		}
		streamDir(ctx, absRoot, "", 0, opts, diags, out, make(map[string]struct{}))
	}()

	return out
}

func streamDir(
	ctx context.Context,
	dir, relDir string,
	depth int,
	opts config.CrawlOptions,
	diags *diag.Collector,
	out chan<- model.FileRecord,
	visited map[string]struct{},
) {
	select {
	case <-ctx.Done():
		return
	default:
	}
	if depth > opts.MaxDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		diags.Warnf(dir, "cannot read directory: %v", err)
		return
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return
		default:
		}

		name := entry.Name()
		absPath := filepath.Join(dir, name)
		relPath := name
		if relDir != "" {
			relPath = relDir + "/" + name
		}

		info, err := entry.Info()
		if err != nil {
			diags.Warnf(absPath, "cannot stat entry: %v", err)
			continue
		}

		if info.Mode()&os.ModeSymlink != 0 {
			if !opts.FollowSymlinks {
				continue
			}
			resolved, err := filepath.EvalSymlinks(absPath)
			if err != nil {
				continue
			}
			if _, seen := visited[resolved]; seen {
				continue
			}
			rInfo, err := os.Stat(resolved)
			if err != nil {
				continue
			}
			if rInfo.IsDir() {
				visited[resolved] = struct{}{}
				streamDir(ctx, resolved, relPath, depth+1, opts, diags, out, visited)
				continue
			}
			info = rInfo
			absPath = resolved
		}

		if entry.IsDir() {
			streamDir(ctx, absPath, relPath, depth+1, opts, diags, out, visited)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if !shouldInclude(opts.IncludeGlobs, opts.ExcludeGlobs, relPath) {
			continue
		}
		if opts.MaxFileBytes > 0 && info.Size() > opts.MaxFileBytes {
			diags.Warnf(absPath, "file exceeds max size (%d bytes), skipped", info.Size())
			continue
		}

		rec := newFileRecord(absPath, relPath, name, info)
		if opts.ExtractMetadata || opts.ComputeHash {
			if data, err := os.ReadFile(absPath); err == nil {
				if opts.ExtractMetadata {
					rec.Encoding = detectEncoding(data)
					rec.LineCount = countLines(data)
				}
				if opts.ComputeHash {
					rec.ContentHash = hashContent(data)
				}
			} else {
				diags.Warnf(absPath, "cannot read file: %v", err)
			}
		}

		select {
		case <-ctx.Done():
			return
		case out <- rec:
		}
	}
}
