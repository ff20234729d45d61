// Command archlens runs the six-stage static reverse-engineering
// pipeline over a legacy codebase and writes the resulting
// visualization package to disk. CLI, logging-sink wiring, and flag
// parsing live here, outside the core per SPEC_FULL.md §1; the core
// packages accept everything as parameters and own no process-wide
// state.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/cobra"

	"github.com/oxhq/archlens/internal/archlens"
	"github.com/oxhq/archlens/internal/crawler"
	"github.com/oxhq/archlens/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "archlens: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outDir         string
		workers        int
		verbose        bool
		noDiagrams     bool
		noForceGraph   bool
		noTreemap      bool
		noNetworkGraph bool
		noDataExports  bool
		excludeGlobs   []string
		ignoreFile     string
	)

	cmd := &cobra.Command{
		Use:   "archlens <path>",
		Short: "Reverse-engineer a legacy codebase's architecture",
		Long: "archlens crawls a source tree, extracts symbols, resolves static/" +
			"dynamic/external/database dependencies, infers architectural layers " +
			"and components, maps relationships between them, and renders the " +
			"result as diagrams, an interactive graph, and tabular exports.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]

			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				Level(level).With().Timestamp().Logger()
			sink := logging.NewZerologSink(log)

			opts := archlens.DefaultOptions()
			opts.Crawl.Workers = workers
			opts.Extract.Workers = workers
			opts.Crawl.ExcludeGlobs = append(opts.Crawl.ExcludeGlobs, excludeGlobs...)
			opts.Visualization.BuildDiagrams = !noDiagrams
			opts.Visualization.BuildInteractiveGraph = !noForceGraph
			opts.Visualization.BuildTreemap = !noTreemap
			opts.Visualization.BuildNetworkGraph = !noNetworkGraph
			opts.Visualization.BuildDataExports = !noDataExports

			if path := ignoreFile; path != "" {
				if !filepath.IsAbs(path) {
					path = filepath.Join(root, path)
				}
				if _, statErr := os.Stat(path); statErr == nil {
					gi, giErr := ignore.CompileIgnoreFile(path)
					if giErr != nil {
						return fmt.Errorf("parsing %s: %w", ignoreFile, giErr)
					}
					opts.IgnoreMatcher = gi.MatchesPath
				}
			}

			var lastPct int
			onFileProgress := func(p crawler.Progress) {
				if !verbose {
					return
				}
				log.Debug().Int("files", p.Files).Int("dirs", p.Directories).
					Str("path", p.CurrentPath).Msg("crawling")
			}
			onStageProgress := func(p archlens.StageProgress) {
				pct := p.Index * 100 / p.Total
				if pct == lastPct {
					return
				}
				lastPct = pct
				fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", p.Index, p.Total, p.Stage)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			result, diags, err := archlens.Run(ctx, root, opts, sink, onFileProgress, onStageProgress)
			if err != nil {
				return err
			}
			for _, d := range diags {
				fmt.Fprintln(os.Stderr, d.String())
			}

			if err := archlens.Persist(outDir, result); err != nil {
				return fmt.Errorf("writing visualization output: %w", err)
			}

			fmt.Fprintf(os.Stderr, "wrote %d files; open %s/index.html\n",
				artifactCount(result), outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "archlens-output", "Directory to write the visualization package to.")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent workers for crawling and extraction (0 = GOMAXPROCS).")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug-level logging.")
	cmd.Flags().BoolVar(&noDiagrams, "no-diagrams", false, "Skip Mermaid diagram generation.")
	cmd.Flags().BoolVar(&noForceGraph, "no-force-graph", false, "Skip the D3 force-directed graph.")
	cmd.Flags().BoolVar(&noTreemap, "no-treemap", false, "Skip the component treemap.")
	cmd.Flags().BoolVar(&noNetworkGraph, "no-network-graph", false, "Skip the cytoscape network graph.")
	cmd.Flags().BoolVar(&noDataExports, "no-data-exports", false, "Skip CSV/JSON data exports.")
	cmd.Flags().StringSliceVar(&excludeGlobs, "exclude", nil, "Additional glob patterns to exclude from the crawl.")
	cmd.Flags().StringVar(&ignoreFile, "ignore-file", ".archlensignore", "Gitignore-style file (relative to <path>) of additional files/directories to skip.")

	return cmd
}

func artifactCount(result *archlens.Result) int {
	if result == nil || result.Visualization == nil {
		return 0
	}
	n := len(result.Visualization.Diagrams) + 3 // visualization-metadata.json, index.html, summary.html
	if result.Visualization.ForceGraph != nil {
		n += 2
	}
	if result.Visualization.NetworkGraph != nil {
		n += 2
	}
	if result.Visualization.Treemap != nil {
		n++
	}
	if result.Visualization.Exports.RelationshipMatrixJSON != "" {
		n++
	}
	if result.Visualization.Exports.ComponentsCSV != "" {
		n++
	}
	if result.Visualization.Exports.DependenciesCSV != "" {
		n++
	}
	return n
}
