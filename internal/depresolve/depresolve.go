// Package depresolve implements stage 3 of the analysis pipeline: derive
// static, dynamic, external, and database dependency edges from a
// CodeAnalysis, assemble them into a DependencyGraph, and detect cycles.
// Grounded on SPEC_FULL.md §4.3.
package depresolve

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/oxhq/archlens/internal/config"
	"github.com/oxhq/archlens/internal/diag"
	"github.com/oxhq/archlens/internal/logging"
	"github.com/oxhq/archlens/internal/model"
)

const stageName = "DependencyResolver"

// knownExternalRoots lists first-namespace-segments recognized as
// third-party/framework roots even without a manifest file present.
var knownExternalRoots = map[string]bool{
	"System":     true,
	"Microsoft":  true,
	"Newtonsoft": true,
	"Autodesk":   true, // CAD vendor root
	"Oracle":     true, // DB vendor root
	"Npgsql":     true,
	"MySql":      true,
}

// Resolve runs the DependencyResolver stage over a CodeAnalysis, honoring
// the resolution families enabled in opts. manifestFiles and configFiles
// should come from the Crawler's ConfigFiles/ResourceFiles buckets;
// sqlFiles is the subset of SourceFiles extracted as the "sql" language.
func Resolve(
	ctx context.Context,
	code *model.CodeAnalysis,
	manifestFiles []model.FileRecord,
	configFiles []model.FileRecord,
	sqlFiles []model.FileRecord,
	readFile func(path string) ([]byte, error),
	opts config.ResolveOptions,
	sink logging.Sink,
) (*model.DependencyAnalysis, []diag.Diagnostic, error) {
	if code == nil {
		return nil, nil, diag.InvalidInput(stageName, "code analysis is nil")
	}
	if err := config.Validate(opts); err != nil {
		return nil, nil, diag.InvalidInput(stageName, err.Error())
	}
	if sink == nil {
		sink = logging.Nop{}
	}
	if readFile == nil {
		readFile = func(string) ([]byte, error) { return nil, nil }
	}

	select {
	case <-ctx.Done():
		return nil, nil, diag.Cancelled(stageName)
	default:
	}

	diags := diag.NewCollector(stageName)
	analysis := &model.DependencyAnalysis{}

	byFile := groupByFile(code.Symbols)
	symbolsByFQN := code.SymbolByFQN()

	if opts.ResolveStatic {
		analysis.StaticEdges = resolveStaticEdges(byFile, symbolsByFQN)
	}
	if opts.ResolveDynamic {
		analysis.DynamicEdges = append(resolveDynamicEdges(code.Symbols), scanReflectionIdioms(byFile, readFile, diags)...)
	}
	if opts.ResolveExternal {
		analysis.External = resolveExternalPackages(code.Symbols, manifestFiles, readFile, diags)
	}
	if opts.ResolveDatabase {
		analysis.Databases = resolveDatabaseRefs(configFiles, sqlFiles, readFile, diags)
	}

	analysis.Graph = buildGraph(analysis.StaticEdges, analysis.DynamicEdges, analysis.External)
	if opts.DetectCycles {
		analysis.Cycles = detectCycles(analysis.Graph)
	}

	sink.Info("dependency resolution complete",
		"static_edges", len(analysis.StaticEdges),
		"dynamic_edges", len(analysis.DynamicEdges),
		"external", len(analysis.External),
		"databases", len(analysis.Databases),
		"cycles", len(analysis.Cycles),
	)
	return analysis, diags.Diagnostics(), nil
}

func groupByFile(symbols []model.Symbol) map[string][]model.Symbol {
	out := make(map[string][]model.Symbol)
	for _, s := range symbols {
		out[s.File] = append(out[s.File], s)
	}
	return out
}

// resolveStaticEdges implements spec §4.3 step 1: per-file Using edges,
// per-class Inheritance edges, and containment-derived MethodCall and
// PropertyAccess edges via FQN prefix matching.
func resolveStaticEdges(byFile map[string][]model.Symbol, byFQN map[string]*model.Symbol) []model.Dependency {
	seen := make(map[string]bool)
	var out []model.Dependency

	add := func(d model.Dependency) {
		key := string(d.Kind) + "|" + d.OriginID + "|" + d.TargetID
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, d)
	}

	for file, symbols := range byFile {
		namespaces := make(map[string]bool)
		for _, s := range symbols {
			if ns := s.Namespace(); ns != "" {
				namespaces[ns] = true
			}
		}
		for ns := range namespaces {
			add(model.Dependency{Kind: model.DepUsingImport, OriginID: file, TargetID: ns, SourceFile: file})
		}

		for _, s := range symbols {
			if s.Kind != model.KindClass && s.Kind != model.KindStruct {
				continue
			}
			for _, base := range s.BaseTypes() {
				add(model.Dependency{
					Kind: model.DepInheritance, OriginID: s.FQN, TargetID: base,
					SourceFile: s.File, SourceLine: s.Line,
				})
			}
		}
	}

	prefixMatch(byFQN, model.KindClass, model.KindMethod, model.DepMethodCall, add)
	prefixMatch(byFQN, model.KindClass, model.KindStruct, model.DepMethodCall, add)
	prefixMatch(byFQN, model.KindClass, model.KindProperty, model.DepPropertyAccess, add)
	prefixMatch(byFQN, model.KindClass, model.KindField, model.DepPropertyAccess, add)
	prefixMatch(byFQN, model.KindStruct, model.KindMethod, model.DepMethodCall, add)
	prefixMatch(byFQN, model.KindStruct, model.KindProperty, model.DepPropertyAccess, add)
	prefixMatch(byFQN, model.KindStruct, model.KindField, model.DepPropertyAccess, add)

	return out
}

// prefixMatch emits one edge from every container of containerKind to
// every member of memberKind whose FQN is prefixed by "<container FQN>.".
func prefixMatch(
	byFQN map[string]*model.Symbol,
	containerKind, memberKind model.SymbolKind,
	edgeKind model.DependencyKind,
	add func(model.Dependency),
) {
	var containers, members []*model.Symbol
	for _, s := range byFQN {
		switch s.Kind {
		case containerKind:
			containers = append(containers, s)
		case memberKind:
			members = append(members, s)
		}
	}
	for _, c := range containers {
		prefix := c.FQN + "."
		for _, m := range members {
			if m.FQN == c.FQN {
				continue
			}
			if strings.HasPrefix(m.FQN, prefix) {
				add(model.Dependency{
					Kind: edgeKind, OriginID: c.FQN, TargetID: m.FQN,
					SourceFile: m.File, SourceLine: m.Line,
				})
			}
		}
	}
}

// resolveDynamicEdges implements spec §4.3 step 2: every method symbol
// carrying a ReflectionTarget metadata value contributes one conditional
// dynamic edge.
func resolveDynamicEdges(symbols []model.Symbol) []model.Dependency {
	var out []model.Dependency
	for _, s := range symbols {
		target, ok := s.Metadata["ReflectionTarget"]
		if !ok || target == "" {
			continue
		}
		out = append(out, model.Dependency{
			Kind: model.DepOther, OriginID: s.FQN, TargetID: target,
			SourceFile: s.File, SourceLine: s.Line,
			ReflectiveTarget: target, Conditional: true,
		})
	}
	return out
}

func resolveExternalPackages(
	symbols []model.Symbol,
	manifestFiles []model.FileRecord,
	readFile func(string) ([]byte, error),
	diags *diag.Collector,
) []model.ExternalDependency {
	byName := make(map[string]*model.ExternalDependency)

	for _, s := range symbols {
		ns := s.Namespace()
		if ns == "" {
			continue
		}
		root := strings.SplitN(ns, ".", 2)[0]
		if !knownExternalRoots[root] {
			continue
		}
		dep, ok := byName[root]
		if !ok {
			dep = &model.ExternalDependency{PackageName: root, Version: "Unknown", EcosystemSource: "NuGet-like"}
			byName[root] = dep
		}
		if !containsStr(dep.ReferencedBy, s.File) {
			dep.ReferencedBy = append(dep.ReferencedBy, s.File)
		}
	}

	for _, f := range manifestFiles {
		src, err := readFile(f.AbsolutePath)
		if err != nil || src == nil {
			if err != nil {
				diags.Warnf(f.AbsolutePath, "cannot read manifest: %v", err)
			}
			continue
		}
		entries, err := parseManifest(src)
		if err != nil {
			diags.Warnf(f.AbsolutePath, "manifest parse failed: %v", err)
			continue
		}
		for _, e := range entries {
			dep, ok := byName[e.PackageName]
			if !ok {
				dep = &model.ExternalDependency{PackageName: e.PackageName, EcosystemSource: "NuGet-like"}
				byName[e.PackageName] = dep
			}
			dep.Version = e.Version
			if !containsStr(dep.ReferencedBy, f.AbsolutePath) {
				dep.ReferencedBy = append(dep.ReferencedBy, f.AbsolutePath)
			}
		}
	}

	out := make([]model.ExternalDependency, 0, len(byName))
	for _, dep := range byName {
		sort.Strings(dep.ReferencedBy)
		out = append(out, *dep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PackageName < out[j].PackageName })
	return out
}

// resolveDatabaseRefs implements spec §4.3 step 4: connection strings in
// configuration files yield DatabaseDependency entries keyed by detected
// database name; FROM clauses in .sql files contribute table references.
// Tables found in SQL files are attributed to every detected database when
// one or more connection strings were found, or to a single entry named
// "Unknown" when none were, so a table reference is never silently dropped.
func resolveDatabaseRefs(
	configFiles []model.FileRecord,
	sqlFiles []model.FileRecord,
	readFile func(string) ([]byte, error),
	diags *diag.Collector,
) []model.DatabaseDependency {
	byName := make(map[string]*model.DatabaseDependency)

	for _, f := range configFiles {
		src, err := readFile(f.AbsolutePath)
		if err != nil || src == nil {
			if err != nil {
				diags.Warnf(f.AbsolutePath, "cannot read config file: %v", err)
			}
			continue
		}
		for _, connStr := range connectionStringRe.FindAllStringSubmatch(string(src), -1) {
			name := databaseNameFrom(connStr[1])
			if name == "" {
				continue
			}
			if _, ok := byName[name]; !ok {
				byName[name] = &model.DatabaseDependency{DatabaseName: name, ConnectionString: connStr[1]}
			}
		}
	}

	var tables []string
	for _, f := range sqlFiles {
		src, err := readFile(f.AbsolutePath)
		if err != nil || src == nil {
			if err != nil {
				diags.Warnf(f.AbsolutePath, "cannot read SQL file: %v", err)
			}
			continue
		}
		for _, m := range fromClauseRe.FindAllStringSubmatch(string(src), -1) {
			if !containsStr(tables, m[1]) {
				tables = append(tables, m[1])
			}
		}
	}

	if len(tables) > 0 {
		sort.Strings(tables)
		if len(byName) == 0 {
			byName["Unknown"] = &model.DatabaseDependency{DatabaseName: "Unknown", Tables: tables}
		} else {
			for _, dep := range byName {
				dep.Tables = tables
			}
		}
	}

	out := make([]model.DatabaseDependency, 0, len(byName))
	for _, dep := range byName {
		out = append(out, *dep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DatabaseName < out[j].DatabaseName })
	return out
}

func containsStr(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// newGraphNodeID mints a stable opaque id for a graph node that has no
// natural FQN of its own (e.g. a synthesized external-package node).
func newGraphNodeID() string {
	return uuid.NewString()
}
