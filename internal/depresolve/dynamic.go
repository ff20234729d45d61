package depresolve

import (
	"regexp"
	"sort"
	"strings"

	"github.com/oxhq/archlens/internal/diag"
	"github.com/oxhq/archlens/internal/model"
)

// reflectionIdiomRes are the reflective-invocation idioms scanned for in
// method source spans: .NET's GetMethod().Invoke and
// Activator.CreateInstance(typeof(...)), and PowerShell's
// Invoke-Expression. Each pattern's first capture group, when present, is
// the reflective target name.
var reflectionIdiomRes = []*regexp.Regexp{
	regexp.MustCompile(`GetMethod\(\s*"([^"]+)"\s*\)\s*\.\s*Invoke`),
	regexp.MustCompile(`Activator\.CreateInstance\(\s*typeof\(([^)]+)\)`),
	regexp.MustCompile(`(Invoke-Expression)`),
}

// scanReflectionIdioms implements the reflection-idiom scanner described
// in SPEC_FULL.md's supplemented features: a regex pass over every
// source file that contains at least one method symbol, attributing
// each matched idiom to its nearest enclosing method by line number.
// Matches outside any method's span (e.g. at file scope) are dropped,
// same as a method-less reflective call would have no Dependency origin
// anyway.
func scanReflectionIdioms(
	byFile map[string][]model.Symbol,
	readFile func(string) ([]byte, error),
	diags *diag.Collector,
) []model.Dependency {
	var out []model.Dependency

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		methods := methodsSortedByLine(byFile[file])
		if len(methods) == 0 {
			continue
		}
		src, err := readFile(file)
		if err != nil || src == nil {
			if err != nil {
				diags.Warnf(file, "cannot read file for reflection scan: %v", err)
			}
			continue
		}
		for lineIdx, line := range strings.Split(string(src), "\n") {
			lineNum := lineIdx + 1
			for _, re := range reflectionIdiomRes {
				m := re.FindStringSubmatch(line)
				if m == nil {
					continue
				}
				enclosing := enclosingMethod(methods, lineNum)
				if enclosing == nil {
					continue
				}
				target := ""
				if len(m) > 1 {
					target = m[1]
				}
				out = append(out, model.Dependency{
					Kind: model.DepOther, OriginID: enclosing.FQN, TargetID: target,
					SourceFile: file, SourceLine: lineNum,
					ReflectiveTarget: target, Conditional: true,
				})
			}
		}
	}
	return out
}

func methodsSortedByLine(symbols []model.Symbol) []model.Symbol {
	var methods []model.Symbol
	for _, s := range symbols {
		if s.Kind == model.KindMethod {
			methods = append(methods, s)
		}
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].Line < methods[j].Line })
	return methods
}

// enclosingMethod returns the method with the greatest Line not after
// line, i.e. the method whose body most likely contains it.
func enclosingMethod(sortedMethods []model.Symbol, line int) *model.Symbol {
	var best *model.Symbol
	for i := range sortedMethods {
		if sortedMethods[i].Line > line {
			break
		}
		best = &sortedMethods[i]
	}
	return best
}
