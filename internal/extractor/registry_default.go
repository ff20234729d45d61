package extractor

import (
	"github.com/oxhq/archlens/internal/extractor/lang/autolisp"
	"github.com/oxhq/archlens/internal/extractor/lang/csharp"
	"github.com/oxhq/archlens/internal/extractor/lang/golang"
	"github.com/oxhq/archlens/internal/extractor/lang/javascript"
	"github.com/oxhq/archlens/internal/extractor/lang/jsonlang"
	"github.com/oxhq/archlens/internal/extractor/lang/php"
	"github.com/oxhq/archlens/internal/extractor/lang/python"
	"github.com/oxhq/archlens/internal/extractor/lang/shell"
	"github.com/oxhq/archlens/internal/extractor/lang/sql"
	"github.com/oxhq/archlens/internal/extractor/lang/typescript"
	"github.com/oxhq/archlens/internal/extractor/lang/vb"
	"github.com/oxhq/archlens/internal/extractor/lang/xml"
)

// DefaultRegistry returns a Registry with every language this module
// supports pre-registered (SPEC_FULL.md §4.2). Panics on a registration
// conflict, which would indicate a programming error in this package, not
// a runtime condition.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	extractors := []LanguageExtractor{
		csharp.New(),
		vb.New(),
		golang.New(),
		python.New(),
		javascript.New(),
		typescript.New(),
		php.New(),
		sql.New(),
		xml.New(),
		jsonlang.New(),
		shell.New(),
		autolisp.New(),
	}
	for _, ex := range extractors {
		if err := reg.Register(ex); err != nil {
			panic(err)
		}
	}
	return reg
}
