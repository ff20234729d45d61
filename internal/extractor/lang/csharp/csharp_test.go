package csharp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlens/internal/model"
)

const sampleCSharp = `
namespace Acme.Widgets
{
    public class Widget : BaseWidget
    {
        public void Spin()
        {
        }

        private string Color()
        {
            return "red";
        }
    }
}
`

func TestExtractNamespaceScopesTopLevelClass(t *testing.T) {
	res, err := Extractor{}.Extract(context.Background(), model.FileRecord{RelativePath: "Widget.cs"}, []byte(sampleCSharp))
	require.NoError(t, err)
	require.NotEmpty(t, res.Symbols)

	var widget *model.Symbol
	for i, s := range res.Symbols {
		if s.Name == "Widget" {
			widget = &res.Symbols[i]
		}
	}
	require.NotNil(t, widget)
	assert.Equal(t, model.KindClass, widget.Kind)
	assert.Equal(t, "Acme.Widgets.Widget", widget.FQN)
	assert.Equal(t, "Widget.cs", widget.File)
}

func TestExtractMethodsNestUnderEnclosingClass(t *testing.T) {
	res, err := Extractor{}.Extract(context.Background(), model.FileRecord{RelativePath: "Widget.cs"}, []byte(sampleCSharp))
	require.NoError(t, err)

	var names []string
	for _, s := range res.Symbols {
		if s.Kind == model.KindMethod {
			names = append(names, s.FQN)
		}
	}
	assert.Contains(t, names, "Acme.Widgets.Widget.Spin")
	assert.Contains(t, names, "Acme.Widgets.Widget.Color")
}

func TestExtractUnparsableSourceIsNonFatal(t *testing.T) {
	res, err := Extractor{}.Extract(context.Background(), model.FileRecord{RelativePath: "broken.cs"}, []byte(`this is not C#`))
	require.NoError(t, err)
	assert.Empty(t, res.Symbols)
}

func TestLanguageAndExtensions(t *testing.T) {
	assert.Equal(t, "csharp", Extractor{}.Language())
	assert.Equal(t, []string{".cs"}, Extractor{}.Extensions())
}
