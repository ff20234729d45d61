package python

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlens/internal/model"
)

const samplePython = `
class Widget(BaseWidget):
    def spin(self):
        pass

    def _color(self):
        return "red"
`

func TestExtractClassAndMethods(t *testing.T) {
	res, err := Extractor{}.Extract(context.Background(), model.FileRecord{RelativePath: "widget.py"}, []byte(samplePython))
	require.NoError(t, err)
	require.NotEmpty(t, res.Symbols)

	byName := map[string]model.Symbol{}
	for _, s := range res.Symbols {
		byName[s.Name] = s
	}

	widget, ok := byName["Widget"]
	require.True(t, ok)
	assert.Equal(t, model.KindClass, widget.Kind)
	assert.Equal(t, "Widget", widget.FQN)

	spin, ok := byName["spin"]
	require.True(t, ok)
	assert.Equal(t, model.KindMethod, spin.Kind)
	assert.Equal(t, "Widget.spin", spin.FQN)

	color, ok := byName["_color"]
	require.True(t, ok)
	assert.Equal(t, model.VisibilityProtected, color.Visibility)
}

func TestExtractDunderMethodIsPrivate(t *testing.T) {
	src := "class Widget:\n    def __init__(self):\n        pass\n"
	res, err := Extractor{}.Extract(context.Background(), model.FileRecord{RelativePath: "w.py"}, []byte(src))
	require.NoError(t, err)

	for _, s := range res.Symbols {
		if s.Name == "__init__" {
			assert.Equal(t, model.VisibilityPrivate, s.Visibility)
			return
		}
	}
	t.Fatal("__init__ symbol not found")
}

func TestLanguageAndExtensions(t *testing.T) {
	assert.Equal(t, "python", Extractor{}.Language())
	assert.Equal(t, []string{".py"}, Extractor{}.Extensions())
}
