package javascript

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlens/internal/model"
)

const sampleJS = `
class Widget extends BaseWidget {
    spin() {
    }

    #color() {
        return "red";
    }
}

function standalone() {
}
`

func TestExtractClassAndMethods(t *testing.T) {
	res, err := Extractor{}.Extract(context.Background(), model.FileRecord{RelativePath: "widget.js"}, []byte(sampleJS))
	require.NoError(t, err)
	require.NotEmpty(t, res.Symbols)

	byName := map[string]model.Symbol{}
	for _, s := range res.Symbols {
		byName[s.Name] = s
	}

	widget, ok := byName["Widget"]
	require.True(t, ok)
	assert.Equal(t, model.KindClass, widget.Kind)

	spin, ok := byName["spin"]
	require.True(t, ok)
	assert.Equal(t, model.KindMethod, spin.Kind)
	assert.Equal(t, "Widget.spin", spin.FQN)

	standalone, ok := byName["standalone"]
	require.True(t, ok)
	assert.Equal(t, model.KindMethod, standalone.Kind)
	assert.Equal(t, "standalone", standalone.FQN)
}

func TestLanguageAndExtensions(t *testing.T) {
	assert.Equal(t, "javascript", Extractor{}.Language())
	assert.Equal(t, []string{".js", ".jsx", ".mjs"}, Extractor{}.Extensions())
}
