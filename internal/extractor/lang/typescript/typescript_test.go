package typescript

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlens/internal/model"
)

const sampleTS = `
interface Spinner {
    spin(): void;
}

class Widget implements Spinner {
    spin(): void {
    }
}
`

func TestExtractInterfaceAndClass(t *testing.T) {
	res, err := Extractor{}.Extract(context.Background(), model.FileRecord{RelativePath: "widget.ts"}, []byte(sampleTS))
	require.NoError(t, err)
	require.NotEmpty(t, res.Symbols)

	byName := map[string][]model.Symbol{}
	for _, s := range res.Symbols {
		byName[s.Name] = append(byName[s.Name], s)
	}

	spinners, ok := byName["Spinner"]
	require.True(t, ok)
	assert.Equal(t, model.KindInterface, spinners[0].Kind)

	widgets, ok := byName["Widget"]
	require.True(t, ok)
	assert.Equal(t, model.KindClass, widgets[0].Kind)

	spins, ok := byName["spin"]
	require.True(t, ok)
	var foundClassMethod bool
	for _, s := range spins {
		if s.Kind == model.KindMethod && s.FQN == "Widget.spin" {
			foundClassMethod = true
		}
	}
	assert.True(t, foundClassMethod, "expected Widget.spin class method")
}

func TestLanguageAndExtensions(t *testing.T) {
	assert.Equal(t, "typescript", Extractor{}.Language())
	assert.Equal(t, []string{".ts", ".tsx"}, Extractor{}.Extensions())
}
