package xml

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlens/internal/model"
)

func TestExtractRootAndDescendants(t *testing.T) {
	src := []byte(`<configuration><appSettings><add key="k" value="v"/></appSettings></configuration>`)

	res, err := Extractor{}.Extract(context.Background(), model.FileRecord{RelativePath: "App.config"}, src)
	require.NoError(t, err)

	var root, children int
	for _, s := range res.Symbols {
		if s.Kind == model.KindClass {
			root++
			assert.Equal(t, "configuration", s.Name)
		} else {
			children++
		}
	}
	assert.Equal(t, 1, root)
	assert.Equal(t, 2, children) // appSettings, add
}

func TestExtractAttributesAreNotSymbols(t *testing.T) {
	src := []byte(`<root attr="ignored"><child/></root>`)
	res, err := Extractor{}.Extract(context.Background(), model.FileRecord{}, src)
	require.NoError(t, err)

	for _, s := range res.Symbols {
		assert.NotEqual(t, "attr", s.Name)
		assert.NotEqual(t, "ignored", s.Name)
	}
}

func TestExtractMalformedXMLIsNonFatal(t *testing.T) {
	res, err := Extractor{}.Extract(context.Background(), model.FileRecord{}, []byte(`<not closed`))
	require.NoError(t, err)
	assert.Empty(t, res.Symbols)
}
