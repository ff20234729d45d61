package vb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlens/internal/model"
)

func TestExtractNamespaceClassAndMembers(t *testing.T) {
	src := []byte(`
Namespace Acme.Widgets

Public Class Widget
    Public Sub Spin()
    End Sub

    Private Function Color() As String
    End Function
End Class

End Namespace
`)
	res, err := Extractor{}.Extract(context.Background(), model.FileRecord{RelativePath: "Widget.vb"}, src)
	require.NoError(t, err)

	byName := map[string]model.Symbol{}
	for _, s := range res.Symbols {
		byName[s.Name] = s
	}

	require.Contains(t, byName, "Widget")
	assert.Equal(t, "Acme.Widgets.Widget", byName["Widget"].FQN)
	assert.Equal(t, model.VisibilityPublic, byName["Widget"].Visibility)

	require.Contains(t, byName, "Spin")
	assert.Equal(t, model.VisibilityPublic, byName["Spin"].Visibility)

	require.Contains(t, byName, "Color")
	assert.Equal(t, model.VisibilityPrivate, byName["Color"].Visibility)
}

func TestExtractModule(t *testing.T) {
	src := []byte(`Friend Module Helpers
End Module`)
	res, err := Extractor{}.Extract(context.Background(), model.FileRecord{}, src)
	require.NoError(t, err)
	require.Len(t, res.Symbols, 1)
	assert.Equal(t, model.VisibilityInternal, res.Symbols[0].Visibility)
}
