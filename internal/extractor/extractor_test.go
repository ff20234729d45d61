package extractor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlens/internal/config"
	"github.com/oxhq/archlens/internal/extractor/lang/jsonlang"
	"github.com/oxhq/archlens/internal/extractor/lang/sql"
	"github.com/oxhq/archlens/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) model.FileRecord {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	info, err := os.Stat(path)
	require.NoError(t, err)
	return model.FileRecord{
		AbsolutePath:   path,
		RelativePath:   name,
		Name:           name,
		Extension:      filepath.Ext(name),
		SizeBytes:      info.Size(),
		Classification: model.ClassSource,
	}
}

func newTestRegistry() *Registry {
	reg := NewRegistry()
	_ = reg.Register(sql.New())
	_ = reg.Register(jsonlang.New())
	return reg
}

func TestExtractAssemblesCodeAnalysis(t *testing.T) {
	dir := t.TempDir()
	fs := &model.FileSystemAnalysis{
		SourceFiles: []model.FileRecord{
			writeFile(t, dir, "schema.sql", "CREATE TABLE Widgets (Id INT)"),
			writeFile(t, dir, "data.json", `{"a": 1, "b": {"c": 2}}`),
		},
	}

	analysis, diags, err := Extract(context.Background(), fs, newTestRegistry(), config.DefaultExtractOptions(), nil)
	require.NoError(t, err)
	assert.Empty(t, diags)

	assert.NotEmpty(t, analysis.Symbols)
	assert.Contains(t, analysis.ByLanguage, "sql")
	assert.Contains(t, analysis.ByLanguage, "json")
	assert.Equal(t, 1, analysis.ClassCount) // the Widgets table
	assert.Greater(t, analysis.Complexity, 0.0)
}

func TestExtractSkipsUnregisteredExtensions(t *testing.T) {
	dir := t.TempDir()
	fs := &model.FileSystemAnalysis{
		SourceFiles: []model.FileRecord{
			writeFile(t, dir, "unknown.xyz", "irrelevant"),
		},
	}

	analysis, diags, err := Extract(context.Background(), fs, newTestRegistry(), config.DefaultExtractOptions(), nil)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Empty(t, analysis.Symbols)
}

func TestExtractHonorsMaxFileBytes(t *testing.T) {
	dir := t.TempDir()
	fs := &model.FileSystemAnalysis{
		SourceFiles: []model.FileRecord{
			writeFile(t, dir, "big.sql", "CREATE TABLE Big (Id INT)"),
		},
	}

	opts := config.DefaultExtractOptions()
	opts.MaxFileBytes = 1

	analysis, diags, err := Extract(context.Background(), fs, newTestRegistry(), opts, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, diags)
	assert.Empty(t, analysis.Symbols)
}

func TestExtractRejectsNilFileSystemAnalysis(t *testing.T) {
	_, _, err := Extract(context.Background(), nil, newTestRegistry(), config.DefaultExtractOptions(), nil)
	assert.Error(t, err)
}

func TestExtractFiltersPrivateWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	fs := &model.FileSystemAnalysis{
		SourceFiles: []model.FileRecord{
			writeFile(t, dir, "data.json", `{"a": 1}`),
		},
	}

	opts := config.DefaultExtractOptions()
	opts.IncludePrivate = false

	// jsonlang always emits Public symbols, so nothing should be filtered.
	analysis, _, err := Extract(context.Background(), fs, newTestRegistry(), opts, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, analysis.Symbols)
}

func TestExtractRespectsSupportedLanguages(t *testing.T) {
	dir := t.TempDir()
	fs := &model.FileSystemAnalysis{
		SourceFiles: []model.FileRecord{
			writeFile(t, dir, "schema.sql", "CREATE TABLE T (Id INT)"),
			writeFile(t, dir, "data.json", `{"a": 1}`),
		},
	}

	opts := config.DefaultExtractOptions()
	opts.SupportedLanguages = map[string]bool{"json": true}

	analysis, _, err := Extract(context.Background(), fs, newTestRegistry(), opts, nil)
	require.NoError(t, err)
	assert.Contains(t, analysis.ByLanguage, "json")
	assert.NotContains(t, analysis.ByLanguage, "sql")
}
