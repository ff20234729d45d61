package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGlob(t *testing.T) {
	assert.True(t, matchGlob("*.*", "Program.cs"))
	assert.True(t, matchGlob("*.*", "src/nested/Program.cs"))
	assert.True(t, matchGlob("*.tmp", "a/b/c/file.tmp"))
	assert.True(t, matchGlob("bin/*", "bin/Debug/app.dll") || matchGlob("bin/*", "bin/app.dll"))
	assert.True(t, matchGlob("BIN/*", "bin/app.dll"))
	assert.False(t, matchGlob("*.cs", "Program.vb"))
}

func TestShouldInclude(t *testing.T) {
	include := []string{"*.*"}
	exclude := []string{"bin/*", "obj/*", "*.tmp"}

	assert.True(t, shouldInclude(include, exclude, "src/Program.cs"))
	assert.False(t, shouldInclude(include, exclude, "bin/app.dll"))
	assert.False(t, shouldInclude(include, exclude, "src/scratch.tmp"))
}

func TestShouldIncludeExcludeWinsOverInclude(t *testing.T) {
	include := []string{"*.cs"}
	exclude := []string{"*.cs"}
	assert.False(t, shouldInclude(include, exclude, "Program.cs"))
}

func TestShouldIncludeNoIncludePatternsMeansAllowAll(t *testing.T) {
	assert.True(t, shouldInclude(nil, nil, "anything.xyz"))
}
