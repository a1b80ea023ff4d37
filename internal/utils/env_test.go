package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("STORY_TEST_STR", "  phi3 ")
	t.Setenv("STORY_TEST_INT", "42")
	t.Setenv("STORY_TEST_BAD_INT", "forty")
	t.Setenv("STORY_TEST_BOOL", "true")

	assert.Equal(t, "phi3", GetEnv("STORY_TEST_STR", "x"))
	assert.Equal(t, "x", GetEnv("STORY_TEST_MISSING", "x"))
	assert.Equal(t, 42, GetEnvInt("STORY_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("STORY_TEST_BAD_INT", 1))
	assert.True(t, GetEnvBool("STORY_TEST_BOOL", false))
	assert.True(t, GetEnvBool("STORY_TEST_MISSING", true))
}

func TestFindProjectRoot_WalksUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x\n"), 0644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	got, err := FindProjectRoot()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotResolved)
}

func TestDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, DirectoryExists(dir))
	assert.False(t, DirectoryExists(file))
	assert.False(t, DirectoryExists(filepath.Join(dir, "missing")))
}
