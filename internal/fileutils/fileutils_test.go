package fileutils_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/budget-tracker/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
	// directories are not files
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	newDir := filepath.Join(tmpDir, "new", "nested", "dir")
	require.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	assert.True(t, fileutils.DirectoryExists(newDir))

	// idempotent
	assert.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	assert.NoError(t, fileutils.EnsureDirectoryExists(""))
}

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.md")

	f, err := fileutils.CreateFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("hello")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.txt")
	content := "\ufefffirst message\r\n\n   \n  second message  \nthird"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	lines, err := fileutils.ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first message", "second message", "third"}, lines)

	_, err = fileutils.ReadLines(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestScanLines_Empty(t *testing.T) {
	lines, err := fileutils.ScanLines(strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.Empty(t, lines)
}
