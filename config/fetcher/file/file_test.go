package file

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)

	err := os.WriteFile(path, content, 0o600)
	require.NoError(t, err)

	return path
}

func TestFetcher_Fetch_Success(t *testing.T) {
	t.Parallel()

	content := []byte("base: &b\n  x: 1\nchild:\n  <<: *b\n")
	path := writeFile(t, "doc.yaml", content)

	fetcher, err := NewFetcher(path)()
	require.NoError(t, err)

	data, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.Equal(t, path, fetcher.Source())
}

func TestFetcher_Fetch_FileNotFound(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher("/nonexistent/path/doc.yaml")()

	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, fetcher)
	assert.Contains(t, err.Error(), "stat file")
}

func TestFetcher_Fetch_DirectoryPath(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher(t.TempDir())()

	require.ErrorIs(t, err, ErrPathIsDirectory)
	assert.Nil(t, fetcher)
}

func TestFetcher_Fetch_EmptyFile(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher(writeFile(t, "empty.yaml", nil))()
	require.NoError(t, err)

	data, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFetcher_MaxBytes(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "big.yaml", bytes.Repeat([]byte("a"), 64))

	_, err := NewFetcher(path, WithMaxBytes(63))()
	require.ErrorIs(t, err, ErrTooLarge)

	fetcher, err := NewFetcher(path, WithMaxBytes(64))()
	require.NoError(t, err)

	data, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Len(t, data, 64)
}

func TestFetcher_CachedAndCopied(t *testing.T) {
	t.Parallel()

	original := []byte(`version: "1.0"`)
	path := writeFile(t, "doc.yaml", original)

	fetcher, err := NewFetcher(path)()
	require.NoError(t, err)

	err = os.WriteFile(path, []byte(`version: "2.0"`), 0o600)
	require.NoError(t, err)

	first, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, original, first, "Fetch must serve the data read at construction")

	first[0] = 'X'

	second, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, original, second, "mutating a result must not affect the cache")
}

func TestNewReaderFetcher(t *testing.T) {
	t.Parallel()

	fetcher, err := NewReaderFetcher("stdin", strings.NewReader("a: 1\n"))
	require.NoError(t, err)

	data, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(data))
	assert.Equal(t, "stdin", fetcher.Source())

	_, err = NewReaderFetcher("stdin", strings.NewReader("abcdef"), WithMaxBytes(3))
	require.ErrorIs(t, err, ErrTooLarge)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestNewReaderFetcher_ReadError(t *testing.T) {
	t.Parallel()

	_, err := NewReaderFetcher("pipe", failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `reading "pipe"`)
}
