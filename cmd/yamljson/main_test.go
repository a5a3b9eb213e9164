package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/0xalexb/yamljson/convert"
	"github.com/0xalexb/yamljson/watcher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestConvertCmd(t *testing.T) {
	t.Parallel()

	const input = "base: &b\n  x: 1\nchild:\n  <<: *b\n  y: yes\n"

	testCases := []struct {
		name     string
		args     []string
		stdin    string
		expected string
	}{
		{
			name:     "stdin by default",
			args:     []string{"convert"},
			stdin:    input,
			expected: "{\"base\":{\"x\":1},\"child\":{\"y\":true,\"x\":1}}\n",
		},
		{
			name:     "explicit dash and goccy",
			args:     []string{"convert", "-", "--parser", "goccy"},
			stdin:    input,
			expected: "{\"base\":{\"x\":1},\"child\":{\"y\":true,\"x\":1}}\n",
		},
		{
			name:     "indent",
			args:     []string{"convert", "-i", "2"},
			stdin:    "- 1\n- null\n",
			expected: "[\n  1,\n  null\n]\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, testCase.stdin, testCase.args...)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, stdout)
		})
	}
}

func TestConvertCmd_File(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "convert", writeYAML(t, "n: 12345678901234567890.5\n"))
	require.NoError(t, err)
	assert.Equal(t, "{\"n\":12345678901234567890.5}\n", stdout)
}

func TestConvertCmd_Dump(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := execute(t, "a: 1\n", "convert", "--dump")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", stdout)
	assert.Contains(t, stderr, "document.Document")
}

func TestConvertCmd_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "a: [\n", "convert")
	assert.Equal(t, convert.KindParse, convert.KindOf(err))

	_, _, err = execute(t, "a: 1\n", "convert", "--parser", "libyaml")
	require.Error(t, err)

	_, _, err = execute(t, "a: 123456\n", "convert", "--max-bytes", "4")
	require.Error(t, err)

	_, _, err = execute(t, "", "convert", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "yamljson dev"))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p) //nolint:wrapcheck
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func TestWatchFile(t *testing.T) {
	t.Parallel()

	path := writeYAML(t, "v: 1\n")

	w, err := watcher.New(watcher.Config{Path: path, Debounce: 50 * time.Millisecond}, nil)
	require.NoError(t, err)

	var out, errOut syncBuffer

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		writer := &changeWriter{mode: changesFull, colors: newPalette(false), out: &out}
		done <- watchFile(ctx, w, &convertOptions{parser: "goccy", maxBytes: defaultMaxInputBytes}, writer, &errOut)
	}()

	assert.Eventually(t, func() bool { return out.String() == "{\"v\":1}\n" }, time.Second, 10*time.Millisecond)

	// Let fsnotify register the directory before the first write.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("v: [\n"), 0o600))

	assert.Eventually(t, func() bool { return strings.Contains(errOut.String(), path) }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("v: 2\n"), 0o600))

	assert.Eventually(t, func() bool { return strings.HasSuffix(out.String(), "{\"v\":2}\n") }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
