package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/foldersize/internal/foldersize"
)

// execute runs the command with args, feeding in as standard input.
func execute(t *testing.T, in string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := New("1.2.3").Command()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(in))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

// fixture creates a.txt (2 MiB) and b/c.bin (1 MiB) in a temporary directory.
func fixture(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), make([]byte, 2*MiB), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b", "c.bin"), make([]byte, MiB), 0o644))

	return root
}

func TestPlainOutput(t *testing.T) {
	stdout, stderr, err := execute(t, "", fixture(t), "--progress", "never")
	require.NoError(t, err)

	assert.Equal(t, "\n"+Header+"\na.txt <<< 2 MB\nb <<< 1 MB\n", stdout)
	assert.Empty(t, stderr)
}

func TestEmptyDirectory(t *testing.T) {
	stdout, _, err := execute(t, "", t.TempDir(), "--progress=never")
	require.NoError(t, err)

	assert.Equal(t, "\n"+Header+"\n", stdout)
}

func TestPromptForPath(t *testing.T) {
	root := fixture(t)

	stdout, _, err := execute(t, "  \""+root+"\"\r\n", "--progress=never")
	require.NoError(t, err)

	assert.Equal(t, "Enter a path: \n"+Header+"\na.txt <<< 2 MB\nb <<< 1 MB\n", stdout)
}

func TestPromptEmpty(t *testing.T) {
	_, _, err := execute(t, "\n")
	require.ErrorIs(t, err, ErrInvalidPath)
}

func TestPause(t *testing.T) {
	stdout, _, err := execute(t, "\n", t.TempDir(), "--progress=never", "--pause")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(stdout, "Press Enter to exit..."), stdout)
}

func TestPauseFlagsExclusive(t *testing.T) {
	_, _, err := execute(t, "", t.TempDir(), "--pause", "--no-pause")
	require.Error(t, err)
}

func TestProgressAlways(t *testing.T) {
	stdout, stderr, err := execute(t, "", fixture(t), "--progress=always")
	require.NoError(t, err)

	assert.Contains(t, stderr, "[calculating... |]")
	assert.True(t, strings.HasSuffix(stderr, "\n"), "%q", stderr)
	assert.Contains(t, stderr, "[done!]")
	assert.Equal(t, "\n"+Header+"\na.txt <<< 2 MB\nb <<< 1 MB\n", stdout)
}

func TestProgressDisabledForJSON(t *testing.T) {
	_, stderr, err := execute(t, "", fixture(t), "--progress=always", "-o", "json")
	require.NoError(t, err)

	assert.Empty(t, stderr)
}

func TestInvalidPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, _, err := execute(t, "", missing)
	require.ErrorIs(t, err, ErrInvalidPath)
	assert.Contains(t, err.Error(), missing)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, _, err := execute(t, "", file)
	require.ErrorIs(t, err, ErrInvalidPath)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestJSONOutput(t *testing.T) {
	root := fixture(t)

	stdout, _, err := execute(t, "", root, "--output", "json")
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	assert.Equal(t, Report{
		Path:       root,
		TotalBytes: 3 * MiB,
		Entries: []foldersize.Entry{
			{Name: "a.txt", Size: 2 * MiB},
			{Name: "b", Size: MiB},
		},
	}, report)
}

func TestTableOutput(t *testing.T) {
	stdout, _, err := execute(t, "", fixture(t), "-o", "table", "--progress=never")
	require.NoError(t, err)

	assert.Contains(t, stdout, "1) 'a.txt'")
	assert.Contains(t, stdout, "2.0 MiB")
	assert.Contains(t, stdout, "(66.7%)")
	assert.Contains(t, stdout, "2) 'b'")
	assert.Contains(t, stdout, "Total:")
	assert.Contains(t, stdout, "3.0 MiB (3145728 bytes)")
}

func TestHumanOutput(t *testing.T) {
	stdout, _, err := execute(t, "", fixture(t), "-H", "--progress=never")
	require.NoError(t, err)

	assert.Equal(t, "\n"+Header+"\na.txt <<< 2.0 MiB\nb <<< 1.0 MiB\n", stdout)
}

func TestTop(t *testing.T) {
	stdout, _, err := execute(t, "", fixture(t), "--top", "1", "--progress=never")
	require.NoError(t, err)

	assert.Equal(t, "\n"+Header+"\na.txt <<< 2 MB\n", stdout)
}

func TestInvalidFlags(t *testing.T) {
	for name, args := range map[string][]string{
		"output":   {"-o", "xml"},
		"progress": {"--progress", "sometimes"},
		"top":      {"--top", "-1"},
		"args":     {"a", "b"},
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := execute(t, "", append([]string{}, args...)...)
			require.Error(t, err)
		})
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "", "--version")
	require.NoError(t, err)

	assert.Equal(t, "1.2.3\n", stdout)
}

func TestProgressWithDebugLogging(t *testing.T) {
	root := fixture(t)

	for i := 0; i < 50; i++ {
		dir := filepath.Join(root, "dirs", strconv.Itoa(i))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644))
	}

	stdout, stderr, err := execute(t, "", root, "--progress=always", "--debug")
	require.NoError(t, err)

	assert.Contains(t, stderr, "level=debug")
	assert.Contains(t, stderr, "[calculating... |]")
	assert.Contains(t, stderr, "[done!]")
	assert.Contains(t, stdout, "a.txt <<< 2 MB\n")
}

func TestWalkWarningsOnStderr(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	root := fixture(t)
	locked := filepath.Join(root, "b", "locked")

	require.NoError(t, os.Mkdir(locked, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "hidden"), make([]byte, MiB), 0o644))
	require.NoError(t, os.Chmod(locked, 0o000))

	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	stdout, stderr, err := execute(t, "", root, "--progress=never")
	require.NoError(t, err)

	assert.Equal(t, "\n"+Header+"\na.txt <<< 2 MB\nb <<< 1 MB\n", stdout)
	assert.Contains(t, stderr, "level=warning")
	assert.Contains(t, stderr, `msg="walking directory"`)
	assert.Contains(t, stderr, "path="+locked)
	assert.Contains(t, stderr, "error=")
	assert.Contains(t, stderr, "permission denied")
}
