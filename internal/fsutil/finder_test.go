package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/stepconf/internal/fsutil"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# test"), 0o644))
}

func TestFindFiles(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.hcl"))
	writeFile(t, filepath.Join(root, "nested", "deep", "b.hcl"))
	writeFile(t, filepath.Join(root, "nested", "notes.txt"))
	writeFile(t, filepath.Join(root, "ci", "c.pipeline.hcl"))
	explicit := filepath.Join(root, "nested", "notes.txt")

	t.Run("default include", func(t *testing.T) {
		t.Parallel()
		got, err := fsutil.FindFiles([]string{root, filepath.Join(root, "a.hcl")}, "")
		require.NoError(t, err)
		require.Equal(t, []string{
			filepath.Join(root, "a.hcl"),
			filepath.Join(root, "ci", "c.pipeline.hcl"),
			filepath.Join(root, "nested", "deep", "b.hcl"),
		}, got)
	})

	t.Run("custom include and explicit file", func(t *testing.T) {
		t.Parallel()
		got, err := fsutil.FindFiles([]string{root, explicit}, "ci/*.pipeline.hcl")
		require.NoError(t, err)
		require.Equal(t, []string{
			filepath.Join(root, "ci", "c.pipeline.hcl"),
			explicit,
		}, got)
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()
		_, err := fsutil.FindFiles([]string{filepath.Join(root, "missing")}, "")
		require.Error(t, err)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()
		_, err := fsutil.FindFiles([]string{root}, "[")
		require.ErrorContains(t, err, "invalid include pattern")
	})
}

func TestWatchDirs(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "defs", "a.hcl"))
	writeFile(t, filepath.Join(root, "defs", "nested", "b.hcl"))
	single := filepath.Join(root, "single", "c.hcl")
	writeFile(t, single)

	// --- Act ---
	got, err := fsutil.WatchDirs([]string{filepath.Join(root, "defs"), single, filepath.Join(root, "gone")})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "defs"),
		filepath.Join(root, "defs", "nested"),
		filepath.Join(root, "single"),
	}, got)
}

func TestMatches(t *testing.T) {
	t.Parallel()

	root := filepath.Join("work", "defs")
	explicit := filepath.Join("work", "other", "main.txt")
	paths := []string{root, explicit}

	testCases := []struct {
		name    string
		include string
		file    string
		want    bool
	}{
		{"hcl at root", "", filepath.Join(root, "a.hcl"), true},
		{"nested hcl", "", filepath.Join(root, "x", "y", "b.hcl"), true},
		{"other extension", "", filepath.Join(root, "notes.md"), false},
		{"outside every path", "", filepath.Join("work", "c.hcl"), false},
		{"explicit file", "", explicit, true},
		{"custom include", "ci/*.hcl", filepath.Join(root, "ci", "a.hcl"), true},
		{"custom include miss", "ci/*.hcl", filepath.Join(root, "a.hcl"), false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, fsutil.Matches(paths, tc.include, tc.file))
		})
	}
}
