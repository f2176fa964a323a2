package testutil

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/warforge/pkg/types"
	"github.com/stretchr/testify/require"
)

// Epoch is a fixed point in time tests build modification times from.
var Epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// At returns Epoch shifted by the given number of minutes.
func At(minutes int) time.Time {
	return Epoch.Add(time.Duration(minutes) * time.Minute)
}

// WriteFile creates path with content, making parent directories as needed.
func WriteFile(t *testing.T, fs types.FS, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
}

// WriteFileAt creates path with content and pins its modification time.
func WriteFileAt(t *testing.T, fs types.FS, path, content string, mtime time.Time) {
	t.Helper()
	WriteFile(t, fs, path, content)
	Touch(t, fs, path, mtime)
}

// WriteTree creates every file in files (relative path -> content) under root.
func WriteTree(t *testing.T, fs types.FS, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		WriteFile(t, fs, filepath.Join(root, filepath.FromSlash(rel)), content)
	}
}

// Touch sets the modification time of path.
func Touch(t *testing.T, fs types.FS, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, fs.Chtimes(path, mtime, mtime))
}

// ReadFile returns the content of path as a string.
func ReadFile(t *testing.T, fs types.FS, path string) string {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// Exists reports whether path exists.
func Exists(fs types.FS, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// ListFiles returns every regular file under root as sorted slash paths.
func ListFiles(t *testing.T, fs types.FS, root string) []string {
	t.Helper()
	var out []string
	var walk func(dir, prefix string)
	walk = func(dir, prefix string) {
		entries, err := fs.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			rel := e.Name()
			if prefix != "" {
				rel = prefix + "/" + e.Name()
			}
			if e.IsDir() {
				walk(filepath.Join(dir, e.Name()), rel)
				continue
			}
			out = append(out, rel)
		}
	}
	walk(root, "")
	sort.Strings(out)
	return out
}

// Snapshot returns relative path -> content for every file under root.
func Snapshot(t *testing.T, fs types.FS, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	for _, rel := range ListFiles(t, fs, root) {
		out[rel] = ReadFile(t, fs, filepath.Join(root, filepath.FromSlash(rel)))
	}
	return out
}

// Lines joins lines with newlines, adding a trailing newline.
func Lines(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}
