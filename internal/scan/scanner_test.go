package scan

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under root. Keys use slashes; parent directories
// are created as needed. Empty directories end with "/".
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		if strings.HasSuffix(path, "/") {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func relDirs(t *testing.T, root string, dirs []string) []string {
	t.Helper()
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		rel, err := filepath.Rel(root, d)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestScannerCandidates(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		exclude  []string
		maxDepth int
		want     []string
		wantWarn bool
	}{
		{
			name: "plain tree",
			files: map[string]string{
				"a/x.txt":   "x",
				"a/b/y.txt": "y",
				"c/":        "",
			},
			maxDepth: 10,
			want:     []string{".", "a", "a/b", "c"},
		},
		{
			name: "excluded names are pruned with descendants",
			files: map[string]string{
				"keep/f":              "1",
				"node_modules/pkg/f":  "1",
				"sub/node_modules/f":  "1",
				"sub/other/child/f":   "1",
				"target/debug/deps/f": "1",
			},
			exclude:  []string{"node_modules", "target"},
			maxDepth: 10,
			want:     []string{".", "keep", "sub", "sub/other", "sub/other/child"},
		},
		{
			name: "exclusion matching ignores case",
			files: map[string]string{
				"Target/deep/f": "1",
			},
			exclude:  []string{"target"},
			maxDepth: 10,
			want:     []string{"."},
		},
		{
			name: "hidden directories are pruned",
			files: map[string]string{
				".git/objects/f": "1",
				".cache/f":       "1",
				"visible/f":      "1",
			},
			maxDepth: 10,
			want:     []string{".", "visible"},
		},
		{
			name: "depth ceiling stops descent and warns",
			files: map[string]string{
				"l1/l2/l3/deep.txt": "1",
			},
			maxDepth: 1,
			want:     []string{".", "l1"},
			wantWarn: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.files)

			s := NewScanner(tt.exclude, tt.maxDepth, nil)
			dirs, warnings, err := s.Candidates(root)
			require.NoError(t, err)

			assert.ElementsMatch(t, tt.want, relDirs(t, root, dirs))
			if tt.wantWarn {
				assert.NotEmpty(t, warnings)
			} else {
				assert.Empty(t, warnings)
			}
		})
	}
}

func TestScannerRootNameExcluded(t *testing.T) {
	// A root whose own name matches an exclusion rule yields no candidates.
	base := t.TempDir()
	root := filepath.Join(base, "node_modules")
	writeTree(t, root, map[string]string{"pkg/f": "1"})

	s := NewScanner([]string{"node_modules"}, 10, nil)
	dirs, _, err := s.Candidates(root)
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestScannerDoesNotFollowSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on Windows")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{"real/f": "1"})
	// A cycle back to the root must not hang or duplicate candidates.
	require.NoError(t, os.Symlink(root, filepath.Join(root, "loop")))

	s := NewScanner(nil, 10, nil)
	dirs, _, err := s.Candidates(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{".", "real"}, relDirs(t, root, dirs))
}

func TestScannerUnreadableSubdirSkipped(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits not enforced")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"locked/secret.txt": "1",
		"open/f":            "1",
	})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	s := NewScanner(nil, 10, nil)
	dirs, warnings, err := s.Candidates(root)
	require.NoError(t, err)

	// The unreadable directory is still a candidate (it was reached), but
	// its contents are skipped with a warning rather than failing the scan.
	assert.Contains(t, relDirs(t, root, dirs), "open")
	assert.NotEmpty(t, warnings)
}

func TestScannerInaccessibleRootFails(t *testing.T) {
	s := NewScanner(nil, 10, nil)
	_, _, err := s.Candidates(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}
