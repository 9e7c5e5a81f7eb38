// Package scan implements the bounded directory traversal shared by
// candidate discovery and size accounting.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxWarnings caps the warning list so a pathological tree cannot exhaust
// memory with skip messages.
const maxWarnings = 500

// Limits bounds traversal cost on pathological trees (symlink farms, huge
// monorepos). Both values must be positive; zero is rejected upstream.
type Limits struct {
	// MaxDepth is the maximum directory depth below the walk root
	// (the root itself is depth 0).
	MaxDepth int

	// MaxFiles is the maximum number of regular files visited per size
	// computation.
	MaxFiles int
}

// walkItem is one pending directory in the explicit work queue.
type walkItem struct {
	path  string
	depth int
}

// walker is a single-pass iterative traversal. It never follows symlinks
// and never aborts on an unreadable subdirectory; only an unreadable root
// is fatal. Concurrency lives in the scheduler, not here, so a walker is
// single-goroutine and needs no locking.
type walker struct {
	exclude  map[string]bool // lowercased names; nil disables name pruning
	pruneDot bool
	maxDepth int

	// onDir is called for every directory reached, including the root.
	onDir func(path string, depth int)
	// onFile is called for every regular file; returning false stops the
	// walk. nil skips file visits entirely.
	onFile func(path string, size int64) bool

	warnings []string
	pruned   bool // a depth or file ceiling cut the walk short
}

func (w *walker) warn(msg string) {
	if len(w.warnings) < maxWarnings {
		w.warnings = append(w.warnings, msg)
	}
}

// excluded reports whether a directory name is pruned by the exclusion
// rules. Matching is case-insensitive, same as the exclusion map build.
func (w *walker) excluded(name string) bool {
	if w.pruneDot && strings.HasPrefix(name, ".") {
		return true
	}
	return w.exclude != nil && w.exclude[strings.ToLower(name)]
}

// walk traverses the tree under root with an explicit work queue. The only
// error it returns is a failure to read the root directory itself.
func (w *walker) walk(root string) error {
	if w.excluded(filepath.Base(root)) {
		return nil
	}
	if w.onDir != nil {
		w.onDir(root, 0)
	}

	queue := []walkItem{{path: root, depth: 0}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(item.path)
		if err != nil {
			if item.depth == 0 {
				return err
			}
			w.warn("cannot read " + item.path + ": " + err.Error())
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			childPath := filepath.Join(item.path, name)

			// Symlinks are never followed; a cycle cannot form.
			if entry.Type()&fs.ModeSymlink != 0 {
				continue
			}

			if entry.IsDir() {
				if w.excluded(name) {
					continue
				}
				if item.depth+1 > w.maxDepth {
					w.pruned = true
					w.warn("max depth reached, skipping " + childPath)
					continue
				}
				if w.onDir != nil {
					w.onDir(childPath, item.depth+1)
				}
				queue = append(queue, walkItem{path: childPath, depth: item.depth + 1})
				continue
			}

			if w.onFile == nil || !entry.Type().IsRegular() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				w.warn("cannot stat " + childPath + ": " + err.Error())
				continue
			}
			if !w.onFile(childPath, info.Size()) {
				w.pruned = true
				return nil
			}
		}
	}

	return nil
}
