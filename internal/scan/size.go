package scan

// Usage computes the total size in bytes of all regular files under dir,
// without following symlinks, bounded by limits. The second return value
// is true when the result is exact; false means a ceiling was hit and the
// sum is a lower bound. Hidden directories are included — cache output
// often lives in dot-directories, and before/after measurements must see
// the same tree.
//
// An unreadable dir yields (0, true): a directory that cannot be measured
// contributes nothing to the freed-space report rather than failing the task.
func Usage(dir string, limits Limits) (int64, bool) {
	var total int64
	files := 0

	w := &walker{
		maxDepth: limits.MaxDepth,
		onFile: func(path string, size int64) bool {
			if files >= limits.MaxFiles {
				return false
			}
			files++
			total += size
			return true
		},
	}

	if err := w.walk(dir); err != nil {
		return 0, true
	}
	return total, !w.pruned
}

// FreedBytes computes the space reclaimed between two measurements of the
// same directory, clamped at zero. A concurrent writer can make the tree
// grow between the two walks; a negative delta is never reported.
func FreedBytes(before, after int64) int64 {
	if after >= before {
		return 0
	}
	return before - after
}
