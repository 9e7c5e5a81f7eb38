package scan

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Scanner discovers candidate project directories under a root path,
// pruning excluded and hidden subtrees before they are visited.
type Scanner struct {
	exclude  map[string]bool
	maxDepth int
	log      *zap.Logger
}

// NewScanner creates a scanner. exclude is a list of directory names
// (matched case-insensitively) whose subtrees are never visited; hidden
// directories (leading dot) are always pruned.
func NewScanner(exclude []string, maxDepth int, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	excMap := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excMap[strings.ToLower(e)] = true
	}
	return &Scanner{
		exclude:  excMap,
		maxDepth: maxDepth,
		log:      log,
	}
}

// Candidates returns every directory reachable from root without crossing
// an excluded directory or exceeding the depth ceiling, together with any
// warnings raised along the way (unreadable subtrees, depth cutoffs).
// Only an inaccessible root is an error.
func (s *Scanner) Candidates(root string) ([]string, []string, error) {
	var dirs []string
	w := &walker{
		exclude:  s.exclude,
		pruneDot: true,
		maxDepth: s.maxDepth,
		onDir: func(path string, depth int) {
			dirs = append(dirs, path)
		},
	}

	if err := w.walk(root); err != nil {
		return nil, nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	s.log.Debug("scan complete",
		zap.String("root", root),
		zap.Int("directories", len(dirs)),
		zap.Int("warnings", len(w.warnings)))

	return dirs, w.warnings, nil
}
