// Package ecosystem defines the static registry of supported build
// ecosystems: which marker files identify a project and how its build
// output gets cleaned.
package ecosystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lakshaymaurya-felt/devmole/internal/core"
)

// Strategy selects how a matched project is cleaned.
type Strategy int

const (
	// StrategyRunClean spawns the ecosystem's own clean command inside the
	// project directory. The command's exit code is not interpreted.
	StrategyRunClean Strategy = iota

	// StrategyDeletePaths removes a fixed list of well-known cache
	// directories and lock files beneath the project directory.
	StrategyDeletePaths
)

// probeTimeout bounds the `tool --version` availability check.
const probeTimeout = 10 * time.Second

// Spec describes one ecosystem. Instances are immutable after process start.
type Spec struct {
	// ID is the ecosystem identifier (e.g. "cargo", "node").
	ID string

	// Markers are file names whose presence directly inside a directory
	// identifies it as a project root for this ecosystem.
	Markers []string

	// Strategy selects the cleanup action.
	Strategy Strategy

	// CleanArgs is the clean command argv for StrategyRunClean.
	CleanArgs []string

	// RemovePaths lists project-relative sub-paths removed by
	// StrategyDeletePaths.
	RemovePaths []string
}

// Matches reports whether dir contains any of the spec's marker files.
// Markers are only looked up directly inside dir, never recursively.
func (s Spec) Matches(dir string) bool {
	for _, marker := range s.Markers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// Defaults returns the built-in registry.
func Defaults() []Spec {
	return []Spec{
		{
			ID:        "cargo",
			Markers:   []string{"Cargo.toml"},
			Strategy:  StrategyRunClean,
			CleanArgs: []string{"cargo", "clean"},
		},
		{
			ID:        "go",
			Markers:   []string{"go.mod"},
			Strategy:  StrategyRunClean,
			CleanArgs: []string{"go", "clean"},
		},
		{
			ID:        "gradle",
			Markers:   []string{"build.gradle", "build.gradle.kts"},
			Strategy:  StrategyRunClean,
			CleanArgs: []string{"gradle", "clean"},
		},
		{
			ID:        "maven",
			Markers:   []string{"pom.xml"},
			Strategy:  StrategyRunClean,
			CleanArgs: []string{"mvn", "clean"},
		},
		{
			ID:        "flutter",
			Markers:   []string{"pubspec.yaml"},
			Strategy:  StrategyRunClean,
			CleanArgs: []string{"flutter", "clean"},
		},
		{
			ID:          "node",
			Markers:     []string{"package.json"},
			Strategy:    StrategyDeletePaths,
			RemovePaths: []string{"node_modules", ".next"},
		},
		{
			ID:          "python",
			Markers:     []string{"pyproject.toml", "setup.py", "requirements.txt"},
			Strategy:    StrategyDeletePaths,
			RemovePaths: []string{"__pycache__", ".pytest_cache", ".mypy_cache", ".ruff_cache"},
		},
	}
}

// IDs returns the identifiers of the given specs, sorted.
func IDs(specs []Spec) []string {
	ids := make([]string, 0, len(specs))
	for _, s := range specs {
		ids = append(ids, s.ID)
	}
	sort.Strings(ids)
	return ids
}

// Filter removes the ecosystems named in excludeIDs. Unknown identifiers
// are a configuration error.
func Filter(specs []Spec, excludeIDs []string) ([]Spec, error) {
	known := make(map[string]bool, len(specs))
	for _, s := range specs {
		known[s.ID] = true
	}
	drop := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		if !known[id] {
			return nil, fmt.Errorf("unknown ecosystem %q (valid: %s)",
				id, strings.Join(IDs(specs), ", "))
		}
		drop[id] = true
	}

	kept := make([]Spec, 0, len(specs))
	for _, s := range specs {
		if !drop[s.ID] {
			kept = append(kept, s)
		}
	}
	return kept, nil
}

// Available filters out RunClean specs whose tool cannot be spawned on this
// machine. DeletePaths specs need no external tool and always pass through.
func Available(ctx context.Context, specs []Spec) []Spec {
	var usable []Spec
	for _, s := range specs {
		if s.Strategy == StrategyRunClean && !commandExists(ctx, s.CleanArgs[0]) {
			continue
		}
		usable = append(usable, s)
	}
	return usable
}

// commandExists probes a tool by spawning `tool --version` and discarding
// the output. Any successful spawn counts, regardless of exit code.
func commandExists(ctx context.Context, name string) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, core.ToolName(name), "--version")
	cmd.Stdout = nil
	cmd.Stderr = nil
	err := cmd.Run()
	if err == nil {
		return true
	}
	// A nonzero exit still proves the binary launched.
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
