package ecosystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lakshaymaurya-felt/devmole/internal/core"
)

// Clean executes the spec's cleanup action inside dir. The strategy switch
// is exhaustive; adding a Strategy value without a case here is a bug.
func (s Spec) Clean(ctx context.Context, dir string) error {
	switch s.Strategy {
	case StrategyRunClean:
		return s.runClean(ctx, dir)
	case StrategyDeletePaths:
		return s.deletePaths(dir)
	}
	return fmt.Errorf("ecosystem %s: unhandled cleanup strategy %d", s.ID, s.Strategy)
}

// runClean spawns the ecosystem's clean command with the working directory
// set to the project. Any exit code counts as "ran"; only failing to spawn
// or wait on the process (binary missing, I/O error, cancellation) fails.
func (s Spec) runClean(ctx context.Context, dir string) error {
	if len(s.CleanArgs) == 0 {
		return fmt.Errorf("ecosystem %s: no clean command configured", s.ID)
	}

	cmd := exec.CommandContext(ctx, core.ToolName(s.CleanArgs[0]), s.CleanArgs[1:]...)
	cmd.Dir = dir
	cmd.Stdout = nil
	cmd.Stderr = nil

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The tool ran and exited. Its exit code is not interpreted.
		return nil
	}
	return fmt.Errorf("spawning %q in %s: %w", s.CleanArgs[0], dir, err)
}

// deletePaths removes each of the spec's well-known sub-paths if present.
// An absent sub-path is not an error. A removal failure is recorded but
// does not stop attempts on the remaining sub-paths.
func (s Spec) deletePaths(dir string) error {
	var errs []error
	for _, rel := range s.RemovePaths {
		cleaned := filepath.Clean(rel)
		if cleaned == "." || filepath.IsAbs(cleaned) ||
			cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
			// Never allow a registry entry to reach outside the project.
			errs = append(errs, fmt.Errorf("ecosystem %s: invalid remove path %q", s.ID, rel))
			continue
		}
		target := filepath.Join(dir, cleaned)
		if _, err := os.Lstat(target); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			errs = append(errs, fmt.Errorf("inspecting %s: %w", target, err))
			continue
		}
		if err := os.RemoveAll(target); err != nil {
			errs = append(errs, fmt.Errorf("removing %s: %w", target, err))
		}
	}
	return errors.Join(errs...)
}
