package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/devmole/internal/ecosystem"
)

func nodeOnly(t *testing.T) []ecosystem.Spec {
	t.Helper()
	for _, s := range ecosystem.Defaults() {
		if s.ID == "node" {
			return []ecosystem.Spec{s}
		}
	}
	t.Fatal("no default node spec")
	return nil
}

func TestRunEndToEnd(t *testing.T) {
	root := t.TempDir()

	// Two node projects: one small cache, one large.
	for name, size := range map[string]int{"a": 100, "b": 5000} {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), nil, 0o644))
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, "node_modules", "dep.js"),
			[]byte(strings.Repeat("x", size)), 0o644))
	}

	var planned []Task
	var outcomes []Outcome
	summary, err := Run(context.Background(), Options{
		Root:        root,
		Limits:      testLimits,
		Concurrency: 4,
		Registry:    nodeOnly(t),
		OnPlan:      func(tasks []Task, warnings []string) { planned = tasks },
		OnOutcome:   func(out Outcome) { outcomes = append(outcomes, out) },
	})
	require.NoError(t, err)

	assert.Len(t, planned, 2)
	assert.Len(t, outcomes, 2)
	assert.Equal(t, 2, summary.TasksCompleted)
	assert.Zero(t, summary.TasksFailed)
	assert.Equal(t, int64(5100), summary.BytesFreed)
	assert.Positive(t, summary.Elapsed)

	assert.NoDirExists(t, filepath.Join(root, "a", "node_modules"))
	assert.NoDirExists(t, filepath.Join(root, "b", "node_modules"))

	// A second run over the same tree finds the same projects and frees
	// nothing further.
	again, err := Run(context.Background(), Options{
		Root:        root,
		Limits:      testLimits,
		Concurrency: 4,
		Registry:    nodeOnly(t),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, again.TasksCompleted)
	assert.Zero(t, again.BytesFreed)
}

func TestRunDepthCeilingHidesDeepProjects(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "l1", "l2", "proj")
	require.NoError(t, os.MkdirAll(deep, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(deep, "package.json"), nil, 0o644))

	limits := testLimits
	limits.MaxDepth = 1
	summary, err := Run(context.Background(), Options{
		Root:        root,
		Limits:      limits,
		Concurrency: 2,
		Registry:    nodeOnly(t),
	})
	require.NoError(t, err)

	assert.Zero(t, summary.TasksPlanned)
	assert.NotEmpty(t, summary.Warnings)
}

func TestRunExcludedProjectIsSkipped(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"keep", "vendor"} {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), nil, 0o644))
	}

	summary, err := Run(context.Background(), Options{
		Root:        root,
		Exclude:     []string{"vendor"},
		Limits:      testLimits,
		Concurrency: 2,
		Registry:    nodeOnly(t),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TasksPlanned)
}

func TestRunInaccessibleRoot(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Root:        filepath.Join(t.TempDir(), "missing"),
		Limits:      testLimits,
		Concurrency: 2,
		Registry:    nodeOnly(t),
	})
	require.Error(t, err)
}
