package engine

import (
	"github.com/lakshaymaurya-felt/devmole/internal/ecosystem"
)

// Plan tests every candidate directory against every registered ecosystem
// and returns the resulting task list. A directory that matches several
// ecosystems produces one task per match — a repo carrying both a
// Cargo.toml and a package.json is cleaned by both, deliberately.
//
// Matching never short-circuits descent: the candidate list already
// contains the subdirectories of matched projects, so nested projects
// inside a monorepo are planned independently.
func Plan(dirs []string, specs []ecosystem.Spec) []Task {
	var tasks []Task
	for _, dir := range dirs {
		for _, spec := range specs {
			if spec.Matches(dir) {
				tasks = append(tasks, Task{Dir: dir, Spec: spec})
			}
		}
	}
	return tasks
}
