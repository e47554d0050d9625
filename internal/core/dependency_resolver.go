package core

import (
	"path/filepath"

	"github.com/rs/zerolog/log"

	"efr32-build/internal/types"
)

type DependencyResolver struct {
	Catalog types.Catalog
}

func NewDependencyResolver(catalog types.Catalog) DependencyResolver {
	return DependencyResolver{Catalog: catalog}
}

// Resolve binds every generation job required by targets to board. A job
// required by several targets is bound once. Targets missing from the
// catalog are skipped.
func (r DependencyResolver) Resolve(targets []string, board types.Board, repoDir string, buildRoot string) types.JobPlan {
	plan := types.JobPlan{Projects: map[string]*types.GeneratedProject{}}
	for _, target := range targets {
		spec, ok := r.Catalog.Target(target)
		if !ok {
			log.Debug().Str("target", target).Msg("target has no generation jobs")
			continue
		}
		for _, name := range spec.Jobs {
			if _, seen := plan.Projects[name]; seen {
				continue
			}
			config, ok := r.Catalog.Job(name)
			if !ok {
				continue
			}
			project := BindProject(config, board, repoDir, JobDestination(buildRoot, name))
			plan.Projects[name] = &project
			plan.Order = append(plan.Order, name)
		}
	}
	return plan
}

// JobDestination is the output directory of a generation job.
func JobDestination(buildRoot string, jobName string) string {
	return filepath.Join(buildRoot, "slc", filepath.FromSlash(jobName))
}

func BindProject(config types.GenerationJobConfig, board types.Board, repoDir string, destination string) types.GeneratedProject {
	return types.GeneratedProject{
		Config:      config,
		Board:       board,
		Project:     repoPath(repoDir, config.Project),
		Templates:   repoPath(repoDir, config.ExportTemplates),
		Destination: destination,
	}
}

func repoPath(repoDir string, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoDir, filepath.FromSlash(path))
}
