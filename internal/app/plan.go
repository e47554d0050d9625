package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"efr32-build/internal/core"
	"efr32-build/internal/types"
)

// Plan resolves the board and builds the invocation a Build call would run,
// without invoking any tool.
func (s Service) Plan(ctx context.Context, req BuildRequest) (types.BuildInvocation, error) {
	if strings.TrimSpace(req.VendorExtension) != "" {
		return types.BuildInvocation{}, types.ConfigurationError("vendor extensions are not implemented")
	}
	catalog, err := s.Catalog.LoadCatalog(s.Config.CatalogPath)
	if err != nil {
		return types.BuildInvocation{}, err
	}
	planner, err := core.NewInvocationPlanner(catalog)
	if err != nil {
		return types.BuildInvocation{}, err
	}

	resolved, err := s.Platform(ctx, PlatformRequest{Board: req.Board})
	if err != nil {
		return types.BuildInvocation{}, err
	}
	board := resolved.Board
	if err := planner.CheckBoard(board); err != nil {
		return types.BuildInvocation{}, err
	}

	repoDir, err := absPath(s.Config.RepoDir)
	if err != nil {
		return types.BuildInvocation{}, err
	}
	req, err = applyBuildDefaults(req, repoDir, planner.DefaultTargets(board.Platform))
	if err != nil {
		return types.BuildInvocation{}, err
	}

	var apps []core.ExampleAppRequest
	if !req.SkipSilabsApps && planner.ExampleAppsSupported(board.Platform) {
		selected, err := selectExampleApps(catalog, req.ExampleApps)
		if err != nil {
			return types.BuildInvocation{}, err
		}
		for _, app := range selected {
			name, err := s.Templates.ReadProjectName(repoPath(repoDir, app.Project))
			if err != nil {
				return types.BuildInvocation{}, err
			}
			apps = append(apps, core.ExampleAppRequest{App: app, ProjectName: name})
		}
	}

	invocation := planner.Plan(core.PlanRequest{
		ID:             s.NewID(),
		StartedAt:      s.Clock(),
		Board:          board,
		RepoDir:        repoDir,
		BuildRoot:      req.BuildRoot,
		Targets:        req.Targets,
		ExtraOptions:   req.ExtraOptions,
		ExampleApps:    apps,
		SkipGeneration: req.SkipGeneration,
	})
	log.Info().
		Str("invocation", invocation.ID).
		Str("board", board.ID).
		Str("platform", board.Platform).
		Strs("targets", invocation.Targets).
		Str("build_root", invocation.BuildRoot).
		Msg("resolved build")
	return invocation, nil
}

// selectExampleApps returns the named example apps, or all of them when no
// names are given.
func selectExampleApps(catalog types.Catalog, names []string) ([]types.ExampleApp, error) {
	if len(names) == 0 {
		return catalog.ExampleApps, nil
	}
	selected := make([]types.ExampleApp, 0, len(names))
	seen := map[string]struct{}{}
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		app, ok := catalog.ExampleApp(name)
		if !ok {
			return nil, types.ConfigurationError(fmt.Sprintf("unknown example app %s", name))
		}
		selected = append(selected, app)
	}
	return selected, nil
}

func repoPath(repoDir string, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoDir, filepath.FromSlash(path))
}
