package app

import (
	"context"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"efr32-build/internal/ports"
	"efr32-build/internal/types"
)

// Build runs one orchestration: project generation, then configure, build
// and image conversion per variant, then the example applications.
func (s Service) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	invocation, err := s.Plan(ctx, req)
	if err != nil {
		return BuildResult{}, err
	}
	result := BuildResult{Invocation: invocation}
	if err := os.MkdirAll(invocation.BuildRoot, 0o755); err != nil {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create build directory").
			WithCause(err)
	}

	logger := log.With().
		Str("invocation", invocation.ID).
		Str("board", invocation.Board.ID).
		Str("platform", invocation.Board.Platform).
		Logger()
	logger.Info().Str("log", invocation.LogPath).Msg("build started")

	var generator ports.GeneratorPort
	if invocation.SkipGeneration {
		result.Hints = append(result.Hints, missingProjectHints(invocation)...)
	} else if invocation.Jobs.Len() > 0 || len(invocation.ExampleApps) > 0 {
		executable, err := s.slcExecutable(ctx, req.ForceInstall)
		if err != nil {
			return result, err
		}
		generator = s.Generator(executable)
		if err := s.generateJobs(ctx, logger, generator, invocation); err != nil {
			return result, err
		}
	}

	for _, variant := range invocation.Variants {
		images, err := s.buildDir(ctx, logger, invocation, variant.Name, variant.Dir, variant.Options, variant.BuildTargets)
		if err != nil {
			return result, err
		}
		result.Images = append(result.Images, images...)
	}

	for _, app := range invocation.ExampleApps {
		if generator != nil {
			logger.Info().Str("app", app.App.Name).Str("project", app.ProjectName).Msg("generating example app project")
			if err := generator.Generate(ctx, app.Project, invocation.LogPath); err != nil {
				return result, err
			}
		}
		images, err := s.buildDir(ctx, logger, invocation, app.App.Name, app.Dir, app.Options, app.BuildTargets)
		if err != nil {
			return result, err
		}
		result.Images = append(result.Images, images...)
	}

	logger.Info().Int("images", len(result.Images)).Msg("build finished")
	return result, nil
}

func (s Service) slcExecutable(ctx context.Context, force bool) (string, error) {
	if s.Config.Tools.Slc != "" && !force {
		return s.Config.Tools.Slc, nil
	}
	return s.Installation.Ensure(ctx, force)
}

func (s Service) generateJobs(ctx context.Context, logger zerolog.Logger, generator ports.GeneratorPort, invocation types.BuildInvocation) error {
	return invocation.Jobs.Each(func(project *types.GeneratedProject) error {
		logger.Info().
			Str("job", project.Name()).
			Str("destination", project.Destination).
			Msg("generating project")
		return generator.Generate(ctx, *project, invocation.LogPath)
	})
}

// buildDir configures dir with cmake, builds the given ninja targets and
// converts the resulting executables.
func (s Service) buildDir(ctx context.Context, logger zerolog.Logger, invocation types.BuildInvocation, name string, dir string, options []string, targets []string) ([]types.ImageArtifact, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create build directory " + dir).
			WithCause(err)
	}
	logger.Info().Str("variant", name).Str("dir", dir).Msg("configuring")
	configureArgs := append([]string{"-GNinja"}, options...)
	configureArgs = append(configureArgs, invocation.RepoDir)
	if err := s.Runner.Run(ctx, types.ToolCommand{
		Executable: s.Config.Tools.Cmake,
		Args:       configureArgs,
		Dir:        dir,
		LogPath:    invocation.LogPath,
	}); err != nil {
		return nil, err
	}

	logger.Info().Str("variant", name).Strs("targets", targets).Msg("building")
	if err := s.Runner.Run(ctx, types.ToolCommand{
		Executable: s.Config.Tools.Ninja,
		Args:       append([]string(nil), targets...),
		Dir:        dir,
		LogPath:    invocation.LogPath,
	}); err != nil {
		return nil, err
	}

	images, err := s.Images.ConvertTree(ctx, dir, invocation.LogPath)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("variant", name).Int("images", len(images)).Msg("converted images")
	return images, nil
}
