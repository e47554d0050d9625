package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"efr32-build/internal/ports"
	"efr32-build/internal/types"
)

// SlcGeneratorAdapter generates projects with slc-cli and then applies the
// job's rename and remove lists to the output directory.
type SlcGeneratorAdapter struct {
	Executable string
	SDKDir     string
	Runner     ports.ToolRunnerPort
}

func NewSlcGeneratorAdapter(executable string, sdkDir string, runner ports.ToolRunnerPort) SlcGeneratorAdapter {
	return SlcGeneratorAdapter{Executable: executable, SDKDir: sdkDir, Runner: runner}
}

func (a SlcGeneratorAdapter) Generate(ctx context.Context, project types.GeneratedProject, logPath string) error {
	if strings.TrimSpace(project.Destination) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("generation job %s has no destination", project.Name()))
	}
	if err := os.MkdirAll(project.Destination, 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create generation directory").
			WithCause(err)
	}
	log.Info().
		Str("job", project.Name()).
		Str("project", project.Project).
		Str("destination", project.Destination).
		Msg("generating")
	if err := a.Runner.Run(ctx, types.ToolCommand{
		Executable: a.Executable,
		Args:       a.generateArgs(project),
		LogPath:    logPath,
	}); err != nil {
		return err
	}
	if err := renameOutputs(project.Destination, project.Config.Rename); err != nil {
		return err
	}
	return removeOutputs(project.Destination, project.Config.Remove)
}

func (a SlcGeneratorAdapter) generateArgs(project types.GeneratedProject) []string {
	args := []string{"generate"}
	if a.SDKDir != "" {
		args = append(args, "-s", a.SDKDir)
	}
	args = append(args,
		"-p", project.Project,
		"-d", project.Destination,
		"--with", project.Board.ID,
		"-o", "makefile",
	)
	if project.Templates != "" {
		args = append(args, "--export-templates", project.Templates)
	}
	return args
}

// renameOutputs applies renames in sorted source order.
func renameOutputs(dir string, renames map[string]string) error {
	sources := make([]string, 0, len(renames))
	for source := range renames {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	for _, source := range sources {
		from, err := outputPath(dir, source)
		if err != nil {
			return err
		}
		to, err := outputPath(dir, renames[source])
		if err != nil {
			return err
		}
		if err := os.Rename(from, to); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to rename generated file %s", source)).
				WithCause(err)
		}
	}
	return nil
}

func removeOutputs(dir string, paths []string) error {
	for _, entry := range paths {
		target, err := outputPath(dir, entry)
		if err != nil {
			return err
		}
		if err := os.RemoveAll(target); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to remove generated path %s", entry)).
				WithCause(err)
		}
	}
	return nil
}

// outputPath joins a catalog-relative path onto dir, refusing paths that
// leave it.
func outputPath(dir string, rel string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(strings.TrimSuffix(rel, "/")))
	if cleaned == "." || filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("generated path %q is outside the output directory", rel))
	}
	return filepath.Join(dir, cleaned), nil
}

var _ ports.GeneratorPort = SlcGeneratorAdapter{}
