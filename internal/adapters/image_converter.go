package adapters

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"efr32-build/internal/core"
	"efr32-build/internal/ports"
	"efr32-build/internal/types"
)

// ObjcopyImageAdapter writes an S-record image beside every executable of a
// build tree. Originals are never modified.
type ObjcopyImageAdapter struct {
	Executable string
	Runner     ports.ToolRunnerPort
	GOOS       string
}

func NewObjcopyImageAdapter(executable string, runner ports.ToolRunnerPort) ObjcopyImageAdapter {
	return ObjcopyImageAdapter{Executable: executable, Runner: runner, GOOS: runtime.GOOS}
}

func (a ObjcopyImageAdapter) ConvertTree(ctx context.Context, dir string, logPath string) ([]types.ImageArtifact, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	executables, err := a.findExecutables(dir)
	if err != nil {
		return nil, err
	}
	artifacts := make([]types.ImageArtifact, 0, len(executables))
	for _, executable := range executables {
		image := core.SecondaryImagePath(executable)
		if err := a.Runner.Run(ctx, types.ToolCommand{
			Executable: a.Executable,
			Args:       []string{"-O", "srec", executable, image},
			LogPath:    logPath,
		}); err != nil {
			return nil, err
		}
		info, err := os.Stat(image)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("converted image is missing").
				WithCause(err)
		}
		log.Debug().Str("image", image).Int64("size", info.Size()).Msg("converted")
		artifacts = append(artifacts, types.ImageArtifact{
			Executable: executable,
			Image:      image,
			Size:       info.Size(),
		})
	}
	return artifacts, nil
}

func (a ObjcopyImageAdapter) findExecutables(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "CMakeFiles" {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if core.IsConvertible(d.Name(), info.Mode(), a.GOOS) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan build output").
			WithCause(err)
	}
	sort.Strings(paths)
	return paths, nil
}

var _ ports.ImageConverterPort = ObjcopyImageAdapter{}
