package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"efr32-build/internal/ports"
	"efr32-build/internal/types"
)

// exitCodeNotFound is reported when the tool executable cannot be started.
const exitCodeNotFound = 127

// ExecToolRunner runs tools as subprocesses. Output goes to Echo and, when
// the command names a log file, is appended to it as well.
type ExecToolRunner struct {
	Echo io.Writer
}

func NewExecToolRunner(echo io.Writer) ExecToolRunner {
	return ExecToolRunner{Echo: echo}
}

func (r ExecToolRunner) Run(ctx context.Context, command types.ToolCommand) error {
	if strings.TrimSpace(command.Executable) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("tool executable is empty")
	}

	var writers []io.Writer
	if r.Echo != nil {
		writers = append(writers, r.Echo)
	}
	if command.LogPath != "" {
		logFile, err := openLog(command.LogPath)
		if err != nil {
			return err
		}
		defer logFile.Close()
		if _, err := fmt.Fprintf(logFile, "$ %s\n", command.String()); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write build log").
				WithCause(err)
		}
		writers = append(writers, logFile)
	}
	output := io.Discard
	if len(writers) > 0 {
		output = io.MultiWriter(writers...)
	}

	// nolint:gosec
	cmd := exec.CommandContext(ctx, command.Executable, command.Args...)
	cmd.Dir = command.Dir
	cmd.Stdout = output
	cmd.Stderr = output
	log.Debug().Str("dir", command.Dir).Msg(cmd.String())

	if err := cmd.Run(); err != nil {
		return toolFailure(command, err)
	}
	return nil
}

func toolFailure(command types.ToolCommand, err error) error {
	failure := &types.ToolFailure{
		Tool: filepath.Base(command.Executable),
		Args: command.Args,
		Err:  err,
	}
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		failure.ExitCode = exitErr.ExitCode()
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, os.ErrNotExist):
		failure.ExitCode = exitCodeNotFound
	default:
		failure.ExitCode = 1
	}
	return failure
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create log directory").
			WithCause(err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open build log").
			WithCause(err)
	}
	return file, nil
}

var _ ports.ToolRunnerPort = ExecToolRunner{}
