package types

import (
	"fmt"
	"strings"
)

// ToolCommand is a single external tool invocation. When LogPath is set the
// combined output is appended to that file.
type ToolCommand struct {
	Executable string
	Args       []string
	Dir        string
	LogPath    string
}

func (c ToolCommand) String() string {
	return strings.TrimSpace(c.Executable + " " + strings.Join(c.Args, " "))
}

// ToolFailure reports an external tool that exited with a non-zero status.
type ToolFailure struct {
	Tool     string
	Args     []string
	ExitCode int
	Err      error
}

func (e *ToolFailure) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ToolFailure) Unwrap() error {
	return e.Err
}
