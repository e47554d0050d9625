package ports

import (
	"context"

	"efr32-build/internal/types"
)

// ToolRunnerPort runs an external tool to completion. A non-zero exit is
// reported as *types.ToolFailure.
type ToolRunnerPort interface {
	Run(ctx context.Context, command types.ToolCommand) error
}
