package ports

import (
	"context"

	"efr32-build/internal/types"
)

// GeneratorPort materializes a generated project on disk, including the
// job's rename and remove post-processing.
type GeneratorPort interface {
	Generate(ctx context.Context, project types.GeneratedProject, logPath string) error
}
