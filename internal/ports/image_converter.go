package ports

import (
	"context"

	"efr32-build/internal/types"
)

// ImageConverterPort turns every extensionless executable under a directory
// into a secondary flashable image placed beside it.
type ImageConverterPort interface {
	ConvertTree(ctx context.Context, dir string, logPath string) ([]types.ImageArtifact, error)
}
