package ports

import "context"

// InstallationPort locates, and installs when needed, the project
// generation tool.
type InstallationPort interface {
	Ensure(ctx context.Context, force bool) (string, error)
}
