package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"

	"efr32-build/internal/ports"
	"efr32-build/internal/types"
)

const slcExecutableName = "slc"

// SlcInstallationAdapter locates slc-cli in InstallDir and runs Installer
// to (re)install it there when needed.
type SlcInstallationAdapter struct {
	InstallDir string
	Installer  string
	Runner     ports.ToolRunnerPort
}

func NewSlcInstallationAdapter(installDir string, installer string, runner ports.ToolRunnerPort) SlcInstallationAdapter {
	if strings.TrimSpace(installDir) == "" {
		installDir = DefaultSlcInstallDir()
	}
	return SlcInstallationAdapter{InstallDir: installDir, Installer: installer, Runner: runner}
}

// DefaultSlcInstallDir is used when no install directory is configured.
func DefaultSlcInstallDir() string {
	return filepath.Join(xdg.DataHome, "efr32-build", "slc_cli")
}

func (a SlcInstallationAdapter) Executable() string {
	return filepath.Join(a.InstallDir, slcExecutableName)
}

func (a SlcInstallationAdapter) Ensure(ctx context.Context, force bool) (string, error) {
	executable := a.Executable()
	if !force && isExecutableFile(executable) {
		return executable, nil
	}
	if strings.TrimSpace(a.Installer) == "" {
		return "", types.ConfigurationError(fmt.Sprintf("slc-cli not found at %s and no installer is configured", executable))
	}
	if err := os.MkdirAll(a.InstallDir, 0o755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create slc-cli install directory").
			WithCause(err)
	}
	log.Info().Str("dir", a.InstallDir).Bool("forced", force).Msg("installing slc-cli")
	if err := a.Runner.Run(ctx, types.ToolCommand{
		Executable: a.Installer,
		Args:       []string{a.InstallDir},
	}); err != nil {
		return "", err
	}
	if !isExecutableFile(executable) {
		return "", types.ConfigurationError(fmt.Sprintf("slc-cli installation did not produce %s", executable))
	}
	return executable, nil
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}

var _ ports.InstallationPort = SlcInstallationAdapter{}
