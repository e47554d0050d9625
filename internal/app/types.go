package app

import "efr32-build/internal/types"

// Config holds the paths and tool locations the service works with.
type Config struct {
	RepoDir       string
	SDKDir        string
	CatalogPath   string
	SlcInstallDir string
	Tools         ToolPaths
}

// ToolPaths names the external tools. An empty Slc means slc-cli is
// located through the installation port.
type ToolPaths struct {
	Slc          string
	Cmake        string
	Ninja        string
	Objcopy      string
	SlcInstaller string
}

type BuildRequest struct {
	Board           string
	Targets         []string
	BuildRoot       string
	ExtraOptions    []string
	VendorExtension string
	SkipGeneration  bool
	SkipSilabsApps  bool
	ExampleApps     []string
	ForceInstall    bool
}

type BuildResult struct {
	Invocation types.BuildInvocation
	Images     []types.ImageArtifact
	Hints      []string
}

type PlatformRequest struct {
	Board string
}

type PlatformResult struct {
	Board types.Board
}

type ConvertRequest struct {
	Dir string
}

type ConvertResult struct {
	Images []types.ImageArtifact
}
