package app

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"efr32-build/internal/adapters"
	"efr32-build/internal/ports"
	"efr32-build/internal/types"
)

type fakeComponents map[string]string

func (f fakeComponents) MatchRecords(prefix string) ([]string, error) {
	var names []string
	for name := range f {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

func (f fakeComponents) OpenRecord(name string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f[name])), nil
}

type fakeInstallation struct {
	calls  int
	forced bool
}

func (f *fakeInstallation) Ensure(_ context.Context, force bool) (string, error) {
	f.calls++
	f.forced = force
	return "/opt/slc_cli/slc", nil
}

type fakeGenerator struct {
	mu        sync.Mutex
	generated []string
	err       error
}

func (f *fakeGenerator) Generate(_ context.Context, project types.GeneratedProject, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generated = append(f.generated, project.Name())
	return f.err
}

type fakeTemplates map[string]string

func (f fakeTemplates) ReadProjectName(path string) (string, error) {
	for suffix, name := range f {
		if strings.HasSuffix(path, suffix) {
			return name, nil
		}
	}
	return "", types.ParsingError("no project_name in "+path, nil)
}

type fakeRunner struct {
	commands []types.ToolCommand
	failOn   string
}

func (f *fakeRunner) Run(_ context.Context, command types.ToolCommand) error {
	f.commands = append(f.commands, command)
	if f.failOn != "" && command.Executable == f.failOn {
		return &types.ToolFailure{Tool: command.Executable, Args: command.Args, ExitCode: 2}
	}
	return nil
}

func (f *fakeRunner) executables() []string {
	out := make([]string, 0, len(f.commands))
	for _, command := range f.commands {
		out = append(out, command.Executable)
	}
	return out
}

type fakeImages struct {
	dirs []string
}

func (f *fakeImages) ConvertTree(_ context.Context, dir string, _ string) ([]types.ImageArtifact, error) {
	f.dirs = append(f.dirs, dir)
	return []types.ImageArtifact{{Executable: dir + "/bin/app", Image: dir + "/bin/app.s37"}}, nil
}

type testService struct {
	Service
	installation *fakeInstallation
	generator    *fakeGenerator
	runner       *fakeRunner
	images       *fakeImages
}

func boardRecord(device string) string {
	return "id: brd\ntag:\n  - board:device:" + device + "\n"
}

func newTestService(t *testing.T) testService {
	t.Helper()
	ts := testService{
		installation: &fakeInstallation{},
		generator:    &fakeGenerator{},
		runner:       &fakeRunner{},
		images:       &fakeImages{},
	}
	ts.Service = Service{
		Config: Config{
			RepoDir: t.TempDir(),
			Tools:   ToolPaths{Cmake: "cmake", Ninja: "ninja", Objcopy: "objcopy"},
		},
		Catalog: adapters.NewCatalogFileAdapter(),
		Components: fakeComponents{
			"brd4166a.slcc":     boardRecord("efr32mg12p332f1024gl125"),
			"brd4161a_a01.slcc": boardRecord("efr32mg12p432f1024gl125"),
			"brd4150b.slcc":     boardRecord("efr32mg1p232f256gm48"),
			"brd4180a.slcc":     boardRecord("efr32mg21a020f1024im32"),
			"brd4001a.slcc":     boardRecord("efr32fg12p433f1024gl125"),
		},
		Installation: ts.installation,
		Generator: func(string) ports.GeneratorPort {
			return ts.generator
		},
		Templates: fakeTemplates{
			"openthread-efr32-soc-with-buttons.slcp":                   "sleepy-demo-ftd",
			"openthread-efr32-soc-with-buttons-power-manager.slcp":     "sleepy-demo-mtd",
			"openthread-efr32-soc-with-buttons-power-manager-csl.slcp": "sleepy-demo-ssed",
		},
		Runner: ts.runner,
		Images: ts.images,
		Clock: func() time.Time {
			return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
		},
		NewID: func() string { return "test-invocation" },
	}
	return ts
}
