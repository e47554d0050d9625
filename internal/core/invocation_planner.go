package core

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"efr32-build/internal/policies"
	"efr32-build/internal/types"
)

// supportedProductLine is the only device product line the OpenThread
// platform builds for.
const supportedProductLine = "mg"

// fallbackVariant collects targets the catalog does not describe.
const fallbackVariant = "openthread"

const logTimestampLayout = "2006-01-02T150405"

type InvocationPlanner struct {
	Catalog  types.Catalog
	Options  policies.OptionPolicy
	Resolver DependencyResolver
}

// ExampleAppRequest pairs an example application with the project name read
// from its project template.
type ExampleAppRequest struct {
	App         types.ExampleApp
	ProjectName string
}

type PlanRequest struct {
	ID             string
	StartedAt      time.Time
	Board          types.Board
	RepoDir        string
	BuildRoot      string
	Targets        []string
	ExtraOptions   []string
	ExampleApps    []ExampleAppRequest
	SkipGeneration bool
}

func NewInvocationPlanner(catalog types.Catalog) (InvocationPlanner, error) {
	options, err := policies.NewOptionPolicy(catalog.Options.Rules)
	if err != nil {
		return InvocationPlanner{}, err
	}
	return InvocationPlanner{
		Catalog:  catalog,
		Options:  options,
		Resolver: NewDependencyResolver(catalog),
	}, nil
}

// CheckBoard rejects boards whose platform the catalog does not support.
func (p InvocationPlanner) CheckBoard(board types.Board) error {
	if board.Device.ProductLine != supportedProductLine {
		return types.ConfigurationError(fmt.Sprintf("%s (%s) is not supported", board.ID, board.Platform))
	}
	if _, ok := p.Catalog.Platform(board.Platform); !ok {
		return types.ConfigurationError(fmt.Sprintf("%s (%s) is not supported", board.ID, board.Platform))
	}
	return nil
}

// DefaultTargets returns the targets built for a platform when the caller
// does not name any.
func (p InvocationPlanner) DefaultTargets(platform string) []string {
	spec, ok := p.Catalog.Platform(platform)
	if !ok {
		return nil
	}
	return append([]string(nil), spec.Targets...)
}

// ExampleAppsSupported reports whether a platform can carry the example
// applications.
func (p InvocationPlanner) ExampleAppsSupported(platform string) bool {
	return !slices.Contains(p.Catalog.ExampleAppsExcluded, platform)
}

// Plan builds the invocation for a request. It performs no I/O.
func (p InvocationPlanner) Plan(req PlanRequest) types.BuildInvocation {
	targets := dedupe(req.Targets)
	invocation := types.BuildInvocation{
		ID:             req.ID,
		StartedAt:      req.StartedAt,
		Board:          req.Board,
		RepoDir:        req.RepoDir,
		BuildRoot:      req.BuildRoot,
		LogPath:        LogPath(req.BuildRoot, req.StartedAt),
		Targets:        targets,
		Jobs:           p.Resolver.Resolve(targets, req.Board, req.RepoDir, req.BuildRoot),
		SkipGeneration: req.SkipGeneration,
	}
	base := p.BaseOptions(req.Board)
	for _, variant := range p.groupVariants(targets) {
		variant.Dir = filepath.Join(req.BuildRoot, "openthread", variant.Name)
		variant.Options = concat(base, p.Options.Options(variant.Targets), req.ExtraOptions)
		invocation.Variants = append(invocation.Variants, variant)
	}
	for _, app := range req.ExampleApps {
		invocation.ExampleApps = append(invocation.ExampleApps, p.planExampleApp(req, app))
	}
	log.Debug().
		Str("invocation", req.ID).
		Strs("jobs", invocation.Jobs.Order).
		Int("variants", len(invocation.Variants)).
		Int("example_apps", len(invocation.ExampleApps)).
		Msg("planned build")
	return invocation
}

// BaseOptions are the configure options shared by every variant of a board.
func (p InvocationPlanner) BaseOptions(board types.Board) []string {
	return concat(p.Catalog.Options.Baseline, platformOptions(board))
}

func (p InvocationPlanner) planExampleApp(req PlanRequest, app ExampleAppRequest) types.ExampleAppBuild {
	destination := JobDestination(req.BuildRoot, app.ProjectName)
	project := BindProject(types.GenerationJobConfig{
		Name:            app.ProjectName,
		Project:         app.App.Project,
		ExportTemplates: app.App.ExportTemplates,
	}, req.Board, req.RepoDir, destination)

	baseline := p.Catalog.Options.ExampleBaseline
	if len(baseline) == 0 {
		baseline = p.Catalog.Options.Baseline
	}
	options := concat(
		[]string{
			"-DOT_PLATFORM_LIB=" + app.ProjectName,
			"-DOT_PLATFORM_LIB_DIR=" + destination,
			"-DOT_EXTERNAL_MBEDTLS=" + app.ProjectName + "-mbedtls",
			policies.Define("OT_APP_CLI", false),
			policies.Define("OT_APP_NCP", false),
			policies.Define("OT_APP_RCP", false),
		},
		baseline,
		platformOptions(req.Board),
		[]string{policies.Define(app.App.Option, true)},
		req.ExtraOptions,
	)
	return types.ExampleAppBuild{
		App:          app.App,
		ProjectName:  app.ProjectName,
		Project:      project,
		Dir:          filepath.Join(req.BuildRoot, "examples", app.App.Name),
		BuildTargets: []string{app.App.Name},
		Options:      options,
	}
}

// groupVariants splits targets into build variants in first-seen order.
func (p InvocationPlanner) groupVariants(targets []string) []types.VariantBuild {
	var variants []types.VariantBuild
	index := map[string]int{}
	for _, target := range targets {
		name := fallbackVariant
		buildTarget := target
		if spec, ok := p.Catalog.Target(target); ok {
			name = spec.Variant
			buildTarget = spec.BuildTarget()
		}
		idx, ok := index[name]
		if !ok {
			idx = len(variants)
			index[name] = idx
			variants = append(variants, types.VariantBuild{Name: name})
		}
		variant := &variants[idx]
		variant.Targets = append(variant.Targets, target)
		if !slices.Contains(variant.BuildTargets, buildTarget) {
			variant.BuildTargets = append(variant.BuildTargets, buildTarget)
		}
	}
	return variants
}

// LogPath is the build log of an invocation started at startedAt.
func LogPath(buildRoot string, startedAt time.Time) string {
	return filepath.Join(buildRoot, fmt.Sprintf("build_%s.log", startedAt.Format(logTimestampLayout)))
}

func platformOptions(board types.Board) []string {
	return []string{
		fmt.Sprintf("-DCMAKE_TOOLCHAIN_FILE=src/%s/arm-none-eabi.cmake", board.Platform),
		"-DEFR32_PLATFORM=" + board.Platform,
		"-DBOARD=" + board.ID,
	}
}

func concat(parts ...[]string) []string {
	var out []string
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}

func dedupe(values []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
