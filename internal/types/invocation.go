package types

import "time"

// GeneratedProject is a generation job bound to a board and an output
// directory. Template paths are absolute.
type GeneratedProject struct {
	Config      GenerationJobConfig
	Board       Board
	Project     string
	Templates   string
	Destination string
}

func (p GeneratedProject) Name() string {
	return p.Config.Name
}

// JobPlan holds one GeneratedProject per distinct job name, in the order the
// jobs were first required.
type JobPlan struct {
	Order    []string
	Projects map[string]*GeneratedProject
}

func (p JobPlan) Len() int {
	return len(p.Order)
}

// Each visits the projects in plan order.
func (p JobPlan) Each(fn func(*GeneratedProject) error) error {
	for _, name := range p.Order {
		if err := fn(p.Projects[name]); err != nil {
			return err
		}
	}
	return nil
}

// VariantBuild is one configure/build pass over a build subdirectory.
type VariantBuild struct {
	Name         string
	Dir          string
	Targets      []string
	BuildTargets []string
	Options      []string
}

// ExampleAppBuild is one Silicon Labs example application build.
type ExampleAppBuild struct {
	App          ExampleApp
	ProjectName  string
	Project      GeneratedProject
	Dir          string
	BuildTargets []string
	Options      []string
}

// BuildInvocation captures everything one orchestration run needs. It is
// created at the start of a run and passed explicitly between phases.
type BuildInvocation struct {
	ID             string
	StartedAt      time.Time
	Board          Board
	RepoDir        string
	BuildRoot      string
	LogPath        string
	Targets        []string
	Jobs           JobPlan
	Variants       []VariantBuild
	ExampleApps    []ExampleAppBuild
	SkipGeneration bool
}

// ImageArtifact is a secondary image produced next to an executable.
type ImageArtifact struct {
	Executable string
	Image      string
	Size       int64
}
