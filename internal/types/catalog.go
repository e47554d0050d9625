package types

// GenerationJobConfig describes one platform-support project to generate.
// Paths are relative to the repository root.
type GenerationJobConfig struct {
	Name            string            `yaml:"name"`
	Project         string            `yaml:"project"`
	ExportTemplates string            `yaml:"export_templates"`
	Rename          map[string]string `yaml:"rename,omitempty"`
	Remove          []string          `yaml:"remove,omitempty"`
}

// TargetSpec maps a requested build target to the build-tool target it
// produces, the build variant it is configured in, and the generation jobs it
// depends on.
type TargetSpec struct {
	Name    string   `yaml:"name"`
	Ninja   string   `yaml:"ninja,omitempty"`
	Variant string   `yaml:"variant"`
	Jobs    []string `yaml:"jobs"`
}

// BuildTarget returns the build-tool target name, defaulting to the target name.
func (t TargetSpec) BuildTarget() string {
	if t.Ninja != "" {
		return t.Ninja
	}
	return t.Name
}

type PlatformSpec struct {
	Name    string   `yaml:"name"`
	Targets []string `yaml:"targets"`
}

// OptionRule enables Flag when any target of a variant matches the glob in Match.
type OptionRule struct {
	Match string `yaml:"match"`
	Flag  string `yaml:"flag"`
}

type OptionSet struct {
	Baseline []string     `yaml:"baseline"`
	Rules    []OptionRule `yaml:"rules"`
	// ExampleBaseline replaces Baseline for example application builds.
	ExampleBaseline []string `yaml:"example_baseline,omitempty"`
}

// ExampleApp is a Silicon Labs example application built on top of a
// generated platform library.
type ExampleApp struct {
	Name            string `yaml:"name"`
	Project         string `yaml:"project"`
	ExportTemplates string `yaml:"export_templates"`
	Option          string `yaml:"option"`
}

// Catalog is the static mapping data the orchestrator works from. It is
// loaded once at start-up and never mutated.
type Catalog struct {
	Jobs        []GenerationJobConfig `yaml:"jobs"`
	Targets     []TargetSpec          `yaml:"targets"`
	Platforms   []PlatformSpec        `yaml:"platforms"`
	Options     OptionSet             `yaml:"options"`
	ExampleApps []ExampleApp          `yaml:"example_apps"`
	// Platforms that are too small to carry the example applications.
	ExampleAppsExcluded []string `yaml:"example_apps_excluded,omitempty"`

	jobs      map[string]int
	targets   map[string]int
	platforms map[string]int
	apps      map[string]int
}

// Index builds the name lookups used by Job, Target, Platform and ExampleApp.
// The first entry wins when a name repeats.
func (c *Catalog) Index() {
	c.jobs = map[string]int{}
	for i, job := range c.Jobs {
		if _, ok := c.jobs[job.Name]; !ok {
			c.jobs[job.Name] = i
		}
	}
	c.targets = map[string]int{}
	for i, target := range c.Targets {
		if _, ok := c.targets[target.Name]; !ok {
			c.targets[target.Name] = i
		}
	}
	c.platforms = map[string]int{}
	for i, platform := range c.Platforms {
		if _, ok := c.platforms[platform.Name]; !ok {
			c.platforms[platform.Name] = i
		}
	}
	c.apps = map[string]int{}
	for i, app := range c.ExampleApps {
		if _, ok := c.apps[app.Name]; !ok {
			c.apps[app.Name] = i
		}
	}
}

func (c Catalog) Job(name string) (GenerationJobConfig, bool) {
	idx, ok := lookup(c.jobs, name, len(c.Jobs), func(i int) string { return c.Jobs[i].Name })
	if !ok {
		return GenerationJobConfig{}, false
	}
	return c.Jobs[idx], true
}

func (c Catalog) Target(name string) (TargetSpec, bool) {
	idx, ok := lookup(c.targets, name, len(c.Targets), func(i int) string { return c.Targets[i].Name })
	if !ok {
		return TargetSpec{}, false
	}
	return c.Targets[idx], true
}

func (c Catalog) Platform(name string) (PlatformSpec, bool) {
	idx, ok := lookup(c.platforms, name, len(c.Platforms), func(i int) string { return c.Platforms[i].Name })
	if !ok {
		return PlatformSpec{}, false
	}
	return c.Platforms[idx], true
}

func (c Catalog) ExampleApp(name string) (ExampleApp, bool) {
	idx, ok := lookup(c.apps, name, len(c.ExampleApps), func(i int) string { return c.ExampleApps[i].Name })
	if !ok {
		return ExampleApp{}, false
	}
	return c.ExampleApps[idx], true
}

// lookup falls back to a linear scan for catalogs that were never indexed.
func lookup(index map[string]int, name string, n int, nameAt func(int) string) (int, bool) {
	if index != nil {
		idx, ok := index[name]
		return idx, ok
	}
	for i := 0; i < n; i++ {
		if nameAt(i) == name {
			return i, true
		}
	}
	return 0, false
}
