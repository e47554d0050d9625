package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"efr32-build/internal/policies"
	"efr32-build/internal/types"
)

type CatalogValidator struct{}

func NewCatalogValidator() CatalogValidator {
	return CatalogValidator{}
}

// Validate checks that every name the catalog refers to is defined once.
func (v CatalogValidator) Validate(ctx context.Context, catalog types.Catalog) error {
	if len(catalog.Targets) == 0 {
		return catalogError("catalog.targets must not be empty")
	}
	if len(catalog.Platforms) == 0 {
		return catalogError("catalog.platforms must not be empty")
	}

	jobs := map[string]struct{}{}
	for _, job := range catalog.Jobs {
		assert.NotEmpty(ctx, job.Name, "jobs[].name must be set")
		if _, dup := jobs[job.Name]; dup {
			return catalogError(fmt.Sprintf("duplicate job %s", job.Name))
		}
		if strings.TrimSpace(job.Project) == "" || strings.TrimSpace(job.ExportTemplates) == "" {
			return catalogError(fmt.Sprintf("job %s must set project and export_templates", job.Name))
		}
		for from, to := range job.Rename {
			if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
				return catalogError(fmt.Sprintf("job %s has an empty rename entry", job.Name))
			}
		}
		jobs[job.Name] = struct{}{}
	}

	targets := map[string]struct{}{}
	for _, target := range catalog.Targets {
		assert.NotEmpty(ctx, target.Name, "targets[].name must be set")
		assert.NotEmpty(ctx, target.Variant, "targets[].variant must be set")
		if _, dup := targets[target.Name]; dup {
			return catalogError(fmt.Sprintf("duplicate target %s", target.Name))
		}
		for _, job := range target.Jobs {
			if _, ok := jobs[job]; !ok {
				return catalogError(fmt.Sprintf("target %s depends on unknown job %s", target.Name, job))
			}
		}
		targets[target.Name] = struct{}{}
	}

	platforms := map[string]struct{}{}
	for _, platform := range catalog.Platforms {
		assert.NotEmpty(ctx, platform.Name, "platforms[].name must be set")
		if _, dup := platforms[platform.Name]; dup {
			return catalogError(fmt.Sprintf("duplicate platform %s", platform.Name))
		}
		if len(platform.Targets) == 0 {
			return catalogError(fmt.Sprintf("platform %s has no default targets", platform.Name))
		}
		for _, target := range platform.Targets {
			if _, ok := targets[target]; !ok {
				return catalogError(fmt.Sprintf("platform %s defaults to unknown target %s", platform.Name, target))
			}
		}
		platforms[platform.Name] = struct{}{}
	}

	apps := map[string]struct{}{}
	for _, app := range catalog.ExampleApps {
		assert.NotEmpty(ctx, app.Name, "example_apps[].name must be set")
		if _, dup := apps[app.Name]; dup {
			return catalogError(fmt.Sprintf("duplicate example app %s", app.Name))
		}
		if strings.TrimSpace(app.Project) == "" || strings.TrimSpace(app.Option) == "" {
			return catalogError(fmt.Sprintf("example app %s must set project and option", app.Name))
		}
		apps[app.Name] = struct{}{}
	}

	if _, err := policies.NewOptionPolicy(catalog.Options.Rules); err != nil {
		return err
	}
	return nil
}

func catalogError(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}
