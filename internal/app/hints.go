package app

import (
	"fmt"
	"os"

	"efr32-build/internal/types"
)

// missingProjectHints points at generated projects that a skipped
// generation step expects to already exist.
func missingProjectHints(invocation types.BuildInvocation) []string {
	var hints []string
	_ = invocation.Jobs.Each(func(project *types.GeneratedProject) error {
		if _, err := os.Stat(project.Destination); err != nil {
			hints = append(hints, fmt.Sprintf("generation skipped but %s is missing; rerun without --skip-generation", project.Destination))
		}
		return nil
	})
	for _, app := range invocation.ExampleApps {
		if _, err := os.Stat(app.Project.Destination); err != nil {
			hints = append(hints, fmt.Sprintf("generation skipped but %s is missing; rerun without --skip-generation", app.Project.Destination))
		}
	}
	return hints
}
