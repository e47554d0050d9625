package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"efr32-build/internal/types"
)

func newTargetsCommand() *cobra.Command {
	opts := buildOptions{}
	cmd := &cobra.Command{
		Use:   "targets <board> [-- <cmake options>...]",
		Short: "Show the generation jobs and build variants for a board without running any tool",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, extra, err := boardArgs(cmd, args)
			if err != nil {
				return err
			}
			service := newAppService("")
			invocation, err := service.Plan(cmd.Context(), buildRequest(cmd, opts, board, extra))
			if err != nil {
				return err
			}
			printInvocation(cmd.OutOrStdout(), invocation)
			return nil
		},
	}
	addBuildFlags(cmd, &opts)
	return cmd
}

func printInvocation(out io.Writer, invocation types.BuildInvocation) {
	fmt.Fprintf(out, "board: %s (%s)\n", invocation.Board, invocation.Board.Platform)
	fmt.Fprintf(out, "build root: %s\n", invocation.BuildRoot)
	fmt.Fprintf(out, "targets: %s\n", strings.Join(invocation.Targets, " "))
	fmt.Fprintln(out, "jobs:")
	_ = invocation.Jobs.Each(func(project *types.GeneratedProject) error {
		fmt.Fprintf(out, "- %s -> %s\n", project.Name(), project.Destination)
		return nil
	})
	fmt.Fprintln(out, "variants:")
	for _, variant := range invocation.Variants {
		fmt.Fprintf(out, "- %s (%s) -> %s\n", variant.Name, strings.Join(variant.BuildTargets, " "), variant.Dir)
		fmt.Fprintf(out, "  %s\n", strings.Join(variant.Options, " "))
	}
	if len(invocation.ExampleApps) == 0 {
		return
	}
	fmt.Fprintln(out, "example apps:")
	for _, app := range invocation.ExampleApps {
		fmt.Fprintf(out, "- %s (%s) -> %s\n", app.App.Name, app.ProjectName, app.Dir)
	}
}
