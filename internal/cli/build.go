package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"efr32-build/internal/app"
)

type buildOptions struct {
	Targets              []string
	BuildDir             string
	SkipSilabsApps       bool
	ExampleApps          []string
	SkipGeneration       bool
	ForceSlcInstallation bool
	SlcInstallDir        string
	VendorExtension      string
}

// addBuildFlags registers the flags shared by the build and targets
// commands.
func addBuildFlags(cmd *cobra.Command, opts *buildOptions) {
	cmd.Flags().StringSliceVar(&opts.Targets, "target", nil, "Build target(s) (default: the platform's targets)")
	cmd.Flags().StringVar(&opts.BuildDir, "build-dir", "", "Build root (default: <repo>/build/<board>)")
	cmd.Flags().BoolVar(&opts.SkipSilabsApps, "skip-silabs-apps", false, "Skip generation and build of the Silicon Labs example apps")
	cmd.Flags().StringSliceVar(&opts.ExampleApps, "app", nil, "Silicon Labs example app(s) to build (default: all)")
	_ = viper.BindPFlag("targets", cmd.Flags().Lookup("target"))
	_ = viper.BindPFlag("build_dir", cmd.Flags().Lookup("build-dir"))
	_ = viper.BindPFlag("skip_silabs_apps", cmd.Flags().Lookup("skip-silabs-apps"))
	_ = viper.BindPFlag("example_apps", cmd.Flags().Lookup("app"))
}

func runBuild(cmd *cobra.Command, opts buildOptions, args []string) error {
	board, extra, err := boardArgs(cmd, args)
	if err != nil {
		return err
	}
	service := newAppService(resolveString(cmd, opts.SlcInstallDir, "slc_install_dir", "slc-install-dir"))
	result, err := service.Build(cmd.Context(), buildRequest(cmd, opts, board, extra))
	if err != nil {
		return err
	}

	printBuildResult(cmd.OutOrStdout(), result)
	return nil
}

func printBuildResult(out io.Writer, result app.BuildResult) {
	for _, image := range result.Images {
		fmt.Fprintf(out, "image: %d\t%s\n", image.Size, image.Image)
	}
	for _, hint := range result.Hints {
		fmt.Fprintf(out, "hint: %s\n", hint)
	}
	fmt.Fprintf(out, "build log: %s\n", result.Invocation.LogPath)
}

func buildRequest(cmd *cobra.Command, opts buildOptions, board string, extra []string) app.BuildRequest {
	return app.BuildRequest{
		Board:           board,
		Targets:         resolveStrings(cmd, opts.Targets, "targets", "target"),
		BuildRoot:       resolveString(cmd, opts.BuildDir, "build_dir", "build-dir"),
		ExtraOptions:    extra,
		VendorExtension: opts.VendorExtension,
		SkipGeneration:  resolveBool(cmd, opts.SkipGeneration, "skip_generation", "skip-generation"),
		SkipSilabsApps:  resolveBool(cmd, opts.SkipSilabsApps, "skip_silabs_apps", "skip-silabs-apps"),
		ExampleApps:     resolveStrings(cmd, opts.ExampleApps, "example_apps", "app"),
		ForceInstall:    opts.ForceSlcInstallation,
	}
}

// boardArgs splits the positional arguments into the board identifier and
// the configure options given after "--".
func boardArgs(cmd *cobra.Command, args []string) (string, []string, error) {
	dash := -1
	if cmd != nil {
		dash = cmd.ArgsLenAtDash()
	}
	positional := args
	var extra []string
	if dash >= 0 {
		positional = args[:dash]
		extra = append(extra, args[dash:]...)
	}
	if len(positional) != 1 {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("expected exactly one board, got %d arguments before --", len(positional)))
	}
	board := strings.ToLower(strings.TrimSpace(positional[0]))
	if board == "" {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("board is required")
	}
	return board, extra, nil
}
