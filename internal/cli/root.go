package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"efr32-build/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "EFR32_BUILD"

const exitCodeConfiguration = 3

// Environment variables the original build scripts read, bound to config
// keys without the prefix.
var legacyEnv = map[string]string{
	"build_dir":       "OT_CMAKE_BUILD_DIR",
	"targets":         "OT_CMAKE_NINJA_TARGET",
	"slc_install_dir": "SLC_INSTALL_DIR",
}

type RootConfig struct {
	ConfigFile string
	LogLevel   string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		code := exitCodeForError(err)
		log.Error().Int("exit_code", code).Msg(errorMessage(err))
		os.Exit(code)
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	opts := buildOptions{}
	cmd := &cobra.Command{
		Use:   "efr32-build <board> [-- <cmake options>...]",
		Short: "Generate and build OpenThread EFR32 firmware for a board",
		Long: "Resolves the board's platform, generates the platform projects the requested\n" +
			"targets need, configures and builds each variant and converts the resulting\n" +
			"executables to flashable images. Arguments after -- are passed to cmake.",
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts, args)
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().String("repo-dir", "", "OpenThread EFR32 repository root (default: current directory)")
	cmd.PersistentFlags().String("sdk-dir", "", "Gecko SDK directory (default: <repo>/third_party/silabs/gecko_sdk)")
	cmd.PersistentFlags().String("catalog", "", "Catalog file replacing the built-in jobs and targets")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("repo_dir", cmd.PersistentFlags().Lookup("repo-dir"))
	_ = viper.BindPFlag("sdk_dir", cmd.PersistentFlags().Lookup("sdk-dir"))
	_ = viper.BindPFlag("catalog", cmd.PersistentFlags().Lookup("catalog"))

	addBuildFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.SkipGeneration, "skip-generation", false, "Skip slc-cli generation and reuse the generated projects")
	cmd.Flags().BoolVar(&opts.ForceSlcInstallation, "force-slc-installation", false, "Reinstall slc-cli into the slc install directory")
	cmd.Flags().StringVar(&opts.SlcInstallDir, "slc-install-dir", "", "slc-cli install directory")
	cmd.Flags().StringVar(&opts.VendorExtension, "vendor-extension", "", "Vendor extension directory")
	_ = viper.BindPFlag("skip_generation", cmd.Flags().Lookup("skip-generation"))
	_ = viper.BindPFlag("slc_install_dir", cmd.Flags().Lookup("slc-install-dir"))

	cmd.AddCommand(newPlatformCommand())
	cmd.AddCommand(newTargetsCommand())
	cmd.AddCommand(newConvertCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for key, env := range legacyEnv {
		_ = viper.BindEnv(key, envPrefix+"_"+strings.ToUpper(key), env)
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("efr32-build")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/efr32-build")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// exitCodeForError passes a failing tool's status through and maps
// configuration and parsing errors to a fixed code.
func exitCodeForError(err error) int {
	var failure *types.ToolFailure
	if errors.As(err, &failure) && failure.ExitCode > 0 {
		return failure.ExitCode
	}
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeNotFound, errbuilder.CodeFailedPrecondition:
		return exitCodeConfiguration
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
