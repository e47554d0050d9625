package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"efr32-build/internal/app"
)

func newAppService(slcInstallDir string) app.Service {
	return app.NewService(app.Config{
		RepoDir:       viper.GetString("repo_dir"),
		SDKDir:        viper.GetString("sdk_dir"),
		CatalogPath:   viper.GetString("catalog"),
		SlcInstallDir: slcInstallDir,
		Tools: app.ToolPaths{
			Slc:          viper.GetString("tools.slc"),
			Cmake:        viper.GetString("tools.cmake"),
			Ninja:        viper.GetString("tools.ninja"),
			Objcopy:      viper.GetString("tools.objcopy"),
			SlcInstaller: viper.GetString("tools.slc_installer"),
		},
	})
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
