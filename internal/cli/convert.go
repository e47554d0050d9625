package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"efr32-build/internal/app"
)

func newConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <dir>",
		Short: "Convert every executable under a build directory to a flashable image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService("")
			result, err := service.Convert(cmd.Context(), app.ConvertRequest{Dir: args[0]})
			if err != nil {
				return err
			}
			for _, image := range result.Images {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", image.Size, image.Image)
			}
			return nil
		},
	}
}
