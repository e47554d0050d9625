package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"efr32-build/internal/app"
)

func newPlatformCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "platform <board>",
		Short: "Print the EFR32 platform of a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService("")
			result, err := service.Platform(cmd.Context(), app.PlatformRequest{
				Board: strings.ToLower(strings.TrimSpace(args[0])),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Board.Platform)
			return nil
		},
	}
}
