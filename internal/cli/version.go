package cli

import (
	"fmt"
	"runtime"

	"github.com/merridan/filevis/internal/build"

	"github.com/spf13/cobra"
)

func Version() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "filevis version information",
		Long:  `Print the version information of filevis`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "filevis v%s (Go version: %s)\n", build.Version, runtime.Version())
		},
	}
}
