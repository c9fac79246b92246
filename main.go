package main

import (
	"fmt"
	"os"

	"github.com/merridan/filevis/internal/cli"
	"github.com/merridan/filevis/internal/gui"
	"github.com/merridan/filevis/internal/logging"
	"github.com/merridan/filevis/internal/source"
	"github.com/merridan/filevis/internal/view"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
)

func main() {
	root := cli.Root()
	root.AddCommand(viewCommand(root))
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// viewCommand opens the interactive viewer. It lives here rather than in
// internal/cli so headless builds and tests do not link the GUI driver.
func viewCommand(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Open the interactive heatmap viewer",
		Long: `Open a window showing the digraph heatmap of a file. Drop a file on the window or
press Ctrl+O to load one. Up/Down change brightness, Right/Left change contrast,
Space resets both.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := root.PersistentFlags().GetString("config")
			cfg, done, err := cli.Prepare(cmd, configFile)
			if err != nil {
				return err
			}
			defer done()

			read := func(path string) []byte { return source.Read(path, cfg.Render.Decompress) }
			a := app.NewWithID("io.github.merridan.filevis")
			v := gui.New(a, view.New(cfg.Pairing()), read, cfg.View.Scale)
			if len(args) == 1 {
				v.Open(args[0])
			}
			logging.Debug("viewer started")
			v.Window().ShowAndRun()
			return nil
		},
	}
	cmd.Flags().IntP("view.scale", "s", 3, "window zoom factor for the 256x256 image")
	return cmd
}
