package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/merridan/filevis/internal/logging"
	"github.com/merridan/filevis/internal/report"

	"github.com/spf13/cobra"
)

func Chart(configFile *string) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "chart [file]",
		Short: "Chart the most frequent digraphs of a file",
		Long:  "Write a PNG bar chart of the most frequent byte pairs of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, done, err := Prepare(cmd, *configFile)
			if err != nil {
				return err
			}
			defer done()

			s := summarize(cfg, args[0])
			if len(s.Top) == 0 {
				return fmt.Errorf("%s: no digraphs to chart", args[0])
			}
			if output == "" {
				output = filepath.Base(args[0]) + ".top.png"
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := report.RenderChart(f, "top digraphs: "+filepath.Base(args[0]), s.Top); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			logging.Info("wrote %s", output)
			return nil
		},
	}
	cmd.Flags().IntP("stats.top", "n", 16, "number of most frequent digraphs to chart")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG path (default <file>.top.png)")
	return cmd
}
