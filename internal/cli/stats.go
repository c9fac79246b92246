package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/merridan/filevis/internal/config"
	"github.com/merridan/filevis/internal/digraph"
	"github.com/merridan/filevis/internal/report"
	"github.com/merridan/filevis/internal/source"

	"github.com/spf13/cobra"
)

func Stats(configFile *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Print digraph statistics of a file",
		Long:  "Print digraph count, distinct values, entropy and the most frequent byte pairs of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, done, err := Prepare(cmd, *configFile)
			if err != nil {
				return err
			}
			defer done()
			return writeStats(cmd.OutOrStdout(), cfg, args[0], asJSON)
		},
	}
	cmd.Flags().IntP("stats.top", "n", 16, "number of most frequent digraphs to list")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "print JSON instead of text")
	return cmd
}

func summarize(cfg config.Config, path string) report.Summary {
	data := source.Read(path, cfg.Render.Decompress)
	h := digraph.Build(digraph.ExtractWith(data, cfg.Pairing()))
	return report.Summarize(path, len(data), cfg.Pairing(), h, cfg.Stats.Top)
}

func writeStats(w io.Writer, cfg config.Config, path string, asJSON bool) error {
	s := summarize(cfg, path)
	if !asJSON {
		return report.WriteText(w, s)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("error encoding stats: %w", err)
	}
	return nil
}
