package cli

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/merridan/filevis/internal/config"
	"github.com/merridan/filevis/internal/export"
	"github.com/merridan/filevis/internal/logging"
	"github.com/merridan/filevis/internal/source"
	"github.com/merridan/filevis/internal/tone"
	"github.com/merridan/filevis/internal/view"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func Render(configFile *string) *cobra.Command {
	var merge string
	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render digraph heatmaps to PNG",
		Long:  "Render a digraph heatmap PNG for every file given; directories are walked recursively and filtered by --render.include",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, done, err := Prepare(cmd, *configFile)
			if err != nil {
				return err
			}
			defer done()
			return runRender(cfg, args, merge)
		},
	}
	cmd.Flags().StringP("render.out_dir", "o", "", "output directory for generated PNG files (next to input if empty)")
	cmd.Flags().IntP("render.scale", "s", 1, "integer upscale factor")
	cmd.Flags().BoolP("render.caption", "", false, "draw brightness and contrast under the image")
	cmd.Flags().Float64P("render.brightness", "b", 0, "brightness, 2^b multiplier (>= 0)")
	cmd.Flags().Float64P("render.contrast", "k", 1, "contrast exponent applied to frequencies (>= 0)")
	cmd.Flags().IntP("render.workers", "w", 4, "number of files rendered in parallel")
	cmd.Flags().StringSliceP("render.include", "i", nil, "glob patterns for files found in directories, e.g. '*.bin'")
	cmd.Flags().StringVarP(&merge, "merge", "m", "", "also write all images stacked into one sheet PNG")
	return cmd
}

func runRender(cfg config.Config, paths []string, merge string) error {
	matcher, err := source.NewMatcher(cfg.Render.Include)
	if err != nil {
		return err
	}
	files, err := source.Find(paths, matcher)
	if err != nil {
		return fmt.Errorf("failed to find input files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files found in %s", strings.Join(paths, ", "))
	}
	logging.Info("found %d file(s) to render", len(files))

	outputs := make([]string, len(files))
	owner := make(map[string]string, len(files))
	for i, in := range files {
		out := OutputPath(in, cfg.Render.OutDir)
		if prev, ok := owner[out]; ok {
			return fmt.Errorf("%s and %s would both be written to %s", prev, in.Path, out)
		}
		owner[out] = in.Path
		outputs[i] = out
	}

	images := make([]image.Image, len(files))
	var g errgroup.Group
	g.SetLimit(cfg.Render.Workers)
	for i, in := range files {
		g.Go(func() error {
			img, err := renderFile(cfg, in.Path, outputs[i])
			if err != nil {
				logging.Error("failed to render %s: %v", in.Path, err)
				return err
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if merge != "" {
		if err := export.SaveImage(export.Sheet(images), merge); err != nil {
			return fmt.Errorf("failed to write %s: %w", merge, err)
		}
		logging.Info("wrote %s", merge)
	}
	return nil
}

// renderFile renders one file with its own view state and writes the PNG to out.
func renderFile(cfg config.Config, path, out string) (image.Image, error) {
	state := view.New(cfg.Pairing())
	state.Load(source.Read(path, cfg.Render.Decompress))
	if !state.Loaded() {
		logging.Warn("%s: fewer than two bytes, writing blank image", path)
	}
	if p := cfg.ToneParams(); p != tone.DefaultParams() {
		state.Tune(p)
	}

	opts := export.Options{Scale: cfg.Render.Scale}
	if cfg.Render.Caption {
		b, c := state.Caption()
		opts.Caption = []string{b, c}
	}
	img := export.Compose(state.Buffer().Gray(), opts)

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return nil, err
	}
	if err := export.SaveImage(img, out); err != nil {
		return nil, err
	}
	logging.Info("wrote %s", out)
	return img, nil
}

// OutputPath is where the heatmap of in is written: next to the input, or
// under outDir mirroring the input's path below its walked directory.
func OutputPath(in source.Input, outDir string) string {
	if outDir == "" {
		return in.Path + source.OutputSuffix
	}
	return filepath.Join(outDir, in.Rel+source.OutputSuffix)
}
