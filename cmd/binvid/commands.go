package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/provide-io/binvid/pkg"
	"github.com/provide-io/binvid/pkg/binvid/container"
	"github.com/provide-io/binvid/pkg/binvid/pipeline"
	"github.com/provide-io/binvid/pkg/binvid/settings"
	"github.com/provide-io/binvid/pkg/binvid/source"
	"github.com/provide-io/binvid/pkg/binvid/visual"
	"github.com/provide-io/binvid/pkg/utils/permissions"
)

type embedFlags struct {
	input        string
	output       string
	preset       string
	mode         string
	blockSize    int
	threads      int
	fps          float64
	resolution   string
	text         string
	sampleFormat string
	presets      string
	fileMode     string
}

func newEmbedCmd(a *app) *cobra.Command {
	f := &embedFlags{}
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Embed a file into a container and write a sample frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := f.options(cmd, a)
			if err != nil {
				return err
			}
			res, err := pipeline.Embed(cmd.Context(), opts, a.logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Target)
			fmt.Fprintln(cmd.OutOrStdout(), res.SamplePath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", "", "Input file (default "+pipeline.DefaultInputPath+")")
	flags.StringVarP(&f.output, "output", "o", pipeline.DefaultContainerPath, "Output container path")
	flags.StringVar(&f.preset, "preset", "", "Preset name (optimal, paranoid, max-efficiency, or a user preset)")
	flags.StringVar(&f.mode, "mode", "", "Output mode (binary, color)")
	flags.IntVar(&f.blockSize, "block-size", settings.DefaultBlockSize, "Block side length in pixels")
	flags.IntVar(&f.threads, "threads", settings.DefaultThreads, "Render workers")
	flags.Float64Var(&f.fps, "fps", settings.DefaultFPS, "Frames per second")
	flags.StringVar(&f.resolution, "resolution", "", "Frame size token (144p, 240p, 360p, 480p, 720p), ignored with --preset")
	flags.StringVar(&f.text, "text", "", "Embed this text instead of a file")
	flags.StringVar(&f.sampleFormat, "sample-format", string(visual.FormatPNG), "Sample image format (png, bmp)")
	flags.StringVar(&f.presets, "presets", "", "YAML file with additional presets")
	flags.StringVar(&f.fileMode, "file-mode", permissions.FormatOctal(permissions.DefaultFilePerms), "Permissions for written files")
	return cmd
}

func (f *embedFlags) options(cmd *cobra.Command, a *app) (pipeline.EmbedOptions, error) {
	flags := cmd.Flags()
	opts := pipeline.EmbedOptions{Target: f.output, Preset: f.preset}

	switch {
	case flags.Changed("text") && flags.Changed("input"):
		return opts, errors.New("use either --input or --text, not both")
	case flags.Changed("text"):
		opts.Source = source.Text(f.text)
	case f.input != "":
		opts.Source = source.File(f.input)
	}

	if flags.Changed("mode") {
		mode, err := settings.ParseOutputMode(f.mode)
		if err != nil {
			return opts, err
		}
		opts.Overrides.Mode = &mode
	}
	if flags.Changed("block-size") {
		opts.Overrides.BlockSize = &f.blockSize
	}
	if flags.Changed("threads") {
		opts.Overrides.Threads = &f.threads
	}
	if flags.Changed("fps") {
		opts.Overrides.FPS = &f.fps
	}
	opts.Overrides.Resolution = f.resolution

	format, err := visual.ParseFormat(f.sampleFormat)
	if err != nil {
		return opts, err
	}
	opts.SampleFormat = format

	perm, err := permissions.ParseOctalString(f.fileMode)
	if err != nil {
		return opts, err
	}
	opts.FileMode = perm

	catalog, err := pkg.LoadCatalog(f.presets, a.logger)
	if err != nil {
		return opts, err
	}
	opts.Catalog = catalog
	return opts, nil
}

func newDislodgeCmd(a *app) *cobra.Command {
	var input, output, fileMode string
	cmd := &cobra.Command{
		Use:   "dislodge",
		Short: "Extract the payload of a container",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			perm, err := permissions.ParseOctalString(fileMode)
			if err != nil {
				return err
			}
			res, err := pipeline.Dislodge(cmd.Context(), pipeline.DislodgeOptions{
				Input:    input,
				Output:   output,
				FileMode: perm,
			}, a.logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", pipeline.DefaultContainerPath, "Container to read")
	cmd.Flags().StringVarP(&output, "output", "o", pipeline.DefaultExtractPath, "Where to write the payload")
	cmd.Flags().StringVar(&fileMode, "file-mode", permissions.FormatOctal(permissions.DefaultFilePerms), "Permissions for the written file")
	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	var input, preset, presets string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Describe a container as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := pkg.LoadCatalog(presets, a.logger)
			if err != nil {
				return err
			}
			s, _, err := settings.NewResolver(catalog, a.logger.Named("settings")).Resolve(preset, settings.Overrides{})
			if err != nil {
				return err
			}
			info, err := container.Inspect(input, s, a.logger.Named("container"))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", pipeline.DefaultContainerPath, "Container to inspect")
	cmd.Flags().StringVar(&preset, "preset", "", "Preset used for the frame count")
	cmd.Flags().StringVar(&presets, "presets", "", "YAML file with additional presets")
	return cmd
}

func newPresetsCmd(a *app) *cobra.Command {
	var presets string
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := pkg.LoadCatalog(presets, a.logger)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tMODE\tBLOCK\tFRAME\tFPS\tDESCRIPTION")
			for _, name := range catalog.Names() {
				p := catalog[name]
				fmt.Fprintf(tw, "%s\t%s\t%d\t%dx%d\t%g\t%s\n",
					p.Name, p.Mode, p.Settings.Size, p.Settings.Width, p.Settings.Height, p.Settings.FPS, p.Description)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&presets, "presets", "", "YAML file with additional presets")
	return cmd
}
