package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gopipe/internal/camera"
	"github.com/philipparndt/gopipe/internal/config"
	"github.com/philipparndt/gopipe/pkg/viewer"
)

var (
	snapshotFlags  config.Flags
	snapshotOutput string
	snapshotView   string
	noOverlay      bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <params>",
	Short: "Render a preview image without opening a window",
	Long: `Render the pipe from a preset view (or the saved camera pose) to a PNG
or lossless WebP image. The format follows the output extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

func init() {
	f := snapshotCmd.Flags()
	f.StringVarP(&snapshotOutput, "output", "o", "", "Output image (default <params>.<format>)")
	f.StringVar(&snapshotView, "view", "", "View: overview, viewEndA or viewEndB (default: saved pose, else overview)")
	f.IntVar(&snapshotFlags.Width, "width", 0, "Image width in pixels")
	f.IntVar(&snapshotFlags.Height, "height", 0, "Image height in pixels")
	f.IntVar(&snapshotFlags.Supersample, "supersample", 0, "Render at this multiple of the output size")
	f.StringVar(&snapshotFlags.Format, "format", "", "Format when the output has no extension: png or webp")
	f.BoolVar(&noOverlay, "no-overlay", false, "Omit the specification summary panel")
	addFlangeFlags(snapshotCmd, &snapshotFlags)
	rootCmd.AddCommand(snapshotCmd)
}

// outputPath picks the image path and its format
func outputPath(params, output, defaultFormat string) (string, viewer.Format, error) {
	if output == "" {
		output = strings.TrimSuffix(params, filepath.Ext(params)) + "." + defaultFormat
	}
	if filepath.Ext(output) == "" {
		output += "." + defaultFormat
	}
	format, err := viewer.FormatFromPath(output)
	return output, format, err
}

// snapshotPose picks the preset for mode, or the saved pose when no mode
// is given
func snapshotPose(mode camera.ViewMode, paramsPath string, lengthM float64) (camera.Pose, error) {
	presets := camera.PresetsFor(lengthM)
	if mode == "" {
		saved, err := camera.LoadSidecar(camera.SidecarPath(paramsPath))
		if err != nil {
			fmt.Printf("Warning: ignoring saved camera pose: %v\n", err)
		}
		if saved != nil {
			return *saved, nil
		}
		mode = camera.Overview
	}
	pose, ok := presets.For(mode)
	if !ok {
		return camera.Pose{}, fmt.Errorf("view %q has no fixed pose", mode)
	}
	return pose, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(snapshotView)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(snapshotFlags)
	if err != nil {
		return err
	}
	output, format, err := outputPath(args[0], snapshotOutput, cfg.Snapshot.Format)
	if err != nil {
		return err
	}

	_, s, _, err := assemble(args[0], cfg)
	if err != nil {
		return err
	}
	pose, err := snapshotPose(mode, args[0], s.LengthM)
	if err != nil {
		return err
	}

	opts := viewer.DefaultSnapshotOptions()
	opts.Width = cfg.Snapshot.Width
	opts.Height = cfg.Snapshot.Height
	opts.Supersample = cfg.Snapshot.Supersample
	opts.Overlay = !noOverlay

	fmt.Printf("Rendering %dx%d (%dx supersampled)...\n", opts.Width, opts.Height, opts.Supersample)
	img := viewer.Snapshot(s, pose, opts)

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := viewer.Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", output)
	return nil
}
