package main

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/gopipe/internal/app"
	"github.com/philipparndt/gopipe/internal/camera"
	"github.com/philipparndt/gopipe/internal/config"
)

var (
	viewFlags config.Flags
	viewMode  string
)

var viewCmd = &cobra.Command{
	Use:   "view <params>",
	Short: "Open the interactive 3D preview",
	Long: `Open the parameter file in the interactive viewer. The view follows
edits to the file and to the flange catalog, and the camera pose is kept in
a <params>.gopipe.json file next to it.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	addWindowFlags(viewCmd, &viewFlags)
	addFlangeFlags(viewCmd, &viewFlags)
	viewCmd.Flags().StringVar(&viewMode, "view", "", "Initial view: overview, viewEndA or viewEndB (default: saved pose)")
	rootCmd.AddCommand(viewCmd)
}

func addWindowFlags(cmd *cobra.Command, flags *config.Flags) {
	cmd.Flags().IntVar(&flags.Width, "width", 0, "Window width in pixels")
	cmd.Flags().IntVar(&flags.Height, "height", 0, "Window height in pixels")
	cmd.Flags().IntVar(&flags.FPS, "fps", 0, "Target frame rate")
}

func addFlangeFlags(cmd *cobra.Command, flags *config.Flags) {
	cmd.Flags().StringVar(&flags.CatalogPath, "catalog", "", "Flange catalog file (YAML or JSON)")
	cmd.Flags().StringVar(&flags.Standard, "standard", "", "Flange standard used when the parameters name none")
	cmd.Flags().StringVar(&flags.PressureClass, "pressure-class", "", "Pressure class used when the parameters name none")
}

// parseMode accepts an empty string as "no preference"
func parseMode(s string) (camera.ViewMode, error) {
	if s == "" {
		return "", nil
	}
	return camera.ParseViewMode(s)
}

func runView(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(viewMode)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(viewFlags)
	if err != nil {
		return err
	}

	return app.Run(app.Options{
		ParamsPath: args[0],
		Config:     cfg,
		Mode:       mode,
	})
}
