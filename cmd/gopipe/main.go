package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gopipe/internal/config"
	"github.com/philipparndt/gopipe/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "gopipe",
	Short: "Parametric 3D preview of straight pipes with flanged ends",
	Long: `gopipe previews a straight pipe spool in 3D: pipe body, fixed, loose or
rotating flanges, blank flanges and backing rings, dimensioned and annotated
with the flange specification.

Parameters are read from a YAML or JSON file and reloaded when it changes.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default "+config.DefaultPath()+")")
}

// loadConfig reads the configuration file and applies the flag overrides
func loadConfig(flags config.Flags) (config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg.Resolve(flags)
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
