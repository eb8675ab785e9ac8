package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gopipe/internal/config"
	"github.com/philipparndt/gopipe/pkg/annotation"
	"github.com/philipparndt/gopipe/pkg/flange"
	"github.com/philipparndt/gopipe/pkg/geometry"
	"github.com/philipparndt/gopipe/pkg/pipe"
	"github.com/philipparndt/gopipe/pkg/scene"
)

var infoFlags config.Flags

var infoCmd = &cobra.Command{
	Use:   "info <params>",
	Short: "Print the specification summary of a parameter file",
	Long:  "Resolve the flange specification and print the same summary the preview overlay shows, followed by the assembled scene statistics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	addFlangeFlags(infoCmd, &infoFlags)
	rootCmd.AddCommand(infoCmd)
}

// newAssembler builds an assembler backed by the configured catalog
func newAssembler(cfg config.Config) (*scene.Assembler, error) {
	catalog, err := cfg.Flange.Catalog()
	if err != nil {
		return nil, err
	}
	var lookup flange.Catalog
	if catalog != nil {
		lookup = catalog
	}
	return scene.NewAssembler(flange.NewResolver(), lookup), nil
}

// assemble loads the parameters and builds the scene
func assemble(path string, cfg config.Config) (pipe.Parameters, scene.Scene, *flange.Resolution, error) {
	params, err := pipe.Load(path)
	if err != nil {
		return pipe.Parameters{}, scene.Scene{}, nil, err
	}
	params = cfg.Flange.Apply(params)

	assembler, err := newAssembler(cfg)
	if err != nil {
		return pipe.Parameters{}, scene.Scene{}, nil, err
	}
	s, res, err := assembler.BuildContext(context.Background(), params)
	if err != nil {
		fmt.Printf("Warning: flange catalog lookup failed, using reference table: %v\n", err)
	}
	return params, s, res, nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(infoFlags)
	if err != nil {
		return err
	}
	params, s, res, err := assemble(args[0], cfg)
	if err != nil {
		return err
	}

	fmt.Println("Pipe Specification")
	fmt.Println("==================")
	fmt.Printf("File: %s\n", args[0])
	if params.Length.IsAmbiguous() {
		fmt.Printf("Length: %s (untagged value read as %s)\n\n", params.Length, params.Length.ResolvedUnit())
	} else {
		fmt.Printf("Length: %s\n\n", params.Length)
	}

	for _, line := range s.Summary.Lines() {
		if line.Style == annotation.Heading {
			fmt.Printf("\n%s\n", line.Text)
			continue
		}
		fmt.Printf("  %s\n", line.Text)
	}

	if res != nil {
		source := "reference table"
		if res.FromCatalog() {
			source = "catalog"
		}
		fmt.Printf("\nFlange resolved for NB %.0f from the %s\n", res.NominalBoreMm, source)
	}

	fmt.Println("\nScene:")
	fmt.Printf("  Primitives: %d\n", len(s.Primitives))
	fmt.Printf("  Dimensions: %d\n", len(s.Dimensions))
	fmt.Printf("  %s\n", extentLine(s.Bounds))
	return nil
}

func extentLine(b geometry.BoundingBox) string {
	size := b.Size()
	return fmt.Sprintf("Extent: %.3f x %.3f x %.3f m (diagonal %.3f m)", size.X, size.Y, size.Z, b.Diagonal())
}
