package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gopipe/internal/config"
	"github.com/philipparndt/gopipe/pkg/flange"
)

var (
	flangeFlags config.Flags
	listSizes   bool
)

var flangeCmd = &cobra.Command{
	Use:   "flange [nominal-bore-mm]",
	Short: "Resolve the flange dimensions for a nominal bore",
	Long: `Look the nominal bore up in the flange catalog, falling back to the
reference table. Bores between standard sizes round down to the smaller
flange.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFlange,
}

func init() {
	addFlangeFlags(flangeCmd, &flangeFlags)
	flangeCmd.Flags().BoolVar(&listSizes, "list", false, "List the sizes of the reference table")
	rootCmd.AddCommand(flangeCmd)
}

func runFlange(cmd *cobra.Command, args []string) error {
	resolver := flange.NewResolver()
	if listSizes {
		for _, nb := range resolver.Table().Sizes() {
			row, _ := resolver.Table().Row(nb)
			fmt.Printf("NB %4.0f  OD %4.0f  PCD %4.0f  %2d x %2.0f  T %2.0f\n",
				nb, row.OuterDiameterMm, row.PitchCircleDiameterMm, row.BoltHoleCount, row.BoltHoleDiameterMm, row.ThicknessMm)
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("nominal bore required (or use --list)")
	}

	nb, err := strconv.ParseFloat(args[0], 64)
	if err != nil || nb <= 0 {
		return fmt.Errorf("invalid nominal bore %q", args[0])
	}

	cfg, err := loadConfig(flangeFlags)
	if err != nil {
		return err
	}
	catalog, err := cfg.Flange.Catalog()
	if err != nil {
		return err
	}
	var lookup flange.Catalog
	if catalog != nil {
		lookup = catalog
	}

	res, err := resolver.ResolveFrom(context.Background(), lookup, flange.Query{
		NominalBoreMm: nb,
		Standard:      cfg.Flange.Standard,
		PressureClass: cfg.Flange.PressureClass,
	})
	if err != nil {
		fmt.Printf("Warning: catalog lookup failed: %v\n", err)
	}

	spec := res.Spec
	fmt.Printf("Flange for NB %s\n", strconv.FormatFloat(nb, 'f', -1, 64))
	fmt.Println("=================")
	if res.FromCatalog() {
		fmt.Println("Source: catalog")
	} else {
		fmt.Printf("Source: reference table (NB %.0f)\n", res.NominalBoreMm)
	}
	fmt.Printf("Designation: %s\n", flange.Designation(cfg.Flange.Standard, cfg.Flange.PressureClass, cfg.Flange.TypeCode))
	fmt.Printf("  Outer diameter: %.1f mm\n", spec.OuterDiameterMm)
	fmt.Printf("  Pitch circle: %.1f mm\n", spec.PitchCircleDiameterMm)
	fmt.Printf("  Bolt holes: %d x %.1f mm\n", spec.BoltHoleCount, spec.BoltHoleDiameterMm)
	fmt.Printf("  Thickness: %.1f mm\n", spec.ThicknessMm)
	fmt.Printf("  Bolts: M%.0f x %.0f mm\n", spec.BoltDiameterMm, spec.BoltLengthMm)
	if caveat := flange.Caveat(cfg.Flange.Standard, res.FromCatalog()); caveat != "" {
		fmt.Printf("\n%s\n", caveat)
	}
	return nil
}
