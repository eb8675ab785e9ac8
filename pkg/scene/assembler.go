package scene

import (
	"context"

	"github.com/philipparndt/gopipe/pkg/flange"
	"github.com/philipparndt/gopipe/pkg/pipe"
)

// Assembler resolves the flange spec for the parameters and assembles
// the scene in one step.
type Assembler struct {
	resolver *flange.Resolver
	catalog  flange.Catalog
}

// NewAssembler creates an assembler. catalog may be nil, in which case
// only the reference table is used.
func NewAssembler(resolver *flange.Resolver, catalog flange.Catalog) *Assembler {
	if resolver == nil {
		resolver = flange.NewResolver()
	}
	return &Assembler{resolver: resolver, catalog: catalog}
}

// needsSpec reports whether the parameters call for a flange lookup
func needsSpec(p pipe.Parameters) bool {
	return p.EndConfiguration.Sides().Any() && positiveFinite(p.NominalBoreMm)
}

// Build assembles with an explicitly supplied catalog record. The
// resolution is nil when the configuration has no flanges or no nominal
// bore was given.
func (a *Assembler) Build(p pipe.Parameters, external *flange.CatalogRecord) (Scene, *flange.Resolution) {
	if !needsSpec(p) && external == nil {
		return Assemble(p, nil), nil
	}

	res := a.resolver.Resolve(p.NominalBoreMm, external)
	return Assemble(p, &res.Spec), &res
}

// BuildContext looks the flange up in the catalog before assembling. A
// catalog failure is returned but the scene is still built from the
// reference table.
func (a *Assembler) BuildContext(ctx context.Context, p pipe.Parameters) (Scene, *flange.Resolution, error) {
	if !needsSpec(p) {
		return Assemble(p, nil), nil, nil
	}

	p = p.WithDefaults()
	res, err := a.resolver.ResolveFrom(ctx, a.catalog, flange.Query{
		NominalBoreMm: p.NominalBoreMm,
		Standard:      p.FlangeStandard,
		PressureClass: p.PressureClass,
	})
	return Assemble(p, &res.Spec), &res, err
}
