package flange

import (
	"context"
	"log/slog"
)

// Resolver turns a nominal bore into a flange Spec
type Resolver struct {
	table  Table
	logger *slog.Logger
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithTable replaces the embedded reference table
func WithTable(t Table) ResolverOption {
	return func(r *Resolver) {
		r.table = t
	}
}

// WithLogger sets the logger used for catalog diagnostics
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a resolver backed by the reference table
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		table:  ReferenceTable(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Table returns the fallback table
func (r *Resolver) Table() Table {
	return r.table
}

// Resolve prefers the external record and otherwise floor-matches the
// table. It never fails: out of range sizes clamp to the table extremes.
func (r *Resolver) Resolve(nominalBoreMm float64, external *CatalogRecord) Resolution {
	if external != nil {
		return Resolution{Spec: external.Spec(), NominalBoreMm: nominalBoreMm}
	}

	row := r.table.Floor(nominalBoreMm)
	return Resolution{Spec: row.Spec(), NominalBoreMm: row.NominalBoreMm}
}

// ResolveFrom queries the catalog first. A lookup error is returned
// alongside the table fallback so the caller can report it.
func (r *Resolver) ResolveFrom(ctx context.Context, catalog Catalog, q Query) (Resolution, error) {
	if catalog == nil {
		return r.Resolve(q.NominalBoreMm, nil), nil
	}

	record, err := catalog.Lookup(ctx, q)
	if err != nil {
		r.logger.Warn("flange catalog lookup failed, using reference table",
			"nominalBoreMm", q.NominalBoreMm, "standard", q.Standard, "error", err)
		return r.Resolve(q.NominalBoreMm, nil), err
	}
	if record == nil {
		r.logger.Debug("no catalog record, using reference table",
			"nominalBoreMm", q.NominalBoreMm, "standard", q.Standard)
	}
	return r.Resolve(q.NominalBoreMm, record), nil
}
