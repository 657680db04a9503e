// Package catalog builds the process-wide type registry and alias resolver
// for the phenopackets v2 schema and the GA4GH sub-schemas it composes.
package catalog

import (
	"fmt"
	"sync"

	"github.com/danmuck/phenopackets/internal/observability"
	"github.com/danmuck/phenopackets/pkg/compat"
	vrs "github.com/danmuck/phenopackets/pkg/ga4gh/vrs/v1"
	vrsatile "github.com/danmuck/phenopackets/pkg/ga4gh/vrsatile/v1"
	v2 "github.com/danmuck/phenopackets/pkg/phenopackets/schema/v2"
	"github.com/danmuck/phenopackets/pkg/registry"
)

// LegacyPrefix is the flat module prefix older callers qualify names with.
const LegacyPrefix = "phenopackets."

type Catalog struct {
	Types    *registry.Registry
	Resolver *compat.Resolver
}

type step struct {
	name string
	run  func(*registry.Registry) error
}

// DefaultConfig searches the v2 packages first, then VRSATILE and VRS.
func DefaultConfig() compat.Config {
	return compat.Config{
		Versioned:      []string{v2.Package, v2.CorePackage},
		Merged:         []string{vrsatile.Package, vrs.Package},
		LegacyPrefixes: []string{LegacyPrefix},
	}
}

// Build registers well-known types, VRS, VRSATILE and phenopackets v2 in
// that order, freezes the registry and builds the alias table. Any failure
// leaves nothing half-built behind.
func Build(cfg compat.Config) (*Catalog, error) {
	logger := observability.Logger("catalog")
	r := registry.New()
	steps := []step{
		{"well-known", registry.RegisterWellKnownTypes},
		{"vrs", vrs.Register},
		{"vrsatile", vrsatile.Register},
		{"phenopackets", v2.Register},
		{"freeze", func(r *registry.Registry) error { return r.Freeze() }},
	}
	for _, s := range steps {
		if err := s.run(r); err != nil {
			logger.Error().Err(err).Str("step", s.name).Msg("catalog build failed")
			return nil, fmt.Errorf("catalog: %s: %w", s.name, err)
		}
		logger.Debug().Str("step", s.name).Int("types", r.Len()).Msg("catalog step")
	}

	res, err := compat.NewResolver(r, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("catalog alias table failed")
		return nil, fmt.Errorf("catalog: aliases: %w", err)
	}
	observability.RecordRegistry(len(r.Messages()), len(r.Enums()), res.Len())
	logger.Info().
		Int("messages", len(r.Messages())).
		Int("enums", len(r.Enums())).
		Int("aliases", res.Len()).
		Msg("catalog ready")
	return &Catalog{Types: r, Resolver: res}, nil
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load builds the default catalog once per process.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Build(DefaultConfig())
	})
	return loaded, loadErr
}

// MustLoad is Load for init paths that cannot continue without a catalog.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Resolve is Resolver.Resolve.
func (c *Catalog) Resolve(name string, hint compat.Namespace) (compat.Handle, error) {
	return c.Resolver.Resolve(name, hint)
}

// Message resolves name to a message descriptor.
func (c *Catalog) Message(name string, hint compat.Namespace) (*registry.MessageDescriptor, error) {
	return c.Resolver.Message(name, hint)
}
