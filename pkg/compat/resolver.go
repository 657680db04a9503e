package compat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/danmuck/phenopackets/internal/observability"
	"github.com/danmuck/phenopackets/pkg/registry"
)

// Namespace is the import generation a caller names types from.
type Namespace int

const (
	// Versioned names are fully qualified, e.g.
	// "org.phenopackets.schema.v2.Phenopacket".
	Versioned Namespace = iota
	// Flat names are the legacy top-level names, e.g. "Phenopacket" or
	// "phenopackets.Phenopacket".
	Flat
)

func (n Namespace) String() string {
	switch n {
	case Versioned:
		return "versioned"
	case Flat:
		return "flat"
	default:
		return fmt.Sprintf("Namespace(%d)", int(n))
	}
}

// ParseNamespace accepts "versioned" or "flat".
func ParseNamespace(s string) (Namespace, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "versioned", "":
		return Versioned, nil
	case "flat":
		return Flat, nil
	default:
		return 0, fmt.Errorf("compat: unknown namespace %q", s)
	}
}

// Config names the packages the resolver searches.
type Config struct {
	// Versioned packages are searched first.
	Versioned []string
	// Merged packages hold sub-schemas that appear as if native.
	Merged []string
	// LegacyPrefixes are stripped from flat names before lookup.
	LegacyPrefixes []string
}

// Handle points at one registered type. Handles compare with ==.
type Handle struct {
	Name    string
	Message *registry.MessageDescriptor
	Enum    *registry.EnumDescriptor
}

func (h Handle) IsMessage() bool { return h.Message != nil }
func (h Handle) IsEnum() bool    { return h.Enum != nil }
func (h Handle) IsZero() bool    { return h == Handle{} }

// Alias is one entry of the flat alias table.
type Alias struct {
	Flat   string
	Handle Handle
}

// Resolver maps versioned, merged and flat type names onto registry
// entries. It is immutable after NewResolver.
type Resolver struct {
	types     *registry.Registry
	versioned []string
	merged    []string
	prefixes  []string
	aliases   map[string]Handle
}

// NewResolver builds the flat alias table from every type registered under
// cfg's packages. Two types claiming one flat name fail construction.
func NewResolver(r *registry.Registry, cfg Config) (*Resolver, error) {
	res := &Resolver{
		types:     r,
		versioned: append([]string(nil), cfg.Versioned...),
		merged:    append([]string(nil), cfg.Merged...),
		prefixes:  append([]string(nil), cfg.LegacyPrefixes...),
		aliases:   make(map[string]Handle),
	}

	for _, d := range r.Messages() {
		if err := res.addAlias(d.Package(), d.Name(), Handle{Name: d.FullName(), Message: d}); err != nil {
			return nil, err
		}
	}
	for _, d := range r.Enums() {
		if err := res.addAlias(d.Package(), d.Name(), Handle{Name: d.FullName(), Enum: d}); err != nil {
			return nil, err
		}
	}

	logger := observability.Logger("compat")
	logger.Debug().
		Int("aliases", len(res.aliases)).
		Strs("versioned", res.versioned).
		Strs("merged", res.merged).
		Msg("alias table built")
	return res, nil
}

func (res *Resolver) addAlias(pkg, name string, h Handle) error {
	if !res.covers(pkg) {
		return nil
	}
	if prev, ok := res.aliases[name]; ok && prev != h {
		err := &AliasCollisionError{Alias: name, Existing: prev.Name, Incoming: h.Name}
		logger := observability.Logger("compat")
		logger.Error().Err(err).Msg("alias table")
		return err
	}
	res.aliases[name] = h
	return nil
}

func (res *Resolver) covers(pkg string) bool {
	for _, p := range res.versioned {
		if p == pkg {
			return true
		}
	}
	for _, p := range res.merged {
		if p == pkg {
			return true
		}
	}
	return false
}

// Resolve looks name up in order: exact match in a versioned package, exact
// match in a merged package, then the flat alias table.
func (res *Resolver) Resolve(name string, hint Namespace) (Handle, error) {
	name = strings.TrimSpace(name)
	if hint == Flat {
		name = res.stripLegacy(name)
	}
	if name == "" {
		return Handle{}, fmt.Errorf("%w: empty name", registry.ErrUnknownType)
	}

	if h, ok := res.exact(name, res.versioned); ok {
		return h, nil
	}
	if h, ok := res.exact(name, res.merged); ok {
		return h, nil
	}
	if h, ok := res.aliases[name]; ok {
		return h, nil
	}
	return Handle{}, fmt.Errorf("%w: %q (%s)", registry.ErrUnknownType, name, hint)
}

// Message resolves name and requires a message type.
func (res *Resolver) Message(name string, hint Namespace) (*registry.MessageDescriptor, error) {
	h, err := res.Resolve(name, hint)
	if err != nil {
		return nil, err
	}
	if !h.IsMessage() {
		return nil, fmt.Errorf("%w: %s", ErrNotMessage, h.Name)
	}
	return h.Message, nil
}

func (res *Resolver) exact(name string, pkgs []string) (Handle, bool) {
	for _, pkg := range pkgs {
		if !strings.HasPrefix(name, pkg+".") {
			continue
		}
		if d, err := res.types.Message(name); err == nil && d.Package() == pkg {
			return Handle{Name: d.FullName(), Message: d}, true
		}
		if d, err := res.types.Enum(name); err == nil && d.Package() == pkg {
			return Handle{Name: d.FullName(), Enum: d}, true
		}
	}
	return Handle{}, false
}

func (res *Resolver) stripLegacy(name string) string {
	for _, p := range res.prefixes {
		if rest, ok := strings.CutPrefix(name, p); ok {
			return rest
		}
	}
	return name
}

// Aliases lists the flat alias table sorted by flat name.
func (res *Resolver) Aliases() []Alias {
	out := make([]Alias, 0, len(res.aliases))
	for flat, h := range res.aliases {
		out = append(out, Alias{Flat: flat, Handle: h})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Flat < out[j].Flat })
	return out
}

func (res *Resolver) Len() int { return len(res.aliases) }

// Types is the registry the handles point into.
func (res *Resolver) Types() *registry.Registry { return res.types }
