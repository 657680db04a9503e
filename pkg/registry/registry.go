package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// Types is the read side of a registry, as the codecs consume it.
type Types interface {
	Message(name string) (*MessageDescriptor, error)
	Enum(name string) (*EnumDescriptor, error)
}

// Registry holds every message and enum descriptor by full name. It is
// append-only: there is no delete, and after Freeze only identical
// re-registrations are accepted.
type Registry struct {
	mu       sync.RWMutex
	messages map[string]*MessageDescriptor
	enums    map[string]*EnumDescriptor
	frozen   bool
}

var _ Types = (*Registry)(nil)

func New() *Registry {
	return &Registry{
		messages: make(map[string]*MessageDescriptor),
		enums:    make(map[string]*EnumDescriptor),
	}
}

// RegisterMessage adds d. Registering an identical descriptor again is a
// no-op; a different descriptor under the same name is a SchemaConflictError.
func (r *Registry) RegisterMessage(d *MessageDescriptor) error {
	if d == nil {
		return &DescriptorError{Reason: "nil message descriptor"}
	}
	if err := d.validate(); err != nil {
		log.Error().Err(err).Str("type", d.fullName).Msg("registry.RegisterMessage invalid")
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.messages[d.fullName]; ok {
		if prev.Equal(d) {
			return nil
		}
		return r.conflict(d.fullName, prev.source, d.source, prev.diff(d))
	}
	if prev, ok := r.enums[d.fullName]; ok {
		return r.conflict(d.fullName, prev.source, d.source, "already registered as enum")
	}
	if r.frozen {
		return fmt.Errorf("%w: cannot add message %s", ErrFrozen, d.fullName)
	}
	r.messages[d.fullName] = d
	log.Debug().Str("type", d.fullName).Int("fields", len(d.fields)).Msg("registry.RegisterMessage")
	return nil
}

// RegisterEnum adds d with the same idempotency rules as RegisterMessage.
func (r *Registry) RegisterEnum(d *EnumDescriptor) error {
	if d == nil {
		return &DescriptorError{Reason: "nil enum descriptor"}
	}
	if err := d.validate(); err != nil {
		log.Error().Err(err).Str("type", d.fullName).Msg("registry.RegisterEnum invalid")
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.enums[d.fullName]; ok {
		if prev.Equal(d) {
			return nil
		}
		return r.conflict(d.fullName, prev.source, d.source, "enum values differ")
	}
	if prev, ok := r.messages[d.fullName]; ok {
		return r.conflict(d.fullName, prev.source, d.source, "already registered as message")
	}
	if r.frozen {
		return fmt.Errorf("%w: cannot add enum %s", ErrFrozen, d.fullName)
	}
	r.enums[d.fullName] = d
	log.Debug().Str("type", d.fullName).Int("values", len(d.values)).Msg("registry.RegisterEnum")
	return nil
}

func (r *Registry) conflict(name, existing, incoming, reason string) error {
	err := &SchemaConflictError{Name: name, Existing: existing, Incoming: incoming, Reason: reason}
	log.Error().Err(err).Msg("registry conflict")
	return err
}

func (r *Registry) Message(name string) (*MessageDescriptor, error) {
	r.mu.RLock()
	d, ok := r.messages[name]
	r.mu.RUnlock()
	if !ok {
		return nil, unknownType(name)
	}
	return d, nil
}

func (r *Registry) Enum(name string) (*EnumDescriptor, error) {
	r.mu.RLock()
	d, ok := r.enums[name]
	r.mu.RUnlock()
	if !ok {
		return nil, unknownType(name)
	}
	return d, nil
}

// Field looks up a field of a message type by snake_case or JSON name.
func (r *Registry) Field(typeName, field string) (FieldDescriptor, error) {
	d, err := r.Message(typeName)
	if err != nil {
		return FieldDescriptor{}, err
	}
	f, ok := d.FieldByName(field)
	if !ok {
		return FieldDescriptor{}, unknownField(typeName, field)
	}
	return f, nil
}

// Messages returns every message descriptor sorted by full name.
func (r *Registry) Messages() []*MessageDescriptor {
	r.mu.RLock()
	out := make([]*MessageDescriptor, 0, len(r.messages))
	for _, d := range r.messages {
		out = append(out, d)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].fullName < out[j].fullName })
	return out
}

// Enums returns every enum descriptor sorted by full name.
func (r *Registry) Enums() []*EnumDescriptor {
	r.mu.RLock()
	out := make([]*EnumDescriptor, 0, len(r.enums))
	for _, d := range r.enums {
		out = append(out, d)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].fullName < out[j].fullName })
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages) + len(r.enums)
}

// Freeze checks that every referenced message and enum type is registered,
// then closes the registry to new names. Calling it again is a no-op.
func (r *Registry) Freeze() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return nil
	}
	names := make([]string, 0, len(r.messages))
	for name := range r.messages {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, f := range r.messages[name].fields {
			switch f.Kind {
			case KindMessage:
				if _, ok := r.messages[f.TypeName]; !ok {
					return fmt.Errorf("%s.%s: %w", name, f.Name, unknownType(f.TypeName))
				}
			case KindEnum:
				if _, ok := r.enums[f.TypeName]; !ok {
					return fmt.Errorf("%s.%s: %w", name, f.Name, unknownType(f.TypeName))
				}
			}
		}
	}
	r.frozen = true
	log.Debug().Int("messages", len(r.messages)).Int("enums", len(r.enums)).Msg("registry frozen")
	return nil
}

func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}
