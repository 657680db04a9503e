package dynamic

import "github.com/danmuck/phenopackets/pkg/registry"

// Model is a typed Go record that converts to its value tree.
type Model interface {
	Descriptor() *registry.MessageDescriptor
	ToMessage() *Message
}

// Loader is implemented by pointers to typed records that can fill
// themselves from a value tree.
type Loader[T any] interface {
	*T
	FromMessage(m *Message)
}

// Load converts m into a new *T; nil stays nil.
func Load[T any, P Loader[T]](m *Message) *T {
	if m == nil {
		return nil
	}
	out := new(T)
	P(out).FromMessage(m)
	return out
}

// LoadAll converts every element of ms with Load.
func LoadAll[T any, P Loader[T]](ms []*Message) []*T {
	if len(ms) == 0 {
		return nil
	}
	out := make([]*T, 0, len(ms))
	for _, m := range ms {
		if m != nil {
			out = append(out, Load[T, P](m))
		}
	}
	return out
}

// ToMessages converts typed records; nil records are dropped.
func ToMessages[T Model](xs []T) []*Message {
	if len(xs) == 0 {
		return nil
	}
	out := make([]*Message, 0, len(xs))
	for _, x := range xs {
		if m := x.ToMessage(); m != nil {
			out = append(out, m)
		}
	}
	return out
}
