package value

import "errors"

// ErrUnknownKind is returned when encoding a Value whose kind is not a JSON type.
var ErrUnknownKind = errors.New("unknown value kind")

// ObjectBuilder accumulates object members. Setting a key that is already
// present replaces its value and keeps the position of the first occurrence.
type ObjectBuilder struct {
	members []Member
	index   map[string]int
}

// NewObjectBuilder creates a builder sized for n members.
func NewObjectBuilder(n int) *ObjectBuilder {
	return &ObjectBuilder{
		members: make([]Member, 0, n),
		index:   make(map[string]int, n),
	}
}

// Set stores val under key. It reports whether key was already present.
func (b *ObjectBuilder) Set(key string, val Value) bool {
	if i, ok := b.index[key]; ok {
		b.members[i].Value = val

		return true
	}

	b.index[key] = len(b.members)
	b.members = append(b.members, Member{Key: key, Value: val})

	return false
}

// Len returns the number of distinct keys set so far.
func (b *ObjectBuilder) Len() int {
	return len(b.members)
}

// Build returns the object. The builder must not be used afterwards.
func (b *ObjectBuilder) Build() Value {
	obj := Value{kind: KindObject, members: b.members, index: b.index}
	b.members = nil
	b.index = nil

	return obj
}

// Object builds an object from members in order, last member wins on duplicate keys.
func Object(members ...Member) Value {
	b := NewObjectBuilder(len(members))

	for _, m := range members {
		b.Set(m.Key, m.Value)
	}

	return b.Build()
}
