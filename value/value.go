package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Kind identifies the JSON type held by a Value.
type Kind int

// JSON value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lowercase JSON type name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// plainExponentLimit bounds the exponent range rendered in positional notation.
// Numbers outside it are written as coefficient and exponent so that text such
// as 1e999999 does not expand into a million digits.
const plainExponentLimit = 64

// Member is a single key/value entry of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value. The zero Value is Null.
type Value struct {
	kind    Kind
	boolean bool
	number  decimal.Decimal
	text    string
	items   []Value
	members []Member
	index   map[string]int
}

// Null returns the JSON null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a JSON boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Number returns a JSON number holding d exactly.
func Number(d decimal.Decimal) Value {
	return Value{kind: KindNumber, number: d}
}

// String returns a JSON string.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Array returns a JSON array of the given items. A nil slice is an empty array.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{kind: KindArray, items: items}
}

// Kind returns the value's JSON type.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the JSON null value.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean and whether v is a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// AsNumber returns the decimal and whether v is a number.
func (v Value) AsNumber() (decimal.Decimal, bool) {
	return v.number, v.kind == KindNumber
}

// AsString returns the string and whether v is a string.
func (v Value) AsString() (string, bool) {
	return v.text, v.kind == KindString
}

// Items returns the elements of an array, or nil for other kinds.
func (v Value) Items() []Value {
	return v.items
}

// Members returns the entries of an object in insertion order, or nil for other kinds.
func (v Value) Members() []Member {
	return v.members
}

// Len returns the number of items of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Get returns the member value stored under key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}

	i, ok := v.index[key]
	if !ok {
		return Value{}, false
	}

	return v.members[i].Value, true
}

// Equal reports whether v and other hold the same JSON value.
// Object comparison ignores member order; numbers compare by numeric value.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber:
		return v.number.Equal(other.number)
	case KindString:
		return v.text == other.text
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}

		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}

		return true
	case KindObject:
		if len(v.members) != len(other.members) {
			return false
		}

		for _, m := range v.members {
			ov, ok := other.Get(m.Key)
			if !ok || !m.Value.Equal(ov) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// MarshalJSON implements json.Marshaler. Numbers are written from their
// decimal form and never pass through float64.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	err := v.encode(&buf)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// String renders v as compact JSON. Unlike MarshalJSON it never fails.
func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid %s: %v>", v.kind, err)
	}

	return string(data)
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case KindNumber:
		buf.WriteString(formatNumber(v.number))
	case KindString:
		return encodeString(buf, v.text)
	case KindArray:
		buf.WriteByte('[')

		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := item.encode(buf)
			if err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')

		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := encodeString(buf, m.Key)
			if err != nil {
				return err
			}

			buf.WriteByte(':')

			err = m.Value.encode(buf)
			if err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKind, v.kind)
	}

	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding string: %w", err)
	}

	buf.Write(data)

	return nil
}

func formatNumber(d decimal.Decimal) string {
	exp := d.Exponent()
	if exp > -plainExponentLimit && exp < plainExponentLimit {
		return d.String()
	}

	return d.Coefficient().String() + "e" + strconv.FormatInt(int64(exp), 10)
}
