package document

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidHandle is returned when a handle does not address a node of the document.
var ErrInvalidHandle = errors.New("invalid node handle")

// ErrNotMapping is returned when a mapping operation targets another node kind.
var ErrNotMapping = errors.New("node is not a mapping")

// Handle addresses a node within one Document. The zero Handle is invalid.
type Handle int

// Kind is the variant of a Node.
type Kind int

// Node kinds.
const (
	KindInvalid Kind = iota
	KindScalar
	KindSequence
	KindMapping
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Pair is one key/value entry of a mapping.
type Pair struct {
	Key   Handle
	Value Handle
}

// Node is a scalar, sequence or mapping. Only the fields of its Kind are set.
type Node struct {
	Kind   Kind
	Text   string
	Items  []Handle
	Pairs  []Pair
	Line   int
	Column int
}

// Document is an append-only arena of nodes.
type Document struct {
	nodes []Node
	root  Handle
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// Root returns the root node handle, or zero when none has been set.
func (d *Document) Root() Handle {
	return d.root
}

// SetRoot marks h as the document root.
func (d *Document) SetRoot(h Handle) {
	d.root = h
}

// Len returns the number of nodes in the arena.
func (d *Document) Len() int {
	return len(d.nodes)
}

// Node returns the node addressed by h.
func (d *Document) Node(h Handle) (*Node, bool) {
	if h < 1 || int(h) > len(d.nodes) {
		return nil, false
	}

	return &d.nodes[h-1], true
}

// Kind returns the kind of the node addressed by h, or KindInvalid.
func (d *Document) Kind(h Handle) Kind {
	n, ok := d.Node(h)
	if !ok {
		return KindInvalid
	}

	return n.Kind
}

// ScalarText returns the text of a scalar node.
func (d *Document) ScalarText(h Handle) (string, bool) {
	n, ok := d.Node(h)
	if !ok || n.Kind != KindScalar {
		return "", false
	}

	return n.Text, true
}

// AddScalar appends a scalar node.
func (d *Document) AddScalar(text string) Handle {
	return d.add(Node{Kind: KindScalar, Text: text})
}

// AddSequence appends a sequence node holding items.
func (d *Document) AddSequence(items ...Handle) Handle {
	return d.add(Node{Kind: KindSequence, Items: items})
}

// AddMapping appends a mapping node holding pairs.
func (d *Document) AddMapping(pairs ...Pair) Handle {
	return d.add(Node{Kind: KindMapping, Pairs: pairs})
}

// AddNode appends a node of any kind, including kinds the converter rejects.
func (d *Document) AddNode(n Node) Handle {
	return d.add(n)
}

func (d *Document) add(n Node) Handle {
	d.nodes = append(d.nodes, n)

	return Handle(len(d.nodes))
}

// SetPosition records the source position of a node.
func (d *Document) SetPosition(h Handle, line, column int) {
	if n, ok := d.Node(h); ok {
		n.Line = line
		n.Column = column
	}
}

// AppendItem appends item to a sequence node.
func (d *Document) AppendItem(seq, item Handle) error {
	n, ok := d.Node(seq)
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, seq)
	}

	if n.Kind != KindSequence {
		return fmt.Errorf("appending item to %s node %d: not a sequence", n.Kind, seq)
	}

	n.Items = append(n.Items, item)

	return nil
}

// AppendPair appends a key/value pair to a mapping node.
func (d *Document) AppendPair(mapping, key, val Handle) error {
	n, err := d.mapping(mapping)
	if err != nil {
		return err
	}

	n.Pairs = append(n.Pairs, Pair{Key: key, Value: val})

	return nil
}

// Pairs returns the pair list of a mapping node. The slice must not be modified.
func (d *Document) Pairs(mapping Handle) ([]Pair, error) {
	n, err := d.mapping(mapping)
	if err != nil {
		return nil, err
	}

	return n.Pairs, nil
}

// ReplacePairs swaps the pair list of a mapping node for pairs in one step.
func (d *Document) ReplacePairs(mapping Handle, pairs []Pair) error {
	n, err := d.mapping(mapping)
	if err != nil {
		return err
	}

	n.Pairs = pairs

	return nil
}

func (d *Document) mapping(h Handle) (*Node, error) {
	n, ok := d.Node(h)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}

	if n.Kind != KindMapping {
		return nil, fmt.Errorf("%w: %s node %d", ErrNotMapping, n.Kind, h)
	}

	return n, nil
}
