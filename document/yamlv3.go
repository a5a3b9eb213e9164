package document

import (
	"fmt"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

var errorLinePattern = regexp.MustCompile(`^yaml: line (\d+): (.*)$`) //nolint:gochecknoglobals

// ParseV3 builds a Document from the first YAML document in text using
// gopkg.in/yaml.v3. It yields the same node graph as Parse, including the
// empty scalar root for text without a document body.
func ParseV3(text string) (*Document, error) {
	var root yaml.Node

	err := yaml.Unmarshal([]byte(text), &root)
	if err != nil {
		return nil, v3ParseError(err)
	}

	// A stream without a body leaves root zero or an empty document.
	var body *yaml.Node

	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		body = root.Content[0]
	}

	builder := &v3Builder{
		doc:      New(),
		built:    make(map[*yaml.Node]Handle),
		visiting: make(map[*yaml.Node]bool),
	}

	h, err := builder.build(body)
	if err != nil {
		return nil, err
	}

	builder.doc.SetRoot(h)

	return builder.doc, nil
}

func v3ParseError(err error) error {
	if m := errorLinePattern.FindStringSubmatch(err.Error()); m != nil {
		line, convErr := strconv.Atoi(m[1])
		if convErr == nil {
			return &ParseError{Message: m[2], Line: line, Err: err}
		}
	}

	return newParseError(err, 0, 0)
}

type v3Builder struct {
	doc      *Document
	built    map[*yaml.Node]Handle
	visiting map[*yaml.Node]bool
}

func (b *v3Builder) build(node *yaml.Node) (Handle, error) {
	if node == nil {
		return b.doc.AddScalar(""), nil
	}

	if h, ok := b.built[node]; ok {
		return h, nil
	}

	var (
		h   Handle
		err error
	)

	b.visiting[node] = true
	defer delete(b.visiting, node)

	switch node.Kind {
	case yaml.ScalarNode:
		h = b.doc.AddScalar(node.Value)
	case yaml.AliasNode:
		if node.Alias == nil {
			return 0, newParseError(fmt.Errorf("%w %q", ErrUnknownAnchor, node.Value), node.Line, node.Column)
		}

		if b.visiting[node.Alias] {
			return 0, newParseError(fmt.Errorf("%w: %q", ErrRecursiveAlias, node.Value), node.Line, node.Column)
		}

		return b.build(node.Alias)
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			h = b.doc.AddScalar("")
		} else {
			h, err = b.build(node.Content[0])
		}
	case yaml.SequenceNode:
		h, err = b.sequence(node)
	case yaml.MappingNode:
		h, err = b.mapping(node)
	default:
		h = b.doc.AddNode(Node{Kind: KindInvalid, Text: strconv.Itoa(int(node.Kind))})
	}

	if err != nil {
		return 0, err
	}

	b.doc.SetPosition(h, node.Line, node.Column)
	b.built[node] = h

	return h, nil
}

func (b *v3Builder) sequence(node *yaml.Node) (Handle, error) {
	h := b.doc.AddSequence()

	for _, item := range node.Content {
		child, err := b.build(item)
		if err != nil {
			return 0, err
		}

		err = b.doc.AppendItem(h, child)
		if err != nil {
			return 0, err
		}
	}

	return h, nil
}

func (b *v3Builder) mapping(node *yaml.Node) (Handle, error) {
	h := b.doc.AddMapping()

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, err := b.build(node.Content[i])
		if err != nil {
			return 0, err
		}

		val, err := b.build(node.Content[i+1])
		if err != nil {
			return 0, err
		}

		err = b.doc.AppendPair(h, key, val)
		if err != nil {
			return 0, err
		}
	}

	return h, nil
}
