package document

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// Parse builds a Document from the first YAML document in text using
// github.com/goccy/go-yaml. Anchors and aliases are resolved to shared
// handles; tags are ignored. Duplicate keys are kept for the converter to
// resolve. Text without a document body yields an empty scalar root.
func Parse(text string) (*Document, error) {
	file, err := parser.ParseBytes([]byte(text), 0, parser.AllowDuplicateMapKey())
	if err != nil {
		return nil, goccyParseError(err)
	}

	body := firstBody(file)

	builder := &goccyBuilder{
		doc:     New(),
		anchors: make(map[string]Handle),
	}

	root, err := builder.build(body)
	if err != nil {
		return nil, err
	}

	builder.doc.SetRoot(root)

	return builder.doc, nil
}

// firstBody returns the body of the first document, skipping documents that
// hold only a directive. A stream without a body yields nil, an empty scalar.
func firstBody(file *ast.File) ast.Node {
	if file == nil {
		return nil
	}

	for _, doc := range file.Docs {
		if doc == nil {
			continue
		}

		switch body := doc.Body.(type) {
		case *ast.DirectiveNode:
			continue
		case *ast.CommentGroupNode, *ast.CommentNode:
			return nil
		default:
			return body
		}
	}

	return nil
}

func goccyParseError(err error) error {
	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		line, column := 0, 0

		if tk := yamlErr.GetToken(); tk != nil && tk.Position != nil {
			line, column = tk.Position.Line, tk.Position.Column
		}

		return &ParseError{Message: yamlErr.GetMessage(), Line: line, Column: column, Err: err}
	}

	return newParseError(err, 0, 0)
}

type goccyBuilder struct {
	doc     *Document
	anchors map[string]Handle
}

//nolint:cyclop,funlen // one case per AST node type
func (b *goccyBuilder) build(node ast.Node) (Handle, error) {
	if node == nil {
		return b.doc.AddScalar(""), nil
	}

	switch n := node.(type) {
	case *ast.AnchorNode:
		h, err := b.build(n.Value)
		if err != nil {
			return 0, err
		}

		if n.Name != nil {
			b.anchors[n.Name.GetToken().Value] = h
		}

		return h, nil
	case *ast.AliasNode:
		name := ""
		if n.Value != nil {
			name = n.Value.GetToken().Value
		}

		h, ok := b.anchors[name]
		if !ok {
			line, column := goccyPosition(n)

			return 0, newParseError(fmt.Errorf("%w %q", ErrUnknownAnchor, name), line, column)
		}

		return h, nil
	case *ast.TagNode:
		return b.build(n.Value)
	case *ast.MappingKeyNode:
		return b.build(n.Value)
	case *ast.MappingNode:
		h := b.doc.AddMapping()
		b.position(h, n)

		for _, pair := range n.Values {
			err := b.appendPair(h, pair)
			if err != nil {
				return 0, err
			}
		}

		return h, nil
	case *ast.MappingValueNode:
		h := b.doc.AddMapping()
		b.position(h, n)

		err := b.appendPair(h, n)
		if err != nil {
			return 0, err
		}

		return h, nil
	case *ast.SequenceNode:
		h := b.doc.AddSequence()
		b.position(h, n)

		for _, item := range n.Values {
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
	case *ast.StringNode:
		return b.scalar(n.Value, n), nil
	case *ast.LiteralNode:
		text := ""
		if n.Value != nil {
			text = n.Value.Value
		}

		return b.scalar(text, n), nil
	case *ast.NullNode, *ast.BoolNode, *ast.IntegerNode, *ast.FloatNode,
		*ast.InfinityNode, *ast.NanNode, *ast.MergeKeyNode:
		text := ""
		if tk := n.GetToken(); tk != nil {
			text = tk.Value
		}

		return b.scalar(text, n), nil
	case *ast.CommentGroupNode, *ast.CommentNode:
		return b.scalar("", n), nil
	default:
		h := b.doc.AddNode(Node{Kind: KindInvalid, Text: node.Type().String()})
		b.position(h, node)

		return h, nil
	}
}

func (b *goccyBuilder) appendPair(mapping Handle, pair *ast.MappingValueNode) error {
	if pair == nil {
		return nil
	}

	var keyNode ast.Node
	if pair.Key != nil {
		keyNode = pair.Key
	}

	key, err := b.build(keyNode)
	if err != nil {
		return err
	}

	val, err := b.build(pair.Value)
	if err != nil {
		return err
	}

	return b.doc.AppendPair(mapping, key, val)
}

func (b *goccyBuilder) scalar(text string, n ast.Node) Handle {
	h := b.doc.AddScalar(text)
	b.position(h, n)

	return h
}

func (b *goccyBuilder) position(h Handle, n ast.Node) {
	line, column := goccyPosition(n)
	b.doc.SetPosition(h, line, column)
}

func goccyPosition(n ast.Node) (int, int) {
	tk := n.GetToken()
	if tk == nil || tk.Position == nil {
		return 0, 0
	}

	return tk.Position.Line, tk.Position.Column
}
