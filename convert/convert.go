package convert

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/0xalexb/yamljson/document"
	"github.com/0xalexb/yamljson/merge"
	"github.com/0xalexb/yamljson/scalar"
	"github.com/0xalexb/yamljson/value"
)

// YAMLToJSON parses text with the default parser and converts its first
// document into a JSON value.
func YAMLToJSON(text string) (value.Value, error) {
	return defaultConverter.Convert(text)
}

// Convert converts the subtree rooted at h, resolving merge keys of every
// mapping as it is reached. The document is modified in place.
func Convert(doc *document.Document, h document.Handle) (value.Value, error) {
	w := &walker{doc: doc, resolver: &merge.Resolver{}}

	return w.convert(h)
}

//nolint:gochecknoglobals // stateless converter shared by YAMLToJSON
var defaultConverter = &Converter{loader: document.ParseV3, backend: document.DefaultBackend, logger: nil}

// Converter converts YAML text with a configured parser backend and budgets.
// It holds no per-call state and is safe for concurrent use.
type Converter struct {
	loader        document.Loader
	backend       string
	maxMergePairs int
	maxValues     int
	logger        *slog.Logger
}

// NewConverter creates a Converter. Without options it behaves like YAMLToJSON.
func NewConverter(opts ...Option) (*Converter, error) {
	conv := &Converter{backend: document.DefaultBackend}

	for _, apply := range opts {
		apply(conv)
	}

	if conv.loader == nil {
		backend, err := document.CanonicalBackend(conv.backend)
		if err != nil {
			return nil, err
		}

		conv.backend = backend
		conv.loader, _ = document.LoaderByName(backend)
	}

	if conv.maxMergePairs < 0 || conv.maxValues < 0 {
		return nil, ErrNegativeLimit
	}

	return conv, nil
}

// Backend returns the parser backend name.
func (c *Converter) Backend() string {
	return c.backend
}

// Convert parses text and converts the root of its first document.
func (c *Converter) Convert(text string) (value.Value, error) {
	start := time.Now()

	doc, err := c.loader(text)
	if err != nil {
		return value.Value{}, err
	}

	w := &walker{
		doc:       doc,
		resolver:  &merge.Resolver{MaxPairs: c.maxMergePairs},
		maxValues: c.maxValues,
	}

	result, err := w.convert(doc.Root())
	if err != nil {
		return value.Value{}, err
	}

	if c.logger != nil {
		c.logger.Debug("yaml converted",
			slog.String("parser", c.backend),
			slog.Int("nodes", doc.Len()),
			slog.Int("values", w.values),
			slog.Int("merge_keys", w.mergeKeys),
			slog.Int("merged_pairs", w.mergedPairs),
			slog.Duration("duration", time.Since(start)),
		)
	}

	return result, nil
}

// walker holds the state of one conversion.
type walker struct {
	doc         *document.Document
	resolver    *merge.Resolver
	maxValues   int
	values      int
	mergeKeys   int
	mergedPairs int
}

func (w *walker) convert(h document.Handle) (value.Value, error) {
	node, ok := w.doc.Node(h)
	if !ok {
		return value.Value{}, fmt.Errorf("%w: handle %d not in document", ErrUnsupportedNodeKind, h)
	}

	w.values++
	if w.maxValues > 0 && w.values > w.maxValues {
		return value.Value{}, fmt.Errorf("%w: more than %d values", ErrAllocationFailure, w.maxValues)
	}

	switch node.Kind {
	case document.KindScalar:
		return scalar.Infer(node.Text), nil
	case document.KindSequence:
		return w.sequence(node.Items)
	case document.KindMapping:
		return w.mapping(h)
	default:
		return value.Value{}, w.nodeError(ErrUnsupportedNodeKind, node)
	}
}

func (w *walker) sequence(items []document.Handle) (value.Value, error) {
	out := make([]value.Value, 0, len(items))

	for _, item := range items {
		v, err := w.convert(item)
		if err != nil {
			return value.Value{}, err
		}

		out = append(out, v)
	}

	return value.Array(out...), nil
}

func (w *walker) mapping(h document.Handle) (value.Value, error) {
	result, err := w.resolver.Resolve(w.doc, h)
	if err != nil {
		return value.Value{}, fmt.Errorf("resolving merge keys: %w", err)
	}

	w.mergeKeys += result.MergeKeys
	w.mergedPairs += result.Added

	pairs, err := w.doc.Pairs(h)
	if err != nil {
		return value.Value{}, fmt.Errorf("reading mapping: %w", err)
	}

	obj := value.NewObjectBuilder(len(pairs))

	for _, pair := range pairs {
		key, isScalar := w.doc.ScalarText(pair.Key)
		if !isScalar {
			keyNode, _ := w.doc.Node(pair.Key)

			return value.Value{}, w.nodeError(ErrNonScalarKey, keyNode)
		}

		v, err := w.convert(pair.Value)
		if err != nil {
			return value.Value{}, err
		}

		obj.Set(key, v)
	}

	return obj.Build(), nil
}

func (w *walker) nodeError(sentinel error, node *document.Node) error {
	if node == nil {
		return sentinel
	}

	if node.Line > 0 {
		return fmt.Errorf("%w: %s node at line %d, column %d", sentinel, node.Kind, node.Line, node.Column)
	}

	return fmt.Errorf("%w: %s node", sentinel, node.Kind)
}
