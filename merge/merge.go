package merge

import (
	"errors"
	"fmt"

	"github.com/0xalexb/yamljson/document"
)

// MergeKey is the scalar text that marks a merge pair.
const MergeKey = "<<"

// ErrAllocationFailure is returned when resolving a mapping would exceed the
// resolver's pair budget. The mapping is left unchanged.
var ErrAllocationFailure = errors.New("merge bookkeeping exceeds pair budget")

// Resolver splices merge-key sources into mappings.
type Resolver struct {
	// MaxPairs bounds the size of a resolved pair list. Zero means no limit.
	MaxPairs int
}

// Result describes what one Resolve call did.
type Result struct {
	// MergeKeys is the number of "<<" pairs removed.
	MergeKeys int
	// Sources is the number of mappings merged in.
	Sources int
	// Added is the number of pairs copied from sources into the target.
	Added int
}

// Resolve resolves the mapping at h with a zero-value Resolver.
func Resolve(doc *document.Document, h document.Handle) (Result, error) {
	return (&Resolver{}).Resolve(doc, h)
}

// Resolve replaces the "<<" pairs of the mapping at h with the pairs of the
// mappings they reference. Keys already present, explicitly or from an earlier
// source, are never overridden. Non-mapping handles are left untouched.
func (r *Resolver) Resolve(doc *document.Document, h document.Handle) (Result, error) {
	if doc.Kind(h) != document.KindMapping {
		return Result{}, nil
	}

	pairs, err := doc.Pairs(h)
	if err != nil {
		return Result{}, fmt.Errorf("reading mapping %d: %w", h, err)
	}

	sources, kept, mergeKeys := collect(doc, pairs)
	if mergeKeys == 0 {
		return Result{}, nil
	}

	resolved, added, err := r.splice(doc, kept, sources)
	if err != nil {
		return Result{}, err
	}

	err = doc.ReplacePairs(h, resolved)
	if err != nil {
		return Result{}, fmt.Errorf("replacing pairs of mapping %d: %w", h, err)
	}

	return Result{MergeKeys: mergeKeys, Sources: len(sources), Added: added}, nil
}

// collect splits pairs into the merge sources, in document order, and the
// pairs that survive in the target.
func collect(doc *document.Document, pairs []document.Pair) ([]document.Handle, []document.Pair, int) {
	var sources []document.Handle

	kept := make([]document.Pair, 0, len(pairs))
	mergeKeys := 0

	for _, pair := range pairs {
		if !IsMergeKey(doc, pair.Key) {
			kept = append(kept, pair)

			continue
		}

		mergeKeys++

		switch doc.Kind(pair.Value) {
		case document.KindMapping:
			sources = append(sources, pair.Value)
		case document.KindSequence:
			node, _ := doc.Node(pair.Value)
			for _, item := range node.Items {
				if doc.Kind(item) == document.KindMapping {
					sources = append(sources, item)
				}
			}
		}
	}

	return sources, kept, mergeKeys
}

// splice appends every source pair whose scalar key is not yet present in
// the growing target. The target's own "<<" keys count as present, so an
// unresolved source never reintroduces one. The result is a new slice; kept
// is not modified.
func (r *Resolver) splice(doc *document.Document, kept []document.Pair, sources []document.Handle) ([]document.Pair, int, error) {
	if r.MaxPairs > 0 && len(kept) > r.MaxPairs {
		return nil, 0, fmt.Errorf("%w: %d explicit pairs, limit %d", ErrAllocationFailure, len(kept), r.MaxPairs)
	}

	seen := make(map[string]struct{}, len(kept)+1)
	seen[MergeKey] = struct{}{}

	for _, pair := range kept {
		if text, ok := doc.ScalarText(pair.Key); ok {
			seen[text] = struct{}{}
		}
	}

	resolved := make([]document.Pair, len(kept))
	copy(resolved, kept)

	added := 0

	for _, source := range sources {
		sourcePairs, err := doc.Pairs(source)
		if err != nil {
			return nil, 0, fmt.Errorf("reading merge source %d: %w", source, err)
		}

		for _, pair := range sourcePairs {
			text, isScalar := doc.ScalarText(pair.Key)
			if isScalar {
				if _, exists := seen[text]; exists {
					continue
				}

				seen[text] = struct{}{}
			}

			if r.MaxPairs > 0 && len(resolved) >= r.MaxPairs {
				return nil, 0, fmt.Errorf("%w: limit %d", ErrAllocationFailure, r.MaxPairs)
			}

			resolved = append(resolved, pair)
			added++
		}
	}

	return resolved, added, nil
}

// IsMergeKey reports whether h is a scalar whose text is exactly "<<".
func IsMergeKey(doc *document.Document, h document.Handle) bool {
	text, ok := doc.ScalarText(h)

	return ok && text == MergeKey
}
