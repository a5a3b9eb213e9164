package convert

import (
	"errors"

	"github.com/0xalexb/yamljson/document"
	"github.com/0xalexb/yamljson/merge"
)

// ErrUnsupportedNodeKind is returned for a node that is not a scalar, sequence or mapping.
var ErrUnsupportedNodeKind = errors.New("unsupported yaml node kind")

// ErrNonScalarKey is returned for a mapping key that is not a scalar after merge resolution.
var ErrNonScalarKey = errors.New("yaml object key must be scalar")

// ErrAllocationFailure is returned when a conversion exceeds its merge or value budget.
var ErrAllocationFailure = merge.ErrAllocationFailure

// Error kinds reported by KindOf.
const (
	KindParse           = "parse"
	KindUnsupportedNode = "unsupported_node_kind"
	KindNonScalarKey    = "non_scalar_key"
	KindAllocation      = "allocation_failure"
	KindInternal        = "internal"
)

// KindOf classifies a conversion error. It returns the empty string for nil.
func KindOf(err error) string {
	var parseErr *document.ParseError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &parseErr):
		return KindParse
	case errors.Is(err, ErrUnsupportedNodeKind):
		return KindUnsupportedNode
	case errors.Is(err, ErrNonScalarKey):
		return KindNonScalarKey
	case errors.Is(err, ErrAllocationFailure):
		return KindAllocation
	default:
		return KindInternal
	}
}
