// Package document holds parsed YAML as an arena of index-addressed nodes.
//
// A Document owns every Node; nodes refer to each other through Handle
// values that stay valid for the lifetime of the Document. There are three
// node kinds: scalars carry raw text, sequences carry item handles and
// mappings carry key/value handle pairs. Aliases in the source resolve to the
// handle of the anchored node, so the node graph may share subtrees.
//
// Two loaders fill a Document: Parse uses github.com/goccy/go-yaml and
// ParseV3 uses gopkg.in/yaml.v3. Both stop at the first document of the
// stream and report parser failures as *ParseError.
//
// The only mutations after loading are AppendPair and ReplacePairs, used by
// merge-key resolution.
package document
