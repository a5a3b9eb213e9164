// Package convert turns YAML text into JSON values.
//
// The conversion walks a document.Document from its root. Scalars are typed
// by package scalar, sequences become arrays and mappings become objects.
// Merge keys of each mapping are resolved by package merge at the moment the
// walk reaches that mapping, so nested merges are resolved independently.
//
// A root scalar converts to a bare JSON scalar. Duplicate keys in a mapping
// keep the value of the last pair. A non-scalar key fails the conversion with
// ErrNonScalarKey.
//
// Usage:
//
//	v, err := convert.YAMLToJSON("a: 1\nb: [x, y]\n")
//	if err != nil {
//	    return err
//	}
//	data, _ := json.Marshal(v) // {"a":1,"b":["x","y"]}
package convert
