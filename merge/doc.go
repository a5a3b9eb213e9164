// Package merge resolves YAML "<<" merge keys on document mappings.
//
// For a target mapping, every pair whose key is the scalar "<<" is removed;
// its value, a mapping or a sequence of mappings, names the merge sources.
// Sources are applied in document order, then in sequence order, and a source
// pair is appended only when the target does not already hold a scalar key
// with the same text. Explicit keys therefore always win, and earlier sources
// win over later ones. Non-scalar keys in a source never collide.
//
// A resolution computes the complete new pair list before swapping it into
// the document, so a failure leaves the mapping as it was.
package merge
