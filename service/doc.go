// Package service exposes YAML to JSON conversion over HTTP.
//
// POST /v1/convert takes a YAML body and answers with the JSON value of its
// first document. The optional parser query parameter selects the backend
// ("yamlv3", the default, or "goccy"); pretty indents the output. Failures use the JSON
// error body of the middleware package, with status 400 for parse errors,
// 422 for documents that have no JSON form, 413 for oversized bodies or
// exceeded conversion budgets and 405 for methods other than POST.
package service
