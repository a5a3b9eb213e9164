// Command yamljson converts YAML documents to JSON, resolving << merge keys
// and typing scalars the way JSON expects.
//
// Usage:
//
//	# Convert a file, or stdin when the file is omitted or "-"
//	yamljson convert config.yaml --indent 2
//
//	# Re-convert on every save
//	yamljson watch config.yaml
//
//	# Serve POST /v1/convert over HTTP
//	yamljson serve --config yamljson.yaml
//
//	# Show build information
//	yamljson version
package main

import (
	"fmt"
	"os"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
