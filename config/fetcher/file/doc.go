// Package file provides a DataFetcher that reads a file, or any reader such
// as stdin, once and serves the cached bytes.
//
// It feeds both the service configuration loader and the CLI, which reads
// YAML documents to convert through it.
//
//	fetcher, err := file.NewFetcher("settings.yaml", file.WithMaxBytes(1<<20))()
//	if err != nil {
//	    // not found, directory, too large...
//	}
//	data, err := fetcher.Fetch()
//
// Use errors.Is with ErrPathIsDirectory or ErrTooLarge to tell failures apart.
package file
