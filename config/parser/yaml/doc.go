// Package yaml implements config.Parser with github.com/goccy/go-yaml.
//
// Colon-separated paths such as "service:log" are mapped to goccy/go-yaml
// path expressions ("$.service.log"); the selected node is then decoded into
// the target. WithStrict makes unknown keys an error.
//
//	parser := yaml.NewParser(yaml.WithStrict())
//	var cfg config.ServiceConfig
//	err := parser.Parse(data, &cfg, "service")
package yaml
