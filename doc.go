// Package yamljson wires the YAML to JSON conversion service together.
//
// The conversion itself lives in package convert (YAMLToJSON). This package
// composes logging, configuration, the HTTP service and its listener into an
// Fx application:
//
//	app := yamljson.NewApp(yamljson.WithConfigFile("yamljson.yaml"))
//	app.Run()
package yamljson
