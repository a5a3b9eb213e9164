// Package config loads the settings of the conversion service.
//
// Loading goes through four extension points:
//   - Parser: decodes raw data into a struct, with path navigation
//   - DataFetcher: retrieves raw data (a file, stdin)
//   - Defaulter: fills in missing values
//   - Validator: rejects unusable values
//
// Paths use colon (:) as the separator:
//
//	"service"          -> config["service"]
//	"service:log"      -> config["service"]["log"]
//	""                 -> entire document
//
// A typical service configuration file:
//
//	service:
//	  listen: ":9000"
//	  parser: goccy
//	  max_body_bytes: 2097152
//	  log:
//	    level: debug
//
// loaded with
//
//	provider := config.Provider(&config.ServiceConfig{}, "service")
//	cfg, err := provider(yamlparser.NewParser(), fetcher)
package config
