package document

import (
	"errors"
	"fmt"
	"strings"
)

// Parser backend names accepted by LoaderByName.
const (
	BackendGoccy  = "goccy"
	BackendYAMLv3 = "yamlv3"

	// DefaultBackend is the libyaml port, which accepts non-scalar keys for
	// the converter to reject and only the %YAML 1.1 directive.
	DefaultBackend = BackendYAMLv3
)

// ErrUnknownBackend is returned for a parser backend name that is not registered.
var ErrUnknownBackend = errors.New("unknown parser backend")

// Loader turns YAML text into a Document.
type Loader func(text string) (*Document, error)

// CanonicalBackend resolves a backend name or alias, case-insensitively.
// The empty name selects DefaultBackend.
func CanonicalBackend(name string) (string, error) {
	switch strings.ToLower(name) {
	case "":
		return DefaultBackend, nil
	case BackendGoccy, "go-yaml":
		return BackendGoccy, nil
	case BackendYAMLv3, "yaml.v3", "v3":
		return BackendYAMLv3, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// LoaderByName returns the loader for a backend name, see CanonicalBackend.
func LoaderByName(name string) (Loader, error) {
	backend, err := CanonicalBackend(name)
	if err != nil {
		return nil, err
	}

	if backend == BackendYAMLv3 {
		return ParseV3, nil
	}

	return Parse, nil
}
