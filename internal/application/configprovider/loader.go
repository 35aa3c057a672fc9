// Package configprovider defines the application-level port for loading
// configuration.
package configprovider

import "github.com/Mounadi05/taskmaster/internal/domain/config"

// Loader loads a Config snapshot from a source path. Infrastructure
// adapters (e.g. the Viper-backed YAML provider) implement this; the core
// never parses configuration itself.
type Loader interface {
	// Load reads and validates configuration from path.
	Load(path string) (*config.Config, error)
}
