package configs

import "fmt"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Storage selects where campaigns, displays and settings live.
type Storage struct {
	// Driver is "memory" or "postgres".
	Driver string `env:"DRIVER" envDefault:"memory"`
	// Seed loads the demo campaigns into an empty memory catalogue.
	Seed bool `env:"SEED" envDefault:"true"`
}

// Validate rejects unknown drivers.
func (c Storage) Validate() error {
	switch c.Driver {
	case StorageMemory, StoragePostgres:
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}
}
