package workflows

import (
	"fmt"

	"github.com/PolarWolf314/rsakit/internal/configs"
	"github.com/PolarWolf314/rsakit/internal/keystore"
)

// openStore loads the user config and returns it together with the store at
// storeDir, or at the configured path when storeDir is empty.
func openStore(storeDir string) (*configs.Config, *keystore.Store, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if storeDir == "" {
		storeDir = config.KeysPath()
	}
	return config, keystore.New(storeDir), nil
}
