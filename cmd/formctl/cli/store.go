package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/config/db"
	"github.com/linskybing/formflow/internal/repository"
)

// openRepos connects to the configured durable backend. The returned func
// closes the connection.
func openRepos() (*repository.Repos, func(), error) {
	if config.StoreBackend == config.BackendMemory {
		return nil, nil, errors.New("the memory backend keeps nothing between runs; use --backend postgres or sqlite")
	}

	gormDB, err := db.Open(config.StoreBackend)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", config.StoreBackend, err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(gormDB); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return repository.NewRepositories(gormDB), func() { _ = sqlDB.Close() }, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
