package db

import (
	"errors"

	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/repository/memory"
)

// Repositories returns the repository set for the configured backend. Init
// must have run first for the database backends.
func Repositories() (*repository.Repos, error) {
	if config.StoreBackend == config.BackendMemory {
		return memory.NewStore().Repos(), nil
	}
	if DB == nil {
		return nil, errors.New("database is not initialised")
	}
	return repository.NewRepositories(DB), nil
}
