package testutils

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/api/middleware"
	"github.com/linskybing/formflow/internal/api/routes"
	"github.com/linskybing/formflow/internal/idempotency"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/repository/memory"
	"github.com/linskybing/formflow/internal/storage"
)

// TestEnv is a router wired to in-process backends.
type TestEnv struct {
	Router  *gin.Engine
	Repos   *repository.Repos
	Store   *memory.Store
	Objects *storage.MemoryStore
	Replay  *idempotency.MemoryStore
}

func SetupRouter() *gin.Engine {
	return SetupEnv().Router
}

func SetupEnv(opts ...memory.Option) *TestEnv {
	store := memory.NewStore(opts...)
	return SetupEnvWithRepos(store.Repos(), store)
}

// SetupEnvWithRepos wires the router to repos. store may be nil when repos
// is not memory-backed.
func SetupEnvWithRepos(repos *repository.Repos, store *memory.Store) *TestEnv {
	gin.SetMode(gin.TestMode)
	middleware.Init()

	env := &TestEnv{
		Router:  gin.New(),
		Repos:   repos,
		Store:   store,
		Objects: storage.NewMemoryStore("test-uploads"),
		Replay:  idempotency.NewMemoryStore(),
	}
	routes.RegisterRoutes(env.Router, repos, env.Objects, env.Replay)
	return env
}
