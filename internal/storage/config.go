package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/linskybing/formflow/internal/config"
)

// NewFromConfig returns the object store selected by OBJECT_STORE.
func NewFromConfig(ctx context.Context) (ObjectStore, error) {
	switch config.ObjectStore {
	case "memory":
		log.Println("Using in-memory object store")
		return NewMemoryStore(config.MinioBucket), nil
	case "minio", "":
		return NewMinioStore(ctx, MinioConfig{
			Endpoint:  config.MinioEndpoint,
			AccessKey: config.MinioAccessKey,
			SecretKey: config.MinioSecretKey,
			UseSSL:    config.MinioUseSSL,
			Bucket:    config.MinioBucket,
			PublicURL: config.MinioPublicURL,
		})
	}
	return nil, fmt.Errorf("unknown object store %q", config.ObjectStore)
}
