package config

import (
	"sync"
)

const (
	StorageDriverSupabase = "supabase"
	StorageDriverLocal    = "local"
)

type StorageConfig struct {
	Driver   string
	Bucket   string
	LocalDir string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		storageConfig = &StorageConfig{
			Driver:   getEnv("STORAGE_DRIVER", StorageDriverLocal),
			Bucket:   getEnv("STORAGE_BUCKET", "documents"),
			LocalDir: getEnv("STORAGE_LOCAL_DIR", "./uploads"),
		}
	})
	return storageConfig
}
