package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const (
	DraftStoreRedis  = "redis"
	DraftStoreMemory = "memory"
)

type DraftConfig struct {
	Store          string
	SessionTTL     time.Duration
	UploadMaxBytes int64
}

var (
	draftConfig *DraftConfig
	draftOnce   sync.Once
)

func LoadDraftConfig() *DraftConfig {
	draftOnce.Do(func() {
		ttl := 24 * time.Hour
		if raw := os.Getenv("DRAFT_SESSION_TTL"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				log.Warnf("invalid DRAFT_SESSION_TTL %q, using %s", raw, ttl)
			} else {
				ttl = parsed
			}
		}
		maxBytes := int64(5 * 1024 * 1024)
		if raw := os.Getenv("UPLOAD_MAX_BYTES"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed <= 0 {
				log.Warnf("invalid UPLOAD_MAX_BYTES %q, using %d", raw, maxBytes)
			} else {
				maxBytes = parsed
			}
		}
		draftConfig = &DraftConfig{
			Store:          getEnv("DRAFT_STORE", DraftStoreMemory),
			SessionTTL:     ttl,
			UploadMaxBytes: maxBytes,
		}
	})
	return draftConfig
}
