package config

import (
	"os"
	"strings"
	"sync"
)

// SupabaseConfig points at the hosted backend that owns auth and object storage.
type SupabaseConfig struct {
	URL        string
	AnonKey    string
	ServiceKey string
}

var (
	supabaseConfig *SupabaseConfig
	supabaseOnce   sync.Once
)

func LoadSupabaseConfig() *SupabaseConfig {
	supabaseOnce.Do(func() {
		supabaseConfig = &SupabaseConfig{
			URL:        strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
			AnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
			ServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		}
	})
	return supabaseConfig
}

// Key returns the service key when present, the anon key otherwise.
func (c *SupabaseConfig) Key() string {
	if c.ServiceKey != "" {
		return c.ServiceKey
	}
	return c.AnonKey
}
