package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/business-central-sdk/bcschema/internal/cache"
	"github.com/business-central-sdk/bcschema/internal/cli/config"
)

func TestOpenCache_DefaultsToNone(t *testing.T) {
	cfg, err := config.Load(writeFile(t, "bcschema.yaml", "log:\n  level: warn\n"))
	require.NoError(t, err)

	snapshots, closeCache, err := openCache(context.Background(), cfg)
	require.NoError(t, err)
	defer closeCache()
	assert.Nil(t, snapshots)
}

func TestOpenCache_Memory(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Backend: "memory", Prefix: "test:"}}

	snapshots, closeCache, err := openCache(context.Background(), cfg)
	require.NoError(t, err)
	defer closeCache()
	assert.IsType(t, &cache.MemoryCache{}, snapshots)
}
