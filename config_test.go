package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigRecognizedKeys(t *testing.T) {
	cfg, err := NewConfig("db.internal", 3306, "orders", "svc", "secret", map[string]string{
		"createDB":            "true",
		"enableBlobStreaming": "TRUE",
		"unknownOption":       "ignored",
	})
	require.NoError(t, err)
	assert.True(t, cfg.CreateDB)
	assert.True(t, cfg.EnableBlobStreaming)
	assert.Equal(t, "orders", cfg.Database)
}

func TestNewConfigDefaultsFalse(t *testing.T) {
	cfg, err := NewConfig("db.internal", 3306, "", "", "", nil)
	require.NoError(t, err)
	assert.False(t, cfg.CreateDB)
	assert.False(t, cfg.EnableBlobStreaming)
}
