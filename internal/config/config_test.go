package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJwtSecret(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	_, err := Load("api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load("all")
	require.NoError(t, err)

	assert.Equal(t, "all", cfg.RunMode)
	assert.Equal(t, 24*time.Hour, cfg.JwtTTL)
	assert.Equal(t, 3, cfg.SimilarLimit)
	assert.Equal(t, "https://placehold.co/600x400?text=Property+Image", cfg.PlaceholderImageURL)
	assert.NotEmpty(t, cfg.AllowedOrigins)
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SIMILAR_LIMIT", "three")

	_, err := Load("api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIMILAR_LIMIT")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Nil(t, splitList(""))
}
