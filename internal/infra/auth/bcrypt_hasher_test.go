package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshfarm/config"
)

func newHasherConfig(cost int) *config.Config {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{BcryptCost: cost}

	return cfg
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig(4))

	hash, err := hasher.Hash("orchard-lane-12")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "orchard-lane-12", hash)

	assert.True(t, hasher.Check("orchard-lane-12", hash))
	assert.False(t, hasher.Check("wrong-password", hash))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig(4))

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_OutOfRangeCostFallsBackToDefault(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig(99))

	hash, err := hasher.Hash("pw")
	require.NoError(t, err)
	assert.True(t, hasher.Check("pw", hash))
}
