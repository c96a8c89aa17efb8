package auth

import (
	"testing"

	"piquant/config"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *bcryptHasher {
	// MinCost keeps the test fast; the production cost comes from config.
	return &bcryptHasher{cost: bcrypt.MinCost}
}

func TestBcryptHasher_HashRoundTrip(t *testing.T) {
	hasher := newTestHasher()

	password := "correct horse battery staple"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("wrong password", hash))
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := newTestHasher()

	first, err := hasher.Hash("same input")
	assert.NoError(t, err)
	second, err := hasher.Hash("same input")
	assert.NoError(t, err)

	// Per-call random salt: identical plaintexts never share a hash.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("same input", first))
	assert.True(t, hasher.Check("same input", second))
}

func TestBcryptHasher_CheckRejectsGarbage(t *testing.T) {
	hasher := newTestHasher()

	assert.False(t, hasher.Check("anything", "not a bcrypt hash"))
	assert.False(t, hasher.Check("", ""))
}

func TestNewBcryptHasher_CostFromConfig(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}

	hasher := NewBcryptHasher(cfg)
	impl, ok := hasher.(*bcryptHasher)
	assert.True(t, ok)
	assert.Equal(t, bcrypt.MinCost, impl.cost)
}

func TestNewBcryptHasher_DefaultsWithoutConfig(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})
	impl, ok := hasher.(*bcryptHasher)
	assert.True(t, ok)
	assert.Equal(t, bcrypt.DefaultCost, impl.cost)
}
