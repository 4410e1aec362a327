package auth

import (
	"strings"
	"testing"

	"medcare/config"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasherConfig(cost int) *config.Config {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{BcryptCost: cost}

	return cfg
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(newTestHasherConfig(bcrypt.MinCost))

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_CheckWithWrongPassword(t *testing.T) {
	hasher := NewBcryptHasher(newTestHasherConfig(bcrypt.MinCost))

	hash, err := hasher.Hash("CorrectPassword123!")
	assert.NoError(t, err)

	assert.False(t, hasher.Check("WrongPassword123!", hash))
	assert.False(t, hasher.Check("", hash))
}

func TestBcryptHasher_CheckWithInvalidHash(t *testing.T) {
	hasher := NewBcryptHasher(newTestHasherConfig(bcrypt.MinCost))

	assert.False(t, hasher.Check("AnyPassword123!", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("AnyPassword123!", ""))
}

func TestBcryptHasher_HashUniqueness(t *testing.T) {
	hasher := NewBcryptHasher(newTestHasherConfig(bcrypt.MinCost))

	password := "SamePassword123!"
	hash1, err := hasher.Hash(password)
	assert.NoError(t, err)
	hash2, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Each hash carries a fresh salt, yet both verify.
	assert.NotEqual(t, hash1, hash2)
	assert.True(t, hasher.Check(password, hash1))
	assert.True(t, hasher.Check(password, hash2))
}

func TestBcryptHasher_CostClamping(t *testing.T) {
	cases := []struct {
		name string
		cost int
		want int
	}{
		{name: "below range falls back to default", cost: 0, want: bcrypt.DefaultCost},
		{name: "above range falls back to default", cost: 99, want: bcrypt.DefaultCost},
		{name: "in range is honored", cost: bcrypt.MinCost, want: bcrypt.MinCost},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hasher := NewBcryptHasher(newTestHasherConfig(tc.cost))

			bcryptHasher, ok := hasher.(*bcryptHasher)
			assert.True(t, ok)
			assert.Equal(t, tc.want, bcryptHasher.cost)
		})
	}
}

func TestBcryptHasher_NilAuthConfig(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	hash, err := hasher.Hash("Password123!")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
}
