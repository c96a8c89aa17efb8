package auth

import (
	"testing"
	"time"

	"piquant/config"
	domainerrors "piquant/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenTTL: 24 * time.Hour},
	}
	cfg.SecretKey.Access = secret

	return cfg
}

func TestJWTService_IssueAndVerifyRoundTrip(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.Issue(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, subject)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	subject, err := svc.Verify("clearly-not-a-jwt")
	assert.Equal(t, uuid.Nil, subject)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig("secret_one_very_long_for_testing"))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestConfig("secret_two_very_long_for_testing"))
	require.NoError(t, err)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := &jwtService{
		secret: []byte("test_secret_key_very_long_for_testing"),
		ttl:    24 * time.Hour,
		now:    time.Now,
	}

	userID := uuid.New()
	token, err := svc.Issue(userID)
	require.NoError(t, err)

	// Still valid just before the 24h boundary.
	svc.now = func() time.Time { return time.Now().Add(24*time.Hour - time.Minute) }
	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, subject)

	// Uniform auth error once the expiry has passed, never a subject.
	svc.now = func() time.Time { return time.Now().Add(24*time.Hour + time.Minute) }
	subject, err = svc.Verify(token)
	assert.Equal(t, uuid.Nil, subject)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestJWTService_FailuresAreUniform(t *testing.T) {
	svc := &jwtService{
		secret: []byte("test_secret_key_very_long_for_testing"),
		ttl:    24 * time.Hour,
		now:    time.Now,
	}

	expired, err := svc.Issue(uuid.New())
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

	otherSvc := &jwtService{secret: []byte("a_different_secret_entirely_for_testing"), ttl: time.Hour, now: time.Now}
	forged, err := otherSvc.Issue(uuid.New())
	require.NoError(t, err)

	// Malformed, expired and forged tokens are indistinguishable to callers.
	for _, token := range []string{"garbage", expired, forged} {
		_, verifyErr := svc.Verify(token)
		assert.ErrorIs(t, verifyErr, domainerrors.ErrUnauthenticated)
	}
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(""))
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}
