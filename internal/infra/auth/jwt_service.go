// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"piquant/config"
	domainerrors "piquant/internal/domain/errors"
	"piquant/internal/domain/service"
	"piquant/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte        // Secret key for signing tokens.
	ttl    time.Duration // Time-to-live for issued tokens.
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := 24 * time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue creates a signed token carrying the subject identity with an
// expiry the configured duration out.
func (s *jwtService) Issue(userID uuid.UUID) (string, error) {
	issuedAt := s.now()
	claims := jwt.MapClaims{
		"sub": userID.String(),            // Subject (who the token is for)
		"iat": issuedAt.Unix(),            // Issued At
		"exp": issuedAt.Add(s.ttl).Unix(), // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", domainerrors.ErrTokenSigningFailed.WrapMessage(err.Error())
	}

	return signed, nil
}

// Verify checks signature integrity and expiry and extracts the subject.
// Malformed tokens, bad signatures and expired tokens all collapse into the
// same uniform ErrUnauthenticated so nothing about the failure leaks out.
func (s *jwtService) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) {
			// Ensure the signing method is what we expect.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return s.secret, nil
		},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return uuid.Nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	return userID, nil
}
