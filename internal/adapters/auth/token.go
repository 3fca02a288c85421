package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"hospitaladmin/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type jwtVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier returns a TokenVerifier for HS256 tokens signed by the identity provider
// with the shared secret. When issuer is non-empty the iss claim must match it.
func NewJWTVerifier(secret, issuer string) domain.TokenVerifier {
	return &jwtVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *jwtVerifier) Verify(tokenString string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if claims.Subject == "" {
		return "", errors.New("invalid token: missing subject")
	}
	return claims.Subject, nil
}
