package identity

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the decoded payload of a verified external token.
type Identity struct {
	UID       string
	Email     string
	ExpiresAt time.Time
	Claims    map[string]any
}

var (
	ErrTokenMissing   = errors.New("token missing")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// Verifier validates an identity token issued by the identity provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	uid, _ := claims["uid"].(string)
	if uid == "" {
		// Providers that put the stable id in the subject claim.
		uid, _ = claims["sub"].(string)
	}
	if uid == "" {
		return nil, ErrTokenInvalid
	}

	email, _ := claims["email"].(string)

	id := &Identity{
		UID:    uid,
		Email:  email,
		Claims: claims,
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}
	return id, nil
}
