package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tempo/pkg/model"
)

var ErrInvalidToken = errors.New("invalid access token")

// Issuer signs and verifies HS256 access tokens carrying the caller's
// identity. The same secret must be used for both directions.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token for the given user with sub, email, role,
// iat and exp claims.
func (i *Issuer) Issue(user *model.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify parses the raw token, checks the signature and expiry, and
// returns the identity embedded in the claims.
func (i *Issuer) Verify(raw string) (model.Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return model.Identity{}, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return model.Identity{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return model.Identity{}, ErrInvalidToken
	}

	return model.Identity{UserID: sub, Email: email, Role: role}, nil
}
