package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "academic-service"

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Picture string   `json:"picture,omitempty"`
	Roles   []string `json:"roles"`
	jwt.RegisteredClaims
}

// Tokens signs and checks session tokens with HS256.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) TTL() time.Duration {
	return t.ttl
}

func (t *Tokens) Issue(p *Principal) (string, error) {
	now := t.now()
	claims := Claims{
		Name:    p.Name,
		Email:   p.Email,
		Picture: p.Picture,
		Roles:   p.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Email,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *Tokens) Parse(tokenString string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &Principal{
		Name:    claims.Name,
		Email:   claims.Email,
		Picture: claims.Picture,
		Roles:   claims.Roles,
	}, nil
}
