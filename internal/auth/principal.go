// Package auth handles form and Google sign-in, the JWT session cookie and
// the role gates in front of the API.
package auth

import (
	"context"
	"net/url"
	"slices"
	"strings"
)

const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// Principal is the signed-in user as carried by the session token.
type Principal struct {
	Name    string
	Email   string
	Picture string
	Roles   []string
}

func (p *Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

func (p *Principal) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if p.HasRole(role) {
			return true
		}
	}
	return false
}

func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// UserInfo is the body of GET /api/user.
type UserInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	Roles   string `json:"roles"`
	IsAdmin bool   `json:"isAdmin"`
}

func (p *Principal) Info() UserInfo {
	return UserInfo{
		Name:    p.Name,
		Email:   p.Email,
		Picture: p.Picture,
		Roles:   strings.Join(p.Roles, ","),
		IsAdmin: p.IsAdmin(),
	}
}

// AvatarURL is the generated picture for users without one.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name)
}

type contextKey string

const principalKey contextKey = "principal"

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom extracts the signed-in user from ctx.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}
