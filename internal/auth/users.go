package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// User is a form login account. Password may be plain text or a bcrypt hash;
// plain text is hashed when the store is built.
type User struct {
	Username string
	Password string
	Roles    []string
}

type account struct {
	hash  []byte
	roles []string
}

// Users checks form login credentials against a fixed set of accounts.
type Users struct {
	accounts map[string]account
}

func NewUsers(users []User) (*Users, error) {
	accounts := make(map[string]account, len(users))
	for _, u := range users {
		if u.Username == "" {
			return nil, errors.New("user without username")
		}

		hash := []byte(u.Password)
		if !isBcrypt(u.Password) {
			var err error
			hash, err = bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("hash password of %s: %w", u.Username, err)
			}
		}

		roles := make([]string, 0, len(u.Roles))
		for _, r := range u.Roles {
			roles = append(roles, normalizeRole(r))
		}
		accounts[u.Username] = account{hash: hash, roles: roles}
	}
	return &Users{accounts: accounts}, nil
}

// Authenticate returns the principal of a form login user.
func (u *Users) Authenticate(username, password string) (*Principal, error) {
	acc, ok := u.accounts[username]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &Principal{
		Name:    username,
		Email:   username + "@example.com",
		Picture: AvatarURL(username),
		Roles:   append([]string(nil), acc.roles...),
	}, nil
}

func isBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// normalizeRole accepts "ADMIN" as well as "ROLE_ADMIN".
func normalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	if strings.HasPrefix(role, "ROLE_") {
		return role
	}
	return "ROLE_" + role
}
