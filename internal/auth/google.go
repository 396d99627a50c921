package auth

import (
	"errors"
	"slices"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

var ErrGoogleDisabled = errors.New("google login is not configured")

// IDTokenVerifier turns a Google ID token into a principal.
type IDTokenVerifier interface {
	Verify(idToken string) (*Principal, error)
}

type googleVerifier struct {
	clientID    string
	adminEmails []string
}

// NewGoogleVerifier checks ID tokens issued for clientID. Accounts listed in
// adminEmails get the admin role, everybody else the user role.
func NewGoogleVerifier(clientID string, adminEmails []string) IDTokenVerifier {
	return &googleVerifier{clientID: clientID, adminEmails: adminEmails}
}

func (g *googleVerifier) Verify(idToken string) (*Principal, error) {
	if g.clientID == "" {
		return nil, ErrGoogleDisabled
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{g.clientID}); err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	return googlePrincipal(claimSet.Email, claimSet.Name, claimSet.Picture, g.adminEmails), nil
}

func googlePrincipal(email, name, picture string, adminEmails []string) *Principal {
	if name == "" {
		name = email
	}
	if picture == "" {
		picture = AvatarURL(name)
	}
	roles := []string{RoleUser}
	if slices.ContainsFunc(adminEmails, func(e string) bool { return strings.EqualFold(e, email) }) {
		roles = []string{RoleAdmin}
	}
	return &Principal{
		Name:    name,
		Email:   email,
		Picture: picture,
		Roles:   roles,
	}
}
