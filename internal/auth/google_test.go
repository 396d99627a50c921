package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGooglePrincipal(t *testing.T) {
	admins := []string{"Kaprodi@Kampus.ac.id"}

	t.Run("KeepsProfilePicture", func(t *testing.T) {
		p := googlePrincipal("budi@gmail.com", "Budi Santoso", "https://lh3.googleusercontent.com/a/budi", admins)

		assert.Equal(t, "https://lh3.googleusercontent.com/a/budi", p.Picture)
		assert.Equal(t, "Budi Santoso", p.Name)
		assert.Equal(t, []string{RoleUser}, p.Roles)
	})

	t.Run("GeneratesAvatarWithoutPicture", func(t *testing.T) {
		p := googlePrincipal("kaprodi@kampus.ac.id", "Kaprodi", "", admins)

		assert.Equal(t, AvatarURL("Kaprodi"), p.Picture)
		assert.Equal(t, []string{RoleAdmin}, p.Roles)
	})

	t.Run("FallsBackToEmailForName", func(t *testing.T) {
		p := googlePrincipal("siti@gmail.com", "", "", nil)

		assert.Equal(t, "siti@gmail.com", p.Name)
		assert.Equal(t, AvatarURL("siti@gmail.com"), p.Picture)
	})
}
