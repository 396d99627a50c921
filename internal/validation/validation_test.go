package validation_test

import (
	"testing"

	"academic-service/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name  string `json:"name" validate:"required,alphaspace"`
	Email string `json:"email" validate:"required,email"`
	Batch int    `json:"batch" validate:"required,min=2010,max=2030"`
	SKS   int    `json:"sks" validate:"omitempty,min=1,max=6"`
}

func TestValidator(t *testing.T) {
	v := validation.New()

	t.Run("Valid", func(t *testing.T) {
		err := v.Struct(&form{Name: "Budi Santoso", Email: "budi@x.com", Batch: 2023})
		assert.NoError(t, err)
	})

	t.Run("FieldMessages", func(t *testing.T) {
		err := v.Struct(&form{Name: "Budi99", Email: "nope", Batch: 2031, SKS: 9})
		require.Error(t, err)

		fieldErrs, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Equal(t, "Name must contain only letters (a-z, A-Z) and spaces", fieldErrs["name"])
		assert.Equal(t, "Email must be a valid email format", fieldErrs["email"])
		assert.Equal(t, "Batch must not exceed 2030", fieldErrs["batch"])
		assert.Equal(t, "SKS must not exceed 6", fieldErrs["sks"])
	})

	t.Run("Required", func(t *testing.T) {
		err := v.Struct(&form{})
		fieldErrs, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Equal(t, "Name is required", fieldErrs["name"])
		assert.Equal(t, "Batch is required", fieldErrs["batch"])
		assert.NotContains(t, fieldErrs, "sks")
	})
}
