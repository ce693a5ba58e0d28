package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsafe/safecheck"
)

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidatorValid(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&loginInput{Email: "inspector@example.com", Password: "longenough"})
	assert.NoError(t, err)
}

func TestValidatorFieldErrors(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&loginInput{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	assert.Equal(t, safecheck.EINVALID, safecheck.ErrorCode(err))
	fields := safecheck.ErrorFields(err)
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at least 8 characters", fields["password"])
}
