package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Username string `form:"username" validate:"required,email"`
	Password string `form:"password,omitempty" validate:"required"`
	Action   string `form:"action" validate:"omitempty,oneof=save cancel"`
}

func TestFromBindError_UsesFormTags(t *testing.T) {
	v := validator.New()
	in := &loginForm{Username: "not-an-email", Action: "explode"}

	fe := FromBindError(v.Struct(in), in)

	require.Equal(t, "Enter a valid email address.", fe["username"])
	require.Equal(t, "This field is required.", fe["password"])
	require.Equal(t, "Must be one of: save cancel.", fe["action"])
}

func TestFromBindError_NonValidationError(t *testing.T) {
	fe := FromBindError(errors.New("strconv failure"), &loginForm{})
	require.Equal(t, FieldErrors{"_": "The submitted form could not be read."}, fe)
}
