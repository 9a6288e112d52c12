package dto

import (
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/user-service/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Signup(t *testing.T) {
	tests := []struct {
		name       string
		req        SignupRequest
		wantFields []string
	}{
		{name: "valid", req: SignupRequest{Email: "a@b.com", Password: "secret"}},
		{name: "missing email", req: SignupRequest{Password: "secret"}, wantFields: []string{"email"}},
		{name: "bad email", req: SignupRequest{Email: "not-an-email", Password: "secret"}, wantFields: []string{"email"}},
		{name: "missing both", req: SignupRequest{}, wantFields: []string{"email", "password"}},
		{name: "password too long", req: SignupRequest{Email: "a@b.com", Password: strings.Repeat("x", 73)}, wantFields: []string{"password"}},
		{name: "password at byte limit", req: SignupRequest{Email: "a@b.com", Password: strings.Repeat("x", 72)}},
		{name: "multibyte password over byte limit", req: SignupRequest{Email: "a@b.com", Password: strings.Repeat("é", 40)}, wantFields: []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.req)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ae *apperr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, apperr.KindValidation, ae.Kind)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Len(t, ae.Fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, ae.Fields, f)
			}
		})
	}
}

func TestValidate_Login(t *testing.T) {
	err := Validate(&LoginRequest{Email: "a@b.com"})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "must not be blank", ae.Fields["password"])
}

func TestValidate_PasswordByteLimitMessage(t *testing.T) {
	err := Validate(&SignupRequest{Email: "a@b.com", Password: strings.Repeat("é", 40)})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "must be at most 72 bytes", ae.Fields["password"])
}
