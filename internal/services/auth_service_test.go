package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/user-service/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/models"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/repository"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/testdb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAddresses struct {
	out []models.Address
	err error
}

func (f *fakeAddresses) GetAddresses(context.Context, uuid.UUID) ([]models.Address, error) {
	return f.out, f.err
}

type authFixture struct {
	svc       *AuthService
	stores    *repository.Stores
	issuer    *TokenIssuer
	addresses *fakeAddresses
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	stores := repository.NewStores(testdb.New(t))
	hasher := NewPasswordHasher(bcrypt.MinCost)
	issuer := NewHMACTokenIssuer([]byte("test-secret"), "test", 15*time.Minute, time.Hour)
	addresses := &fakeAddresses{}
	svc := NewAuthService(stores, hasher, NewCredentialAuthenticator(stores.Credentials, hasher), issuer, addresses)
	return &authFixture{svc: svc, stores: stores, issuer: issuer, addresses: addresses}
}

func (f *authFixture) signup(t *testing.T, email, password string) *dto.AuthResponse {
	t.Helper()
	resp, err := f.svc.Signup(context.Background(), &dto.SignupRequest{Name: "Test", Email: email, Password: password})
	require.NoError(t, err)
	return resp
}

func requireAppErr(t *testing.T, err error) *apperr.Error {
	t.Helper()
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	return ae
}

func TestSignup_CreatesUserCredentialsAndOneToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp := f.signup(t, "a@b.com", "secret")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	creds, err := f.stores.Credentials.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", creds.PasswordHash)

	user, err := f.svc.GetProfile(ctx, resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, user.Status)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "a@b.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())

	valid, err := f.stores.Tokens.FindAllValid(ctx, resp.UserID)
	require.NoError(t, err)
	require.Len(t, valid, 1)
	assert.Equal(t, resp.AccessToken, valid[0].Value)
	assert.Equal(t, models.TokenTypeBearer, valid[0].TokenType)

	id, err := f.issuer.Validate(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, id.UserID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	first := f.signup(t, "a@b.com", "secret")

	_, err := f.svc.Signup(ctx, &dto.SignupRequest{Email: "A@B.com ", Password: "other"})
	ae := requireAppErr(t, err)
	assert.Equal(t, apperr.KindBusiness, ae.Kind)
	assert.Equal(t, apperr.CodeBusiness, ae.Code)

	user, err := f.stores.Users.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, first.UserID, user.ID)

	valid, err := f.stores.Tokens.FindAllValid(ctx, first.UserID)
	require.NoError(t, err)
	assert.Len(t, valid, 1, "rejected signup must not touch the existing session")
}

func TestSignup_Validation(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Signup(context.Background(), &dto.SignupRequest{Email: "nope", Password: ""})
	ae := requireAppErr(t, err)
	assert.Equal(t, apperr.KindBusiness, ae.Kind)
	assert.Equal(t, apperr.KindValidation, ae.Origin)
	assert.Contains(t, ae.Fields, "email")
	assert.Contains(t, ae.Fields, "password")

	_, err = f.stores.Credentials.FindByEmail(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSignIn_RevokesPreviousTokens(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	signup := f.signup(t, "a@b.com", "secret")

	first, err := f.svc.SignIn(ctx, &dto.LoginRequest{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	second, err := f.svc.SignIn(ctx, &dto.LoginRequest{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)

	for _, old := range []string{signup.AccessToken, first.AccessToken} {
		tok, err := f.stores.Tokens.FindByValue(ctx, old)
		require.NoError(t, err)
		assert.True(t, tok.Revoked)
		assert.True(t, tok.Expired)
	}

	valid, err := f.stores.Tokens.FindAllValid(ctx, signup.UserID)
	require.NoError(t, err)
	require.Len(t, valid, 1)
	assert.Equal(t, second.AccessToken, valid[0].Value)
	assert.Equal(t, signup.UserID, second.UserID)
}

func TestSignIn_BadCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "a@b.com", "secret")

	tests := []struct {
		name  string
		email string
		pass  string
	}{
		{name: "wrong password", email: "a@b.com", pass: "wrong"},
		{name: "unknown email", email: "ghost@b.com", pass: "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SignIn(context.Background(), &dto.LoginRequest{Email: tt.email, Password: tt.pass})
			ae := requireAppErr(t, err)
			assert.Equal(t, apperr.KindBusiness, ae.Kind)
			assert.Equal(t, apperr.KindAuthentication, ae.Origin)
			assert.Equal(t, apperr.CodeAuthentication, ae.Code)
			assert.Equal(t, "Account does not exist. Please Signup", ae.Message)
		})
	}
}

func TestSignIn_CredentialsWithoutUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	hash, err := NewPasswordHasher(bcrypt.MinCost).Hash("secret")
	require.NoError(t, err)
	_, err = f.stores.Credentials.Save(ctx, "orphan@b.com", hash)
	require.NoError(t, err)

	_, err = f.svc.SignIn(ctx, &dto.LoginRequest{Email: "orphan@b.com", Password: "secret"})
	ae := requireAppErr(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.OriginOf(err))
	assert.Equal(t, apperr.CodeAuthentication, ae.Code)
}

func TestGetProfile_NotFound(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.GetProfile(context.Background(), uuid.New())
	ae := requireAppErr(t, err)
	assert.Equal(t, apperr.KindBusiness, ae.Kind)
	assert.Equal(t, apperr.KindNotFound, ae.Origin)
	assert.Equal(t, apperr.CodeNotFound, ae.Code)
}

func TestGetAddresses(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.addresses.out = []models.Address{{AddID: 1, City: "Pune"}}
	addrs, err := f.svc.GetAddresses(ctx, uuid.New())
	require.NoError(t, err)
	assert.Len(t, addrs, 1)

	f.addresses.out = []models.Address{{AddID: 2}}
	f.addresses.err = errors.Join(ErrAddressUnavailable, errors.New("timeout"))
	addrs, err = f.svc.GetAddresses(ctx, uuid.New())
	assert.Nil(t, addrs)
	ae := requireAppErr(t, err)
	assert.Equal(t, apperr.KindBusiness, ae.Kind)
	assert.ErrorIs(t, err, ErrAddressUnavailable)
}

func TestSignup_MultibytePasswordOverLimit(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Signup(context.Background(), &dto.SignupRequest{Email: "m@b.com", Password: strings.Repeat("é", 40)})
	ae := requireAppErr(t, err)
	assert.Equal(t, apperr.KindValidation, ae.Origin)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	assert.Contains(t, ae.Fields, "password")
}

func TestSignIn_RejectsPasswordWithExtraBytes(t *testing.T) {
	f := newAuthFixture(t)
	password := strings.Repeat("a", 72)
	f.signup(t, "a@b.com", password)

	_, err := f.svc.SignIn(context.Background(), &dto.LoginRequest{Email: "a@b.com", Password: password + "EXTRA-GARBAGE"})
	ae := requireAppErr(t, err)
	assert.Equal(t, apperr.CodeAuthentication, ae.Code)
}
