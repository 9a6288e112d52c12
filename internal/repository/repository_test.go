package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/user-service/internal/models"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/testdb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) *Stores {
	t.Helper()
	return NewStores(testdb.New(t))
}

func seedToken(t *testing.T, s *Stores, userID uuid.UUID, value string, createdAt time.Time) *models.Token {
	t.Helper()
	tok := &models.Token{UserID: userID, Value: value, CreatedAt: createdAt}
	require.NoError(t, s.Tokens.Save(context.Background(), tok))
	return tok
}

func TestCredentialStore_SaveAndFind(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()

	saved, err := s.Credentials.Save(ctx, "a@b.com", "digest")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)

	got, err := s.Credentials.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "digest", got.PasswordHash)
}

func TestCredentialStore_Duplicate(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()

	_, err := s.Credentials.Save(ctx, "a@b.com", "one")
	require.NoError(t, err)

	_, err = s.Credentials.Save(ctx, "a@b.com", "two")
	assert.ErrorIs(t, err, ErrDuplicateKey)

	got, err := s.Credentials.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "one", got.PasswordHash)
}

func TestCredentialStore_NotFound(t *testing.T) {
	s := newStores(t)
	_, err := s.Credentials.FindByEmail(context.Background(), "missing@b.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStore(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()

	u := &models.User{Name: "Ada", Email: "ada@b.com", Role: models.RoleUser, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Users.Create(ctx, u))
	require.NotEqual(t, uuid.Nil, u.ID)

	byID, err := s.Users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@b.com", byID.Email)
	assert.Equal(t, models.StatusPending, byID.Status)

	byEmail, err := s.Users.FindByEmail(ctx, "ada@b.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	err = s.Users.Create(ctx, &models.User{Email: "ada@b.com", Role: models.RoleUser, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = s.Users.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTokenStore_FindAllValidOrdered(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()
	userID := uuid.New()
	base := time.Now().UTC()

	seedToken(t, s, userID, "second", base.Add(time.Second))
	seedToken(t, s, userID, "first", base)
	revoked := seedToken(t, s, userID, "revoked", base.Add(2*time.Second))
	revoked.Revoked = true
	revoked.Expired = true
	require.NoError(t, s.Tokens.Save(ctx, revoked))
	seedToken(t, s, uuid.New(), "other-user", base)

	tokens, err := s.Tokens.FindAllValid(ctx, userID)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "first", tokens[0].Value)
	assert.Equal(t, "second", tokens[1].Value)
	assert.Equal(t, models.TokenTypeBearer, tokens[0].TokenType)
}

func TestTokenStore_RevokeAll(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()
	userID := uuid.New()

	seedToken(t, s, userID, "t1", time.Now())
	seedToken(t, s, userID, "t2", time.Now())
	other := seedToken(t, s, uuid.New(), "t3", time.Now())

	n, err := s.Tokens.RevokeAll(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	valid, err := s.Tokens.FindAllValid(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, valid)

	for _, v := range []string{"t1", "t2"} {
		tok, err := s.Tokens.FindByValue(ctx, v)
		require.NoError(t, err)
		assert.True(t, tok.Expired)
		assert.True(t, tok.Revoked)
	}

	stillValid, err := s.Tokens.FindByValue(ctx, other.Value)
	require.NoError(t, err)
	assert.True(t, stillValid.Valid())
}

func TestTokenStore_RevokeAllNoTokens(t *testing.T) {
	s := newStores(t)
	n, err := s.Tokens.RevokeAll(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTokenStore_IsActive(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()
	tok := seedToken(t, s, uuid.New(), "live", time.Now())

	active, err := s.Tokens.IsActive(ctx, "live")
	require.NoError(t, err)
	assert.True(t, active)

	active, err = s.Tokens.IsActive(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, active)

	tok.Revoked = true
	require.NoError(t, s.Tokens.Save(ctx, tok))
	active, err = s.Tokens.IsActive(ctx, "live")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestTokenStore_FindByValueNotFound(t *testing.T) {
	s := newStores(t)
	_, err := s.Tokens.FindByValue(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStores_TransactionRollback(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(tx *Stores) error {
		if _, err := tx.Credentials.Save(ctx, "rollback@b.com", "digest"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Credentials.FindByEmail(ctx, "rollback@b.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
