package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/johnnycuongn/sp-app/internal/auth"
)

type fakeRepo struct {
	user *auth.User
	err  error
}

func (f *fakeRepo) GetByEmail(context.Context, string) (*auth.User, error) {
	return f.user, f.err
}

func testUser(t *testing.T, password string, role auth.Role) *auth.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &auth.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
}

func TestSignInAndVerify(t *testing.T) {
	user := testUser(t, "s3cret", auth.RoleAdmin)
	svc := auth.NewService(&fakeRepo{user: user}, "signing-secret", time.Hour)

	token, err := svc.SignIn(context.Background(), user.Email, "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, user.Email, id.Email)
	assert.True(t, id.IsAdmin())
}

func TestSignIn_WrongPassword(t *testing.T) {
	user := testUser(t, "s3cret", auth.RoleAdmin)
	svc := auth.NewService(&fakeRepo{user: user}, "signing-secret", time.Hour)

	_, err := svc.SignIn(context.Background(), user.Email, "nope")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	svc := auth.NewService(&fakeRepo{err: auth.ErrNotFound}, "signing-secret", time.Hour)

	_, err := svc.SignIn(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestVerify_WrongSecret(t *testing.T) {
	user := testUser(t, "s3cret", auth.RoleAdmin)
	signer := auth.NewService(&fakeRepo{user: user}, "signing-secret", time.Hour)
	verifier := auth.NewService(&fakeRepo{user: user}, "other-secret", time.Hour)

	token, err := signer.SignIn(context.Background(), user.Email, "s3cret")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_ExpiredToken(t *testing.T) {
	user := testUser(t, "s3cret", auth.RoleOutletManager)
	svc := auth.NewService(&fakeRepo{user: user}, "signing-secret", -time.Minute)

	token, err := svc.SignIn(context.Background(), user.Email, "s3cret")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	svc := auth.NewService(&fakeRepo{}, "signing-secret", time.Hour)

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
