package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserUCForTest() (*userUseCase, *fakeUserRepo, *fakeSessionRepo) {
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	uc := &userUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  time.Hour,
		log:         testLogger(),
	}
	return uc, userRepo, sessionRepo
}

func TestRegisterUserHashesPassword(t *testing.T) {
	uc, userRepo, _ := newUserUCForTest()

	user, err := uc.RegisterUser(context.Background(), "Budi", "Budi@Example.com", "0812", "Password1")
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", user.Email)

	stored := userRepo.byID[user.ID]
	assert.NotEqual(t, "Password1", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterUserValidation(t *testing.T) {
	uc, _, _ := newUserUCForTest()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, "", "budi@example.com", "", "Password1")
	assert.Error(t, err)

	_, err = uc.RegisterUser(ctx, "Budi", "not-an-email", "", "Password1")
	assert.Error(t, err)

	for _, password := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		_, err = uc.RegisterUser(ctx, "Budi", "budi@example.com", "", password)
		assert.Error(t, err, "password %q should be rejected", password)
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	uc, _, _ := newUserUCForTest()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, "Budi", "budi@example.com", "", "Password1")
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, "Budi Dua", "budi@example.com", "", "Password1")
	assert.ErrorContains(t, err, "already exists")
}

func TestAuthenticateUserIssuesSession(t *testing.T) {
	uc, _, sessionRepo := newUserUCForTest()
	ctx := context.Background()

	registered, err := uc.RegisterUser(ctx, "Budi", "budi@example.com", "", "Password1")
	require.NoError(t, err)

	auth, err := uc.AuthenticateUser(ctx, "budi@example.com", "Password1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, auth.UserID)
	assert.NotEmpty(t, auth.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), auth.ExpiresAt, time.Minute)

	_, ok := sessionRepo.sessions[auth.Token]
	assert.True(t, ok)
}

func TestAuthenticateUserWrongCredentials(t *testing.T) {
	uc, _, _ := newUserUCForTest()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, "Budi", "budi@example.com", "", "Password1")
	require.NoError(t, err)

	_, err = uc.AuthenticateUser(ctx, "budi@example.com", "WrongPassword1")
	assert.EqualError(t, err, "invalid email or password")

	_, err = uc.AuthenticateUser(ctx, "nobody@example.com", "Password1")
	assert.EqualError(t, err, "invalid email or password")
}

func TestResolveTokenAndLogout(t *testing.T) {
	uc, _, _ := newUserUCForTest()
	ctx := context.Background()

	registered, err := uc.RegisterUser(ctx, "Budi", "budi@example.com", "", "Password1")
	require.NoError(t, err)
	auth, err := uc.AuthenticateUser(ctx, "budi@example.com", "Password1")
	require.NoError(t, err)

	user, err := uc.ResolveToken(ctx, auth.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	require.NoError(t, uc.Logout(ctx, auth.Token))

	_, err = uc.ResolveToken(ctx, auth.Token)
	assert.Error(t, err)
}

func TestUpdateProfileSkipsEmptyFields(t *testing.T) {
	uc, _, _ := newUserUCForTest()
	ctx := context.Background()

	registered, err := uc.RegisterUser(ctx, "Budi", "budi@example.com", "0812", "Password1")
	require.NoError(t, err)

	profile, err := uc.UpdateProfile(ctx, registered.ID, "Budi Santoso", "")
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", profile.Name)
	assert.Equal(t, "0812", profile.Phone)
}
