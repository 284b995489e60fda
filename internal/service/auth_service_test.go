package service

import (
	"testing"

	"go-skystore/internal/validation"
	"go-skystore/pkg/mailer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (AuthService, *fakeUserRepo, *fakeMailer) {
	userRepo := newFakeUserRepo()
	m := &fakeMailer{}
	return NewAuthService(userRepo, m), userRepo, m
}

func registerReq(email string) *RegisterRequest {
	return &RegisterRequest{
		Email:           email,
		Password:        "secret123",
		PasswordConfirm: "secret123",
	}
}

func TestRegisterCreatesAccountAndSendsWelcomeEmail(t *testing.T) {
	svc, userRepo, m := newAuthFixture()

	resp, err := svc.Register(registerReq("buyer@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "buyer@example.com", resp.User.Email)

	stored, err := userRepo.FindByEmail("buyer@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.True(t, stored.CheckPassword("secret123"), "the stored password must be a verifiable hash")
	assert.NotEqual(t, "secret123", stored.Password, "the password must never be stored in the clear")

	require.Len(t, m.sent, 1)
	assert.Equal(t, "buyer@example.com", m.sent[0].to)
	assert.Contains(t, m.sent[0].subject, "Welcome")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()

	_, err := svc.Register(registerReq("buyer@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(registerReq("buyer@example.com"))
	require.Error(t, err)
	var fieldErr *validation.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "email", fieldErr.Field)

	users, _ := userRepo.FindAll()
	assert.Len(t, users, 1, "the duplicate attempt must not create a second account")
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()

	_, err := svc.Register(&RegisterRequest{
		Email:           "buyer@example.com",
		Password:        "secret123",
		PasswordConfirm: "different",
	})
	require.Error(t, err)
	var fieldErr *validation.FieldError
	assert.ErrorAs(t, err, &fieldErr)

	users, _ := userRepo.FindAll()
	assert.Empty(t, users)
}

func TestRegisterFailsWhenMailerIsNotConfigured(t *testing.T) {
	svc, userRepo, m := newAuthFixture()
	m.err = mailer.ErrSenderNotConfigured

	_, err := svc.Register(registerReq("buyer@example.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, mailer.ErrSenderNotConfigured)

	// The account itself was created before the notification was attempted
	_, findErr := userRepo.FindByEmail("buyer@example.com")
	assert.NoError(t, findErr)
}

func TestLogin(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	_, err := svc.Register(registerReq("buyer@example.com"))
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		resp, err := svc.Login("buyer@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("buyer@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login("nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		stored, err := userRepo.FindByEmail("buyer@example.com")
		require.NoError(t, err)
		stored.IsActive = false
		require.NoError(t, userRepo.Update(stored))

		_, err = svc.Login("buyer@example.com", "secret123")
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestLoginRotatesTokenVersion(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	_, err := svc.Register(registerReq("buyer@example.com"))
	require.NoError(t, err)

	before, err := userRepo.FindByEmail("buyer@example.com")
	require.NoError(t, err)

	_, err = svc.Login("buyer@example.com", "secret123")
	require.NoError(t, err)

	after, err := userRepo.FindByEmail("buyer@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, before.TokenVersion, after.TokenVersion, "each login must invalidate older sessions")
}

func TestResetPassword(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	_, err := svc.Register(registerReq("buyer@example.com"))
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ResetPassword("buyer@example.com", "wrong", "newsecret")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		err := svc.ResetPassword("nobody@example.com", "secret123", "newsecret")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, svc.ResetPassword("buyer@example.com", "secret123", "newsecret"))

		stored, err := userRepo.FindByEmail("buyer@example.com")
		require.NoError(t, err)
		assert.True(t, stored.CheckPassword("newsecret"))
		assert.False(t, stored.CheckPassword("secret123"))
	})
}

func TestUpdateProfileEditsNonIdentityFieldsAndNotifies(t *testing.T) {
	svc, userRepo, m := newAuthFixture()
	resp, err := svc.Register(registerReq("buyer@example.com"))
	require.NoError(t, err)
	m.sent = nil

	updated, err := svc.UpdateProfile(resp.User.ID, &UpdateProfileRequest{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		PhoneNumber: "+7 900 000 00 00",
		Country:     "Russia",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "buyer@example.com", updated.Email, "email is immutable through profile edits")

	stored, err := userRepo.FindByID(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", stored.LastName)

	require.Len(t, m.sent, 1)
	assert.Equal(t, "buyer@example.com", m.sent[0].to)
}

func TestUpdateProfileSurfacesMailFailure(t *testing.T) {
	svc, userRepo, m := newAuthFixture()
	resp, err := svc.Register(registerReq("buyer@example.com"))
	require.NoError(t, err)

	m.err = mailer.ErrSenderNotConfigured
	_, err = svc.UpdateProfile(resp.User.ID, &UpdateProfileRequest{FirstName: "Ada"})
	require.Error(t, err)
	assert.ErrorIs(t, err, mailer.ErrSenderNotConfigured)

	// The edit itself was persisted before the notification failed
	stored, findErr := userRepo.FindByID(resp.User.ID)
	require.NoError(t, findErr)
	assert.Equal(t, "Ada", stored.FirstName)
}

func TestLogoutRotatesTokenVersion(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	resp, err := svc.Register(registerReq("buyer@example.com"))
	require.NoError(t, err)

	before, err := userRepo.FindByID(resp.User.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(resp.User.ID))

	after, err := userRepo.FindByID(resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, before.TokenVersion, after.TokenVersion)
}

func TestGetProfile(t *testing.T) {
	svc, _, _ := newAuthFixture()
	resp, err := svc.Register(registerReq("buyer@example.com"))
	require.NoError(t, err)

	profile, err := svc.GetProfile(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", profile.Email)

	_, err = svc.GetProfile(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
