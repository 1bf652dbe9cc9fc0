package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"clothing-store/models"
	"clothing-store/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signup = models.SignupRequest{Name: " Jane ", Email: "Jane@Example.com ", Phone: "9999999999", Password: "secret123"}

func TestSignupNormalizesAndIssuesTokens(t *testing.T) {
	store := memory.New()
	sender := &recordingSender{}
	svc := newTestAuth(store, sender)

	res, err := svc.Signup(context.Background(), signup)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", res.User.Email)
	assert.Equal(t, "Jane", res.User.Name)
	assert.NotEmpty(t, res.User.UserID)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, []string{NotifyWelcome}, sender.kinds())

	stored, err := store.GetUserByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newTestAuth(memory.New(), &recordingSender{})

	_, err := svc.Signup(context.Background(), signup)
	require.NoError(t, err)

	dup := signup
	dup.Email = "JANE@example.com"
	_, err = svc.Signup(context.Background(), dup)
	requireKind(t, err, models.KindConflict)
	assert.Contains(t, err.Error(), "Email already exists")
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	svc := newTestAuth(memory.New(), &recordingSender{})
	_, err := svc.Signup(context.Background(), signup)
	require.NoError(t, err)

	_, unknown := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "secret123"}, "1.2.3.4")
	_, wrong := svc.Login(context.Background(), models.LoginRequest{Email: "jane@example.com", Password: "nope"}, "1.2.3.4")

	requireKind(t, unknown, models.KindAuth)
	requireKind(t, wrong, models.KindAuth)
	assert.Equal(t, unknown.Error(), wrong.Error())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "JANE@example.com", Password: "secret123"}, "1.2.3.4")
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
}

func TestRefresh(t *testing.T) {
	svc := newTestAuth(memory.New(), &recordingSender{})
	res, err := svc.Signup(context.Background(), signup)
	require.NoError(t, err)

	access, err := svc.Refresh(context.Background(), res.RefreshToken)
	require.NoError(t, err)
	claims, err := svc.tokens.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.ID)

	_, err = svc.Refresh(context.Background(), res.AccessToken)
	requireKind(t, err, models.KindAuth)
	_, err = svc.Refresh(context.Background(), "")
	requireKind(t, err, models.KindAuth)
}

var resetLink = regexp.MustCompile(`reset-password/([0-9a-f]{64})`)

func TestPasswordResetFlow(t *testing.T) {
	store := memory.New()
	sender := &recordingSender{}
	svc := newTestAuth(store, sender)
	_, err := svc.Signup(context.Background(), signup)
	require.NoError(t, err)

	err = svc.ForgotPassword(context.Background(), "nobody@example.com")
	requireKind(t, err, models.KindNotFound)

	require.NoError(t, svc.ForgotPassword(context.Background(), "jane@example.com"))
	mail := sender.last()
	require.Equal(t, NotifyPasswordReset, mail.Kind)
	match := resetLink.FindStringSubmatch(mail.Body)
	require.Len(t, match, 2)
	raw := match[1]

	stored, err := store.GetUserByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, raw, stored.ResetPasswordToken)

	requireKind(t, svc.ResetPassword(context.Background(), "bogus", "newsecret"), models.KindAuth)
	require.NoError(t, svc.ResetPassword(context.Background(), raw, "newsecret"))
	assert.Equal(t, NotifyPasswordChanged, sender.last().Kind)

	requireKind(t, svc.ResetPassword(context.Background(), raw, "again123"), models.KindAuth)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "jane@example.com", Password: "newsecret"}, "")
	require.NoError(t, err)
}

func TestResetTokenExpires(t *testing.T) {
	store := memory.New()
	sender := &recordingSender{}
	svc := newTestAuth(store, sender)
	_, err := svc.Signup(context.Background(), signup)
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(context.Background(), "jane@example.com"))
	raw := resetLink.FindStringSubmatch(sender.last().Body)[1]

	issued := svc.now()
	svc.now = func() time.Time { return issued.Add(31 * time.Minute) }
	requireKind(t, svc.ResetPassword(context.Background(), raw, "newsecret"), models.KindAuth)
}

func TestProfileAndChangePassword(t *testing.T) {
	svc := newTestAuth(memory.New(), &recordingSender{})
	res, err := svc.Signup(context.Background(), signup)
	require.NoError(t, err)
	id := res.User.ID

	name := "  Jane Doe "
	profile, err := svc.UpdateProfile(context.Background(), id, models.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, "9999999999", profile.Phone)

	blank := "  "
	_, err = svc.UpdateProfile(context.Background(), id, models.UpdateProfileRequest{Name: &blank})
	requireKind(t, err, models.KindValidation)

	unchanged, err := svc.UpdateProfile(context.Background(), id, models.UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", unchanged.Name)

	err = svc.ChangePassword(context.Background(), id, models.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "newsecret"})
	requireKind(t, err, models.KindAuth)
	require.NoError(t, svc.ChangePassword(context.Background(), id, models.ChangePasswordRequest{OldPassword: "secret123", NewPassword: "newsecret"}))

	_, err = svc.GetProfile(context.Background(), "missing")
	requireKind(t, err, models.KindNotFound)
}

func requirePasswordField(t *testing.T, err error, field string) {
	t.Helper()
	requireKind(t, err, models.KindValidation)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, field, appErr.Fields[0].Field)
}

func TestOverlongPasswordsRejected(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	sender := &recordingSender{}
	svc := newTestAuth(store, sender)

	// 40 runes, 80 bytes.
	long := strings.Repeat("é", 40)

	req := signup
	req.Password = long
	_, err := svc.Signup(ctx, req)
	requirePasswordField(t, err, "password")
	_, err = store.GetUserByEmail(ctx, "jane@example.com")
	require.ErrorIs(t, err, models.ErrRecordNotFound)

	req.Password = strings.Repeat("p", 72)
	res, err := svc.Signup(ctx, req)
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "jane@example.com"))
	raw := resetLink.FindStringSubmatch(sender.last().Body)[1]
	requirePasswordField(t, svc.ResetPassword(ctx, raw, long), "password")
	require.NoError(t, svc.ResetPassword(ctx, raw, "newsecret"))

	err = svc.ChangePassword(ctx, res.User.ID, models.ChangePasswordRequest{OldPassword: "newsecret", NewPassword: long})
	requirePasswordField(t, err, "newPassword")

	_, err = svc.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "newsecret"}, "")
	require.NoError(t, err)
}
