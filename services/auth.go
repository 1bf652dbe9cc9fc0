package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clothing-store/libs"
	"clothing-store/models"
	"clothing-store/repositories"
	"clothing-store/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const resetTokenTTL = 30 * time.Minute

const msgInvalidCredentials = "Invalid email or password"

type AuthResult struct {
	User         models.PublicUser
	AccessToken  string
	RefreshToken string
}

type AuthService struct {
	users     repositories.UserRepository
	hasher    *utils.PasswordHasher
	tokens    *utils.TokenManager
	notifier  NotificationSender
	templates libs.MailTemplates
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewAuthService(users repositories.UserRepository, hasher *utils.PasswordHasher, tokens *utils.TokenManager,
	notifier NotificationSender, templates libs.MailTemplates, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		notifier:  notifier,
		templates: templates,
		log:       log.WithField("service", "auth"),
		now:       time.Now,
	}
}

func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*AuthResult, error) {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if name == "" || email == "" || strings.TrimSpace(req.Phone) == "" || req.Password == "" {
		return nil, models.ErrValidation("All fields are required")
	}

	if err := checkPasswordLength("password", req.Password); err != nil {
		return nil, err
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, models.ErrConflict("Email already exists")
	} else if !errors.Is(err, models.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		UserID:   uuid.NewString(),
		Name:     name,
		Email:    email,
		Phone:    strings.TrimSpace(req.Phone),
		Password: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			return nil, models.ErrConflict("Email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	subject, body := s.templates.Welcome(user.Name)
	s.notifier.Enqueue(models.Notification{Kind: NotifyWelcome, To: []string{user.Email}, Subject: subject, Body: body})

	return s.issue(user)
}

// Login answers with the same error for an unknown email and a wrong
// password.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest, clientIP string) (*AuthResult, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.ErrAuth(msgInvalidCredentials)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !s.hasher.Verify(user.Password, req.Password) {
		return nil, models.ErrAuth(msgInvalidCredentials)
	}

	subject, body := s.templates.LoginNotice(user.Name, clientIP)
	s.notifier.Enqueue(models.Notification{Kind: NotifyLogin, To: []string{user.Email}, Subject: subject, Body: body})

	return s.issue(user)
}

// Refresh mints a new access token only. The refresh token itself is not
// rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", models.ErrAuth("Refresh token missing")
	}
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", models.ErrAuth("Invalid or expired refresh token")
	}

	if _, err := s.users.GetUserByID(ctx, claims.ID); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return "", models.ErrAuth("Invalid or expired refresh token")
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(claims.ID, claims.Email, claims.UserID)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return models.ErrNotFound("User not found")
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	raw, err := utils.RandomHex(32)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	expires := s.now().UTC().Add(resetTokenTTL)
	if err := s.users.SetUserResetToken(ctx, user.ID, utils.HashToken(raw), expires); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	subject, body := s.templates.PasswordReset(user.Name, raw)
	s.notifier.Enqueue(models.Notification{Kind: NotifyPasswordReset, To: []string{user.Email}, Subject: subject, Body: body})
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if rawToken == "" {
		return models.ErrAuth("Invalid or expired token")
	}
	if err := checkPasswordLength("password", newPassword); err != nil {
		return err
	}
	user, err := s.users.GetUserByResetToken(ctx, utils.HashToken(rawToken), s.now().UTC())
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return models.ErrAuth("Invalid or expired token")
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdateUserPassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	subject, body := s.templates.PasswordChanged(user.Name)
	s.notifier.Enqueue(models.Notification{Kind: NotifyPasswordChanged, To: []string{user.Email}, Subject: subject, Body: body})
	return nil
}

func (s *AuthService) GetProfile(ctx context.Context, id string) (*models.PublicUser, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.ErrNotFound("User not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	public := user.Public()
	return &public, nil
}

// UpdateProfile changes only the fields present in req.
func (s *AuthService) UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.PublicUser, error) {
	update := models.ProfileUpdate{Name: trimmed(req.Name), Phone: trimmed(req.Phone), Avatar: trimmed(req.Avatar)}
	if update.Name != nil && *update.Name == "" {
		return nil, models.ErrValidation("Name cannot be empty", models.FieldError{Field: "name", Message: "name cannot be empty"})
	}
	if update.Empty() {
		return s.GetProfile(ctx, id)
	}

	user, err := s.users.UpdateUserProfile(ctx, id, update)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.ErrNotFound("User not found")
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	public := user.Public()
	return &public, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, id string, req models.ChangePasswordRequest) error {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return models.ErrNotFound("User not found")
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	if !s.hasher.Verify(user.Password, req.OldPassword) {
		return models.ErrAuth("Invalid old password")
	}
	if err := checkPasswordLength("newPassword", req.NewPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdateUserPassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	subject, body := s.templates.PasswordChanged(user.Name)
	s.notifier.Enqueue(models.Notification{Kind: NotifyPasswordChanged, To: []string{user.Email}, Subject: subject, Body: body})
	return nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &AuthResult{User: user.Public(), AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

func checkPasswordLength(field, password string) error {
	if len(password) <= utils.MaxPasswordBytes {
		return nil
	}
	msg := fmt.Sprintf("%s must be at most %d bytes", field, utils.MaxPasswordBytes)
	return models.ErrValidation("Password is too long", models.FieldError{Field: field, Message: msg})
}
