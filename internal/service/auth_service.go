package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-skystore/internal/model"
	"go-skystore/internal/repository"
	"go-skystore/internal/validation"
	"go-skystore/pkg/jwt"
	"go-skystore/pkg/mailer"
	"go-skystore/pkg/validator"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService interface {
	Register(req *RegisterRequest) (*AuthResponse, error)
	Login(email, password string) (*AuthResponse, error)
	Logout(userID uuid.UUID) error
	ResetPassword(email, oldPassword, newPassword string) error
	GetProfile(userID uuid.UUID) (*model.UserResponse, error)
	UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*model.UserResponse, error)
}

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

// UpdateProfileRequest covers the non-identity fields an account may edit.
// Email is deliberately absent: it is immutable through this path.
type UpdateProfileRequest struct {
	FirstName   string `json:"first_name" validate:"max=30"`
	LastName    string `json:"last_name" validate:"max=30"`
	PhoneNumber string `json:"phone_number" validate:"max=20"`
	Country     string `json:"country" validate:"max=50"`
	Avatar      string `json:"avatar"`
}

// AuthResponse carries the session token plus the authenticated profile
type AuthResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Privileges []string           `json:"privileges"`
}

type authService struct {
	userRepo repository.UserRepository
	mailer   mailer.Mailer
}

func NewAuthService(userRepo repository.UserRepository, m mailer.Mailer) AuthService {
	return &authService{
		userRepo: userRepo,
		mailer:   m,
	}
}

// Register creates a customer account, establishes its session and sends the
// welcome notification. The notification is not best-effort: a mail failure
// (including an unconfigured sender address) surfaces as an error even though
// the account itself was created.
func (s *authService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, &validation.FieldError{Field: first.FailedField, Message: "failed on " + first.Tag}
	}

	// Explicit duplicate check so the caller gets a field-scoped error
	// instead of a storage-level constraint failure
	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, &validation.FieldError{Field: "email", Message: "this email is already in use"}
	}

	user := &model.User{
		Email:    req.Email,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	user.TokenVersion = uuid.New().String()
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FirstName, user.GetPrivilegeCodes(), user.TokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	if err := s.sendWelcomeEmail(user); err != nil {
		return nil, fmt.Errorf("account created, but welcome email failed: %w", err)
	}

	return &AuthResponse{
		Token:      token,
		User:       user.ToResponse(),
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) Login(email, password string) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// Single session: rotating the version invalidates older tokens
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, errors.New("failed to update session")
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FirstName, user.GetPrivilegeCodes(), newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &AuthResponse{
		Token:      token,
		User:       user.ToResponse(),
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

// Logout rotates the token version so the outstanding token stops validating
func (s *authService) Logout(userID uuid.UUID) error {
	return s.userRepo.UpdateTokenVersion(userID, uuid.New().String())
}

func (s *authService) ResetPassword(email, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	// Invalidate existing sessions after a password change
	return s.userRepo.UpdateTokenVersion(user.ID, uuid.New().String())
}

func (s *authService) GetProfile(userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

// UpdateProfile edits the account's own non-identity fields and notifies the
// owner by email. The same strict mail policy as registration applies.
func (s *authService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*model.UserResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, &validation.FieldError{Field: first.FailedField, Message: "failed on " + first.Tag}
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.PhoneNumber = req.PhoneNumber
	user.Country = req.Country
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if err := s.sendProfileChangedEmail(user); err != nil {
		return nil, fmt.Errorf("profile saved, but notification email failed: %w", err)
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) sendWelcomeEmail(user *model.User) error {
	body := fmt.Sprintf(
		"Thank you for registering with our store!\n\n"+
			"Your login email: %s\n\n"+
			"You can now publish your plugins and code samples to find buyers.",
		user.Email,
	)
	return s.mailer.Send(user.Email, "Welcome to Skystore!", body)
}

func (s *authService) sendProfileChangedEmail(user *model.User) error {
	return s.mailer.Send(user.Email, "Your Skystore profile was updated", "Your account details have been changed.")
}
