package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"pasarumkm/internal/domain"
)

type userUseCase struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	sessionTTL  time.Duration
	log         *logrus.Logger
}

func NewUserUseCase(userRepo domain.UserRepository, sessionRepo domain.SessionRepository, sessionTTL time.Duration, logger *logrus.Logger) domain.UserUseCase {
	return &userUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
		log:         logger,
	}
}

func (uc *userUseCase) RegisterUser(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	uc.log.Infof("Use Case: Attempting registration for email: %s", email)

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		uc.log.Warn("Use Case: Registration failed - empty name")
		return nil, errors.New("user name cannot be empty")
	}
	if !isValidEmail(email) {
		uc.log.Warnf("Use Case: Registration failed - invalid email format: %s", email)
		return nil, errors.New("invalid email format")
	}
	if err := validatePassword(password); err != nil {
		uc.log.Warnf("Use Case: Registration failed - password validation error: %v", err)
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for %s: %v", email, err)
		return nil, fmt.Errorf("internal error processing password: %w", err)
	}

	newUser := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: string(hashedPassword),
	}

	createdUser, err := uc.userRepo.CreateUser(ctx, newUser)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create user %s: %v", email, err)
		return nil, err
	}

	uc.log.Infof("Use Case: User registered successfully. ID: %d, Email: %s", createdUser.ID, createdUser.Email)
	return createdUser, nil
}

func (uc *userUseCase) AuthenticateUser(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	uc.log.Infof("Use Case: Attempting authentication for email: %s", email)

	if !isValidEmail(email) || password == "" {
		uc.log.Warnf("Use Case: Auth failed - invalid email or empty password for %s", email)
		return nil, errors.New("invalid email or password")
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			uc.log.Warnf("Use Case: Auth failed - user not found: %s", email)
			return nil, errors.New("invalid email or password")
		}
		uc.log.Errorf("Use Case: Error retrieving user %s during auth: %v", email, err)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warnf("Use Case: Auth failed - incorrect password for user %s (ID: %d)", email, user.ID)
			return nil, errors.New("invalid email or password")
		}
		uc.log.Errorf("Use Case: Error comparing password hash for user %s: %v", email, err)
		return nil, fmt.Errorf("internal error during authentication: %w", err)
	}

	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(uc.sessionTTL),
	}
	if err := uc.sessionRepo.CreateSession(ctx, session); err != nil {
		uc.log.Errorf("Use Case: Failed to persist session for user %d: %v", user.ID, err)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	uc.log.Infof("Use Case: Authentication successful for user %s (ID: %d)", email, user.ID)
	return &domain.AuthResponse{
		Token:     session.Token,
		UserID:    user.ID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (uc *userUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("invalid session token")
	}
	if err := uc.sessionRepo.DeleteSession(ctx, token); err != nil {
		uc.log.Errorf("Use Case: Failed to delete session: %v", err)
		return err
	}
	uc.log.Info("Use Case: Session terminated")
	return nil
}

// ResolveToken turns a bearer token into the user it belongs to. Used by
// the auth middleware.
func (uc *userUseCase) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, errors.New("invalid session token")
	}
	session, err := uc.sessionRepo.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		uc.log.Errorf("Use Case: Session points at missing user %d: %v", session.UserID, err)
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) GetUserProfile(ctx context.Context, id int64) (*domain.UserProfile, error) {
	if id <= 0 {
		return nil, errors.New("invalid user ID")
	}

	user, err := uc.userRepo.GetUserByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get user profile for ID %d: %v", id, err)
		return nil, err
	}

	return &domain.UserProfile{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		IsMitra: user.IsMitra,
	}, nil
}

func (uc *userUseCase) UpdateProfile(ctx context.Context, id int64, name, phone string) (*domain.UserProfile, error) {
	if id <= 0 {
		return nil, errors.New("invalid user ID")
	}

	updates := map[string]interface{}{}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		updates["name"] = trimmed
	}
	if trimmed := strings.TrimSpace(phone); trimmed != "" {
		updates["phone"] = trimmed
	}

	user, err := uc.userRepo.UpdateUser(ctx, id, updates)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to update profile for user %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Profile updated for user %d", id)
	return &domain.UserProfile{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		IsMitra: user.IsMitra,
	}, nil
}

// isValidEmail provides a basic check for email format.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	domainParts := strings.Split(parts[1], ".")
	return len(domainParts) >= 2 && domainParts[0] != "" && domainParts[len(domainParts)-1] != ""
}

// validatePassword enforces basic password complexity rules.
func validatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if !hasUpper {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return errors.New("password must contain at least one digit")
	}
	return nil
}
