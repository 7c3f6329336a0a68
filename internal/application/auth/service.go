package auth

import (
	"context"
	"errors"
	"strings"

	"gavel-backend/internal/domain"
	"gavel-backend/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type RegisterInput struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionUserShape is the object stored in the session and returned by /me.
type SessionUserShape struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register validates input, checks uniqueness and creates the account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, ErrFieldsRequired
	}
	if !validation.IsValidUsername(in.Username) {
		return nil, ErrInvalidUsername
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrWeakPassword
	}
	if in.Password != in.Confirmation {
		return nil, ErrPasswordMismatch
	}

	var existing domain.User
	if err := s.DB.WithContext(ctx).Where("username = ?", in.Username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Where("email = ?", in.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		// Unique-index race on username/email surfaces as the taken error;
		// anything else is a real storage failure.
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "duplicate key")
}

// Login finds a user by username and verifies the password.
func (s *Service) Login(ctx context.Context, in LoginInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, ErrFieldsRequired
	}
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("username = ?", in.Username).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredential
	}
	return &u, nil
}

// VerifyUser validates the session user object and returns the /me shape.
func VerifyUser(sessionUser interface{}) (*SessionUserShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return &SessionUserShape{
		UserID:   userID,
		Username: str(m["username"]),
		Email:    str(m["email"]),
	}, nil
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
