package user

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLength    = 20
	minUsernameLength    = 1
	maxPasswordLength    = 20
	minPasswordLength    = 6
	maxDisplayNameLength = 20
	bcryptCost           = 12
)

var (
	ErrInvalidEmail      = errors.New("email address is not valid")
	ErrUsernameLength    = fmt.Errorf("username must be between %d and %d characters", minUsernameLength, maxUsernameLength)
	ErrDisplayNameLength = fmt.Errorf("display name must be between 1 and %d characters", maxDisplayNameLength)
	ErrInvalidPassword   = fmt.Errorf("password must be between %d and %d characters and contain an uppercase letter, a lowercase letter and a special character", minPasswordLength, maxPasswordLength)
	ErrUsernameTaken     = errors.New("username or email already exists")
	ErrInternalError     = errors.New("internal Server Error")
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Profile struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type Service interface {
	Register(username, email, password, displayName string) (*User, error)
	GetUserByID(userID string) (*User, error)
	GetUserByUsername(username string) (*User, error)
	GetProfile(userID string) (*Profile, error)
	DeleteUser(userID string) error
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrInvalidPassword
	}

	var hasUpper, hasLower, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasSpecial {
		return ErrInvalidPassword
	}
	return nil
}

func (s *service) Register(username, email, password, displayName string) (*User, error) {
	username = strings.TrimSpace(username)
	displayName = strings.TrimSpace(displayName)

	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return nil, ErrUsernameLength
	}
	if len(displayName) < 1 || len(displayName) > maxDisplayNameLength {
		return nil, ErrDisplayNameLength
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		fmt.Println("Error during hashing the password")
		return nil, ErrInternalError
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	err = s.repo.createUserWithDefaults(user, displayName)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		fmt.Println("Error during creating the user: ", err)
		return nil, ErrInternalError
	}

	return user, nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}

func (s *service) GetUserByUsername(username string) (*User, error) {
	return s.repo.getUserByUsername(username)
}

func (s *service) GetProfile(userID string) (*Profile, error) {
	return s.repo.getProfile(userID)
}

func (s *service) DeleteUser(userID string) error {
	return s.repo.deleteUser(userID)
}
