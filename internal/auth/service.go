package auth

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"financetracker/internal/user"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInternalError      = errors.New("internal Server Error")
)

type Service interface {
	Login(username, password string) (*user.User, string, error)
	DeleteAccount(userID string) error
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService user.Service
	jwtManager  JWTManagerInterface
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// Login verifies credentials and issues an access token. The same error is
// returned whether the user is unknown or the password is wrong.
func (s *service) Login(username, password string) (*user.User, string, error) {
	existingUser, err := s.userService.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", ErrInternalError
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existingUser.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessJWT(existingUser.ID, existingUser.Username, defaultJWTDuration)
	if err != nil {
		return nil, "", ErrInternalError
	}

	return existingUser, token, nil
}

func (s *service) DeleteAccount(userID string) error {
	err := s.userService.DeleteUser(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}
	return nil
}
