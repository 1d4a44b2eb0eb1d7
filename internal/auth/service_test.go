package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"financetracker/internal/user"
)

type mockUserService struct {
	users   map[string]*user.User
	deleted []string
}

func newMockUserService() *mockUserService {
	return &mockUserService{users: make(map[string]*user.User)}
}

func (m *mockUserService) addUser(id, username, password string) *user.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &user.User{ID: id, Username: username, PasswordHash: string(hash)}
	m.users[id] = u
	return u
}

func (m *mockUserService) Register(username, email, password, displayName string) (*user.User, error) {
	return nil, nil
}

func (m *mockUserService) GetUserByID(userID string) (*user.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserService) GetUserByUsername(username string) (*user.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserService) GetProfile(userID string) (*user.Profile, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserService) DeleteUser(userID string) error {
	if _, ok := m.users[userID]; !ok {
		return user.ErrUserNotFound
	}
	delete(m.users, userID)
	m.deleted = append(m.deleted, userID)
	return nil
}

func TestLogin_Success(t *testing.T) {
	users := newMockUserService()
	users.addUser("user-123", "john", "Secret#1")
	svc := NewAuthService(users, newJWTManagerWithSecret("test-secret"))

	loggedIn, token, err := svc.Login("john", "Secret#1")
	assert.NoError(t, err)
	assert.Equal(t, "user-123", loggedIn.ID)
	assert.NotEmpty(t, token)

	userID, err := newJWTManagerWithSecret("test-secret").ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := newMockUserService()
	users.addUser("user-123", "john", "Secret#1")
	svc := NewAuthService(users, newJWTManagerWithSecret("test-secret"))

	_, _, err := svc.Login("john", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	svc := NewAuthService(newMockUserService(), newJWTManagerWithSecret("test-secret"))

	_, _, err := svc.Login("nobody", "Secret#1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeleteAccount(t *testing.T) {
	users := newMockUserService()
	users.addUser("user-123", "john", "Secret#1")
	svc := NewAuthService(users, newJWTManagerWithSecret("test-secret"))

	assert.NoError(t, svc.DeleteAccount("user-123"))
	assert.Equal(t, []string{"user-123"}, users.deleted)
	assert.ErrorIs(t, svc.DeleteAccount("user-123"), ErrUserNotFound)
}
