package service

import (
	"context"
	"io"

	"github.com/AlibekovAA/credential-auth/internal/auth/token"
	"github.com/AlibekovAA/credential-auth/internal/common/logger"
	userdomain "github.com/AlibekovAA/credential-auth/internal/user/domain"
	userrepo "github.com/AlibekovAA/credential-auth/internal/user/repository"
)

type mockUserRepo struct {
	createFunc      func(ctx context.Context, email, passwordHash string) (userdomain.User, error)
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
	findByIDFunc    func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, email, passwordHash string) (userdomain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, email, passwordHash)
	}
	return userdomain.User{ID: "user-123", Email: email, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockSigner struct {
	signFunc func(claims token.Claims) (string, error)
}

func (m *mockSigner) Sign(claims token.Claims) (string, error) {
	if m.signFunc != nil {
		return m.signFunc(claims)
	}
	return "token-for-" + claims.UserID, nil
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "auth-test", "DEBUG")
}

func setupAuthService() (*AuthService, *mockUserRepo, *mockHasher, *mockSigner) {
	repo := &mockUserRepo{}
	hasher := &mockHasher{}
	signer := &mockSigner{}
	return NewAuthService(repo, hasher, signer, testLogger()), repo, hasher, signer
}
