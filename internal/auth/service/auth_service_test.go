package service

import (
	"context"
	"errors"
	"testing"

	"github.com/AlibekovAA/credential-auth/internal/auth/token"
	commonerrors "github.com/AlibekovAA/credential-auth/internal/common/errors"
	userdomain "github.com/AlibekovAA/credential-auth/internal/user/domain"
	userrepo "github.com/AlibekovAA/credential-auth/internal/user/repository"
)

func TestAuthService_Signup_Success(t *testing.T) {
	svc, repo, hasher, signer := setupAuthService()

	var storedHash string
	hasher.hashFunc = func(password string) (string, error) {
		if password != "pw1" {
			t.Errorf("expected password pw1, got %s", password)
		}
		return "argon-hash", nil
	}
	repo.createFunc = func(ctx context.Context, email, passwordHash string) (userdomain.User, error) {
		storedHash = passwordHash
		return userdomain.User{ID: "user-1", Email: email, PasswordHash: passwordHash}, nil
	}
	signer.signFunc = func(claims token.Claims) (string, error) {
		if claims.UserID != "user-1" || claims.Email != "a@x.com" {
			t.Errorf("unexpected claims %+v", claims)
		}
		return "signed-token", nil
	}

	result, err := svc.Signup(context.Background(), SignupInput{Email: "a@x.com", Password: "pw1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.AccessToken != "signed-token" {
		t.Errorf("expected signed-token, got %q", result.AccessToken)
	}

	if storedHash != "argon-hash" {
		t.Errorf("expected store to receive the hash, got %q", storedHash)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc, repo, _, signer := setupAuthService()

	repo.createFunc = func(ctx context.Context, email, passwordHash string) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrEmailAlreadyExists
	}
	signer.signFunc = func(claims token.Claims) (string, error) {
		t.Error("signer must not be called for a duplicate signup")
		return "", nil
	}

	_, err := svc.Signup(context.Background(), SignupInput{Email: "a@x.com", Password: "pw2"})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}

	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok || domainErr.HTTPStatus() != 403 || domainErr.Message() != "User already exists" {
		t.Errorf("unexpected domain error %v", err)
	}
}

func TestAuthService_Signup_StoreErrorPropagates(t *testing.T) {
	svc, repo, _, _ := setupAuthService()

	storeErr := errors.New("connection refused")
	repo.createFunc = func(ctx context.Context, email, passwordHash string) (userdomain.User, error) {
		return userdomain.User{}, storeErr
	}

	result, err := svc.Signup(context.Background(), SignupInput{Email: "a@x.com", Password: "pw1"})
	if err == nil {
		t.Fatal("expected error")
	}

	if err != storeErr {
		t.Errorf("expected store error unchanged, got %v", err)
	}

	if errors.Is(err, ErrUserAlreadyExists) {
		t.Error("store failure must not be reported as duplicate")
	}

	if result.AccessToken != "" {
		t.Errorf("expected empty token, got %q", result.AccessToken)
	}
}

func TestAuthService_Signup_HashError(t *testing.T) {
	svc, repo, hasher, _ := setupAuthService()

	hasher.hashFunc = func(password string) (string, error) {
		return "", errors.New("entropy exhausted")
	}
	repo.createFunc = func(ctx context.Context, email, passwordHash string) (userdomain.User, error) {
		t.Error("store must not be called when hashing fails")
		return userdomain.User{}, nil
	}

	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@x.com", Password: "pw1"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestAuthService_Signup_EmptyPassword(t *testing.T) {
	svc, _, _, _ := setupAuthService()

	_, err := svc.Signup(context.Background(), SignupInput{Email: "a@x.com"})
	if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED error, got %v", err)
	}
}

func TestAuthService_Signup_MissingSecret(t *testing.T) {
	svc, _, _, signer := setupAuthService()

	signer.signFunc = func(claims token.Claims) (string, error) {
		return "", token.ErrMissingSecret
	}

	_, err := svc.Signup(context.Background(), SignupInput{Email: "a@x.com", Password: "pw1"})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestAuthService_Signin_Success(t *testing.T) {
	svc, repo, hasher, _ := setupAuthService()

	repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{ID: "user-1", Email: email, PasswordHash: "stored-hash"}, nil
	}
	hasher.compareFunc = func(hash string, password string) error {
		if hash != "stored-hash" || password != "pw1" {
			return errors.New("password mismatch")
		}
		return nil
	}

	result, err := svc.Signin(context.Background(), SigninInput{Email: "a@x.com", Password: "pw1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.AccessToken != "token-for-user-1" {
		t.Errorf("unexpected token %q", result.AccessToken)
	}
}

func TestAuthService_Signin_UnknownEmailAndWrongPasswordMatch(t *testing.T) {
	svc, repo, hasher, _ := setupAuthService()

	repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		if email == "a@x.com" {
			return userdomain.User{ID: "user-1", Email: email, PasswordHash: "stored-hash"}, nil
		}
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	hasher.compareFunc = func(hash string, password string) error {
		return errors.New("password mismatch")
	}

	_, wrongPassword := svc.Signin(context.Background(), SigninInput{Email: "a@x.com", Password: "nope"})
	_, unknownEmail := svc.Signin(context.Background(), SigninInput{Email: "b@x.com", Password: "pw1"})

	if wrongPassword != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}

	if unknownEmail != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", unknownEmail)
	}
}

func TestAuthService_Signin_StoreErrorPropagates(t *testing.T) {
	svc, repo, _, _ := setupAuthService()

	storeErr := errors.New("connection reset")
	repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{}, storeErr
	}

	_, err := svc.Signin(context.Background(), SigninInput{Email: "a@x.com", Password: "pw1"})
	if err != storeErr {
		t.Errorf("expected store error unchanged, got %v", err)
	}

	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("store failure must not be reported as invalid credentials")
	}
}
