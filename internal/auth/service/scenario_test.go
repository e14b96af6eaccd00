package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/credential-auth/internal/auth/token"
	"github.com/AlibekovAA/credential-auth/internal/common/clock"
	"github.com/AlibekovAA/credential-auth/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/credential-auth/internal/common/crypto"
	userrepo "github.com/AlibekovAA/credential-auth/internal/user/repository"
)

const testJWTSecret = "test-secret-key-that-is-at-least-32-bytes-long"

func newIntegratedService(t *testing.T) (*AuthService, *token.JWTSigner) {
	t.Helper()

	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	repo := userrepo.NewMemoryRepository(commoncrypto.NewUUIDGenerator(), mockClock)
	hasher := commoncrypto.NewArgon2Hasher(commoncrypto.Argon2Params{
		Time:    1,
		Memory:  8 * 1024,
		Threads: 1,
		KeyLen:  constants.Argon2KeyLen,
		SaltLen: constants.Argon2SaltLen,
	})
	signer := token.NewJWTSigner(testJWTSecret, constants.AccessTokenTTL, mockClock)

	return NewAuthService(repo, hasher, signer, testLogger()), signer
}

func TestAuthService_SignupSigninScenario(t *testing.T) {
	svc, signer := newIntegratedService(t)
	ctx := context.Background()

	t1, err := svc.Signup(ctx, SignupInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	first, err := signer.Parse(t1.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", first.Email)
	assert.NotEmpty(t, first.UserID)

	_, err = svc.Signup(ctx, SignupInput{Email: "a@x.com", Password: "pw2"})
	assert.True(t, errors.Is(err, ErrUserAlreadyExists))

	t2, err := svc.Signin(ctx, SigninInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	second, err := signer.Parse(t2.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = svc.Signin(ctx, SigninInput{Email: "a@x.com", Password: "wrong"})
	assert.Equal(t, ErrInvalidCredentials, err)

	_, err = svc.Signin(ctx, SigninInput{Email: "b@x.com", Password: "pw1"})
	assert.Equal(t, ErrInvalidCredentials, err)

	_, err = svc.Signin(ctx, SigninInput{Email: "a@x.com", Password: "pw2"})
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_Signin_CorruptStoredHash(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	repo := userrepo.NewMemoryRepository(commoncrypto.NewUUIDGenerator(), mockClock)
	_, err := repo.Create(context.Background(), "a@x.com", "$argon2id$v=19$m=65536,t=0,p=4$c2FsdHNhbHRzYWx0$a2V5a2V5a2V5")
	require.NoError(t, err)

	hasher := commoncrypto.NewArgon2Hasher(commoncrypto.DefaultArgon2Params())
	signer := token.NewJWTSigner(testJWTSecret, constants.AccessTokenTTL, mockClock)
	svc := NewAuthService(repo, hasher, signer, testLogger())

	_, err = svc.Signin(context.Background(), SigninInput{Email: "a@x.com", Password: "pw1"})
	assert.Equal(t, ErrInvalidCredentials, err)
}
