package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlibekovAA/credential-auth/internal/auth/token"
	commoncrypto "github.com/AlibekovAA/credential-auth/internal/common/crypto"
	"github.com/AlibekovAA/credential-auth/internal/common/logger"
	userrepo "github.com/AlibekovAA/credential-auth/internal/user/repository"
)

// AuthService registers users and exchanges verified credentials for access tokens.
type AuthService struct {
	repo   userrepo.Repository
	hasher commoncrypto.PasswordHasher
	signer token.Signer
	log    *logger.Logger
}

func NewAuthService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	signer token.Signer,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		signer: signer,
		log:    log,
	}
}

type SignupInput struct {
	Email    string
	Password string
}

type SigninInput struct {
	Email    string
	Password string
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (AccessToken, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "signup_attempt",
	}).Info("signup attempt")

	if input.Email == "" || input.Password == "" {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_validation_failed",
		}).Warn("signup failed: empty credentials")
		recordSignup(outcomeError)
		return AccessToken{}, ErrValidation
	}

	start := time.Now()
	hash, err := s.hasher.Hash(input.Password)
	observeHash("hash", start)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		recordSignup(outcomeError)
		return AccessToken{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, input.Email, hash)
	if err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "signup_email_exists",
			}).Warn("signup failed: already exists")
			recordSignup(outcomeDuplicate)
			return AccessToken{}, ErrUserAlreadyExists
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		recordSignup(outcomeError)
		return AccessToken{}, err
	}

	result, err := s.signToken(string(user.ID), user.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "signup_token_issue_failed",
		}).Errorf("signup failed: token issue error: %v", err)
		recordSignup(outcomeError)
		return AccessToken{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "signup_success",
	}).Info("signup success")
	recordSignup(outcomeSuccess)

	return result, nil
}

func (s *AuthService) Signin(ctx context.Context, input SigninInput) (AccessToken, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "signin_attempt",
	}).Info("signin attempt")

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "signin_user_not_found",
			}).Warn("signin failed: not found")
			recordSignin(outcomeInvalidCredentials)
			return AccessToken{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signin_fetch_failed",
		}).Errorf("signin failed: %v", err)
		recordSignin(outcomeError)
		return AccessToken{}, err
	}

	start := time.Now()
	err = s.hasher.Compare(user.PasswordHash, input.Password)
	observeHash("compare", start)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signin_invalid_password",
		}).Warn("signin failed: invalid password")
		recordSignin(outcomeInvalidCredentials)
		return AccessToken{}, ErrInvalidCredentials
	}

	result, err := s.signToken(string(user.ID), user.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "signin_token_issue_failed",
		}).Errorf("signin failed: token issue error: %v", err)
		recordSignin(outcomeError)
		return AccessToken{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "signin_success",
	}).Info("signin success")
	recordSignin(outcomeSuccess)

	return result, nil
}

func (s *AuthService) signToken(userID, email string) (AccessToken, error) {
	signed, err := s.signer.Sign(token.Claims{UserID: userID, Email: email})
	if err != nil {
		if errors.Is(err, token.ErrMissingSecret) {
			return AccessToken{}, ErrConfiguration
		}
		return AccessToken{}, err
	}
	return AccessToken{AccessToken: signed}, nil
}
