package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AlibekovAA/credential-auth/internal/common/constants"
	commonerrors "github.com/AlibekovAA/credential-auth/internal/common/errors"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type AuthConfig struct {
	HTTPPort       string
	DatabaseURL    string
	StoreDriver    string
	JWTSecret      string
	AccessTokenTTL time.Duration
	RequestTimeout time.Duration
}

func LoadAuthConfig() (AuthConfig, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return AuthConfig{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return AuthConfig{}, err
	}

	driver := strings.ToLower(getEnv("STORE_DRIVER", constants.DefaultStoreDriver))
	if driver != StoreDriverPostgres && driver != StoreDriverMemory {
		return AuthConfig{}, commonerrors.ErrInvalidStoreDriver.WithCause(fmt.Errorf("got %q", driver))
	}

	var databaseURL string
	if driver == StoreDriverPostgres {
		databaseURL, err = mustEnv("DATABASE_URL")
		if err != nil {
			return AuthConfig{}, err
		}
	}

	return AuthConfig{
		HTTPPort:       getEnv("AUTH_HTTP_PORT", constants.DefaultAuthHTTPPort),
		DatabaseURL:    databaseURL,
		StoreDriver:    driver,
		JWTSecret:      jwtSecret,
		AccessTokenTTL: constants.AccessTokenTTL,
		RequestTimeout: getDurationEnv("AUTH_REQUEST_TIMEOUT", constants.DefaultAuthRequestTimeout),
	}, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return commonerrors.ErrInvalidJWTSecret.WithCause(fmt.Errorf("got %d bytes", len(secret)))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("%s", key))
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
