package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/AlibekovAA/credential-auth/internal/auth/http"
	"github.com/AlibekovAA/credential-auth/internal/auth/service"
	"github.com/AlibekovAA/credential-auth/internal/auth/token"
	"github.com/AlibekovAA/credential-auth/internal/common/bootstrap"
	"github.com/AlibekovAA/credential-auth/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/credential-auth/internal/common/crypto"
	commonhttp "github.com/AlibekovAA/credential-auth/internal/common/http"
	"github.com/AlibekovAA/credential-auth/internal/common/jwtverify"
	"github.com/AlibekovAA/credential-auth/internal/common/logger"
	srv "github.com/AlibekovAA/credential-auth/internal/common/server"
	userhttp "github.com/AlibekovAA/credential-auth/internal/user/http"
	userrepo "github.com/AlibekovAA/credential-auth/internal/user/repository"
	userservice "github.com/AlibekovAA/credential-auth/internal/user/service"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	app, err := bootstrap.NewAuthApp(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start auth service: %v\n", err)
		os.Exit(1)
	}

	log := app.Log
	cfg := app.Config

	signer := token.NewJWTSigner(cfg.JWTSecret, cfg.AccessTokenTTL, clock.NewRealClock())
	hasher := commoncrypto.NewArgon2Hasher(commoncrypto.DefaultArgon2Params())

	handler := buildHandler(app.UserRepo, hasher, signer, log, cfg.RequestTimeout)

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), handler)

	srv.StartWithGracefulShutdown(server, log, "auth")

	log.Infof("auth service: closing credential store")
	if err := app.Close(context.Background()); err != nil {
		log.Errorf("auth service: failed to close credential store: %v", err)
	}
}

func buildHandler(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	signer *token.JWTSigner,
	log *logger.Logger,
	requestTimeout time.Duration,
) http.Handler {
	authService := service.NewAuthService(repo, hasher, signer, log)
	userService := userservice.NewUserService(repo, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	authhttp.NewHandler(authService, log, requestTimeout).Register(mux)
	userhttp.NewHandler(userService, log, requestTimeout).Register(mux, jwtverify.Middleware(signer, log))

	return commonhttp.BuildBaseHandler("auth", log, mux)
}
