package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/AlibekovAA/credential-auth/internal/auth/service"
	commonhttp "github.com/AlibekovAA/credential-auth/internal/common/http"
	"github.com/AlibekovAA/credential-auth/internal/common/logger"
)

type CredentialService interface {
	Signup(ctx context.Context, input service.SignupInput) (service.AccessToken, error)
	Signin(ctx context.Context, input service.SigninInput) (service.AccessToken, error)
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

func (r *credentialsRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type Handler struct {
	auth    CredentialService
	log     *logger.Logger
	errors  *commonhttp.ErrorHandler
	timeout time.Duration
}

func NewHandler(auth CredentialService, log *logger.Logger, requestTimeout time.Duration) *Handler {
	return &Handler{
		auth:    auth,
		log:     log,
		errors:  commonhttp.NewErrorHandler(log),
		timeout: requestTimeout,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	post := commonhttp.RequireMethod(http.MethodPost)
	withTimeout := commonhttp.WithTimeout(h.timeout)

	mux.HandleFunc("/auth/signup", post(withTimeout(h.signup)))
	mux.HandleFunc("/auth/signin", post(withTimeout(h.signin)))
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r, "signup")
	if !ok {
		return
	}

	result, err := h.auth.Signup(r.Context(), service.SignupInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r, "signin")
	if !ok {
		return
	}

	result, err := h.auth.Signin(r.Context(), service.SigninInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request, action string) (credentialsRequest, bool) {
	var req credentialsRequest
	if !commonhttp.DecodeAndValidate(w, r, &req) {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": action + "_invalid_request",
		}).Warnf("%s failed: invalid request body", action)
		return credentialsRequest{}, false
	}

	return req, true
}
