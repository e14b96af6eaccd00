package http

import (
	"context"
	"net/http"
	"time"

	commonhttp "github.com/AlibekovAA/credential-auth/internal/common/http"
	"github.com/AlibekovAA/credential-auth/internal/common/jwtverify"
	"github.com/AlibekovAA/credential-auth/internal/common/logger"
	"github.com/AlibekovAA/credential-auth/internal/user/domain"
)

type UserService interface {
	GetMe(ctx context.Context, userID string) (domain.User, error)
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Handler struct {
	users   UserService
	log     *logger.Logger
	errors  *commonhttp.ErrorHandler
	timeout time.Duration
}

func NewHandler(users UserService, log *logger.Logger, requestTimeout time.Duration) *Handler {
	return &Handler{
		users:   users,
		log:     log,
		errors:  commonhttp.NewErrorHandler(log),
		timeout: requestTimeout,
	}
}

// Register mounts the user routes behind auth, which must populate jwtverify claims.
func (h *Handler) Register(mux *http.ServeMux, auth func(http.Handler) http.Handler) {
	get := commonhttp.RequireMethod(http.MethodGet)
	withTimeout := commonhttp.WithTimeout(h.timeout)

	mux.Handle("/users/me", auth(get(withTimeout(h.me))))
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization", nil, commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	if err := commonhttp.ValidateUUID(claims.UserID); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"user_id": claims.UserID,
			"action":  "get_me_invalid_subject",
		}).Warnf("get me failed: subject is not a user id: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeInvalidToken, "invalid token", nil, commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	user, err := h.users.GetMe(r.Context(), claims.UserID)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, userResponse{
		ID:        string(user.ID),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
