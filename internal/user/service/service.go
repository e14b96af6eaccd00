package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlibekovAA/credential-auth/internal/common/logger"
	"github.com/AlibekovAA/credential-auth/internal/user/domain"
	userrepo "github.com/AlibekovAA/credential-auth/internal/user/repository"
)

var ErrUserNotFound = userrepo.ErrUserNotFound

type UserService struct {
	repo userrepo.Repository
	log  *logger.Logger
}

func NewUserService(repo userrepo.Repository, log *logger.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// GetMe loads the user behind an already verified token subject.
func (s *UserService) GetMe(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, domain.ID(userID))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": userID,
				"action":  "get_me_not_found",
			}).Warn("get me failed: user not found")
			return domain.User{}, ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "get_me_fetch_failed",
		}).Errorf("get me failed: %v", err)
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	return user, nil
}
