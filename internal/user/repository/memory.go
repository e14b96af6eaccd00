package repository

import (
	"context"
	"sync"

	"github.com/AlibekovAA/credential-auth/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/credential-auth/internal/common/crypto"
	"github.com/AlibekovAA/credential-auth/internal/user/domain"
)

// MemoryRepository keeps users in process memory. The email index is checked
// and written under one lock.
type MemoryRepository struct {
	mu          sync.RWMutex
	byID        map[domain.ID]domain.User
	byEmail     map[string]domain.ID
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
}

func NewMemoryRepository(idGenerator commoncrypto.IDGenerator, clk clock.Clock) *MemoryRepository {
	return &MemoryRepository{
		byID:        make(map[domain.ID]domain.User),
		byEmail:     make(map[string]domain.ID),
		idGenerator: idGenerator,
		clock:       clk,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	id, err := r.idGenerator.NewID()
	if err != nil {
		return domain.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return domain.User{}, ErrEmailAlreadyExists
	}

	user := domain.User{
		ID:           domain.ID(id),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    r.clock.Now().UTC(),
	}
	r.byID[user.ID] = user
	r.byEmail[email] = user.ID

	return user, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return r.byID[id], nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
