package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/credential-auth/internal/common/db"
	commonerrors "github.com/AlibekovAA/credential-auth/internal/common/errors"
	"github.com/AlibekovAA/credential-auth/internal/common/logger"
	"github.com/AlibekovAA/credential-auth/internal/user/domain"
)

var (
	ErrUserNotFound       = commonerrors.ErrUserNotFound
	ErrEmailAlreadyExists = commonerrors.ErrEmailAlreadyExists
)

// Repository is the credential store. Create must rely on an atomic
// uniqueness check and report a duplicate email as ErrEmailAlreadyExists.
type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
}

type PgRepository struct {
	pool  *pgxpool.Pool
	log   *logger.Logger
	retry db.RetryConfig
}

func NewPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PgRepository {
	return &PgRepository{pool: pool, log: log, retry: db.DefaultRetryConfig}
}

func (r *PgRepository) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2)
		 RETURNING id::text, email, password_hash, created_at`,
		email,
		passwordHash,
	)

	user, err := scanUser(row)
	if err := db.HandleInsertError(err, ErrEmailAlreadyExists, "create user", start); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, "find user by email",
		`SELECT id::text, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	)
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	if _, err := uuid.Parse(string(id)); err != nil {
		return domain.User{}, ErrUserNotFound
	}
	return r.findOne(ctx, "find user by id",
		`SELECT id::text, email, password_hash, created_at FROM users WHERE id = $1`,
		string(id),
	)
}

func (r *PgRepository) findOne(ctx context.Context, operation, query string, arg any) (domain.User, error) {
	var user domain.User
	err := db.RetryWithBackoff(ctx, r.log, r.retry, func() error {
		start := time.Now()
		var err error
		user, err = scanUser(r.pool.QueryRow(ctx, query, arg))
		return db.HandleQueryError(err, ErrUserNotFound, operation, start)
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		id   string
		user domain.User
	)
	if err := row.Scan(&id, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		return domain.User{}, err
	}
	user.ID = domain.ID(id)
	return user, nil
}
