package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GregMSThompson/cost-tracker/internal/errs"
	"github.com/GregMSThompson/cost-tracker/internal/models"
)

type userStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *userStore {
	return &userStore{pool: pool}
}

func (us *userStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := us.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.NewAlreadyExistsError("user with this email already exists")
		}
		return errs.NewDatabaseError("create", "failed to create user", err)
	}
	return nil
}

func (us *userStore) UpdateUser(ctx context.Context, user *models.User) error {
	tag, err := us.pool.Exec(ctx, `
		UPDATE users SET name = $2, email = $3, password_hash = $4, updated_at = $5
		WHERE id = $1`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.NewAlreadyExistsError("email already in use")
		}
		return errs.NewDatabaseError("update", "failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("user not found")
	}
	return nil
}

func (us *userStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	return us.getBy(ctx, "id", id)
}

func (us *userStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return us.getBy(ctx, "email", email)
}

func (us *userStore) getBy(ctx context.Context, column, value string) (*models.User, error) {
	var user models.User
	err := us.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE `+column+` = $1`,
		value,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isMalformedID(err) {
			return nil, errs.NewNotFoundError("user not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get user", err)
	}
	return &user, nil
}
