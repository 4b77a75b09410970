package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GregMSThompson/cost-tracker/internal/errs"
	"github.com/GregMSThompson/cost-tracker/internal/models"
)

type categoryStore struct {
	pool *pgxpool.Pool
}

func NewCategoryStore(pool *pgxpool.Pool) *categoryStore {
	return &categoryStore{pool: pool}
}

func (s *categoryStore) CreateCategory(ctx context.Context, c *models.CustomCategory) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO custom_categories (id, user_id, name, type, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.UserID, c.Name, c.Type, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.NewAlreadyExistsError("category already exists")
		}
		return errs.NewDatabaseError("create", "failed to create category", err)
	}
	return nil
}

func (s *categoryStore) CreateSubcategory(ctx context.Context, c *models.CustomSubcategory) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO custom_subcategories (id, user_id, category_name, subcategory_name, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.UserID, c.CategoryName, c.SubcategoryName, c.Type, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.NewAlreadyExistsError("subcategory already exists")
		}
		return errs.NewDatabaseError("create", "failed to create subcategory", err)
	}
	return nil
}

func (s *categoryStore) ListCategories(ctx context.Context, uid, typ string) ([]models.CustomCategory, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, name, type, created_at FROM custom_categories
		WHERE user_id = $1 AND type = $2
		ORDER BY name`,
		uid, typ,
	)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list categories", err)
	}
	defer rows.Close()

	out := make([]models.CustomCategory, 0)
	for rows.Next() {
		var c models.CustomCategory
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse category", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list categories", err)
	}
	return out, nil
}

func (s *categoryStore) ListSubcategories(ctx context.Context, uid, typ string) ([]models.CustomSubcategory, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, category_name, subcategory_name, type, created_at FROM custom_subcategories
		WHERE user_id = $1 AND type = $2
		ORDER BY category_name, subcategory_name`,
		uid, typ,
	)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list subcategories", err)
	}
	defer rows.Close()

	out := make([]models.CustomSubcategory, 0)
	for rows.Next() {
		var c models.CustomSubcategory
		if err := rows.Scan(&c.ID, &c.UserID, &c.CategoryName, &c.SubcategoryName, &c.Type, &c.CreatedAt); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse subcategory", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list subcategories", err)
	}
	return out, nil
}
