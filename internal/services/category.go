package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/cost-tracker/internal/dto"
	"github.com/GregMSThompson/cost-tracker/internal/errs"
	"github.com/GregMSThompson/cost-tracker/internal/models"
	"github.com/GregMSThompson/cost-tracker/pkg/logger"
)

type categoryStore interface {
	CreateCategory(ctx context.Context, c *models.CustomCategory) error
	CreateSubcategory(ctx context.Context, c *models.CustomSubcategory) error
	ListCategories(ctx context.Context, uid, typ string) ([]models.CustomCategory, error)
	ListSubcategories(ctx context.Context, uid, typ string) ([]models.CustomSubcategory, error)
}

type categoryService struct {
	store categoryStore
}

func NewCategoryService(store categoryStore) *categoryService {
	return &categoryService{store: store}
}

// List merges the predefined catalog with the user's own categories.
func (s *categoryService) List(ctx context.Context, uid, typ string) (dto.CategoriesResult, error) {
	if !models.ValidType(typ) {
		return dto.CategoriesResult{}, errs.NewValidationError("type must be either income or expense")
	}

	cats, err := s.store.ListCategories(ctx, uid, typ)
	if err != nil {
		return dto.CategoriesResult{}, err
	}
	subs, err := s.store.ListSubcategories(ctx, uid, typ)
	if err != nil {
		return dto.CategoriesResult{}, err
	}

	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return dto.CategoriesResult{
		Type:                typ,
		Predefined:          predefinedCategories[typ],
		CustomCategories:    names,
		CustomSubcategories: subs,
	}, nil
}

// CreateCategory stores a custom category and, when both names are given,
// a subcategory alongside it.
func (s *categoryService) CreateCategory(ctx context.Context, uid string, req dto.CategoryRequest) (*models.CustomCategory, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" || !models.ValidType(req.Type) {
		return nil, errs.NewValidationError("name and type are required")
	}
	if isPredefinedCategory(req.Type, name) {
		return nil, errs.NewAlreadyExistsError("category already exists")
	}

	// the optional subcategory is checked before anything is written
	var sub *models.CustomSubcategory
	if req.CategoryName != "" && req.SubcategoryName != "" {
		var err error
		sub, err = newSubcategory(uid, dto.SubcategoryRequest{
			CategoryName:    req.CategoryName,
			SubcategoryName: req.SubcategoryName,
			Type:            req.Type,
		})
		if err != nil {
			return nil, err
		}
	}

	cat := &models.CustomCategory{
		ID:        uuid.NewString(),
		UserID:    uid,
		Name:      name,
		Type:      req.Type,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateCategory(ctx, cat); err != nil {
		log.Warn("failed to create category", "error", err)
		return nil, err
	}

	if sub != nil {
		if err := s.store.CreateSubcategory(ctx, sub); err != nil {
			log.Warn("failed to create subcategory", "error", err)
			return nil, err
		}
	}

	log.Info("category created", "name", name, "type", req.Type)
	return cat, nil
}

func (s *categoryService) CreateSubcategory(ctx context.Context, uid string, req dto.SubcategoryRequest) (*models.CustomSubcategory, error) {
	sub, err := newSubcategory(uid, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateSubcategory(ctx, sub); err != nil {
		logger.FromContext(ctx).Warn("failed to create subcategory", "error", err)
		return nil, err
	}
	return sub, nil
}

func newSubcategory(uid string, req dto.SubcategoryRequest) (*models.CustomSubcategory, error) {
	category := strings.TrimSpace(req.CategoryName)
	name := strings.TrimSpace(req.SubcategoryName)
	if category == "" || name == "" || !models.ValidType(req.Type) {
		return nil, errs.NewValidationError("categoryName, subcategoryName and type are required")
	}
	if isPredefinedSubcategory(req.Type, category, name) {
		return nil, errs.NewAlreadyExistsError("subcategory already exists")
	}

	return &models.CustomSubcategory{
		ID:              uuid.NewString(),
		UserID:          uid,
		CategoryName:    category,
		SubcategoryName: name,
		Type:            req.Type,
		CreatedAt:       time.Now(),
	}, nil
}
