package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/cost-tracker/internal/dto"
	"github.com/GregMSThompson/cost-tracker/internal/middleware"
	"github.com/GregMSThompson/cost-tracker/internal/models"
	"github.com/GregMSThompson/cost-tracker/internal/response"
)

type categoryService interface {
	List(ctx context.Context, uid, typ string) (dto.CategoriesResult, error)
	CreateCategory(ctx context.Context, uid string, req dto.CategoryRequest) (*models.CustomCategory, error)
	CreateSubcategory(ctx context.Context, uid string, req dto.SubcategoryRequest) (*models.CustomSubcategory, error)
}

type categoryHandlers struct {
	ResponseHandler response.ResponseHandler
	CategorySvc     categoryService
}

func NewCategoryHandlers(deps *Deps) *categoryHandlers {
	return &categoryHandlers{
		ResponseHandler: deps.ResponseHandler,
		CategorySvc:     deps.CategorySvc,
	}
}

func (h *categoryHandlers) CategoryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListCategories)
	r.Post("/", h.CreateCategory)
	return r
}

func (h *categoryHandlers) SubcategoryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateSubcategory)
	return r
}

func (h *categoryHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	res, err := h.CategorySvc.List(r.Context(), middleware.UID(r.Context()), r.URL.Query().Get("type"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *categoryHandlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	cat, err := h.CategorySvc.CreateCategory(r.Context(), middleware.UID(r.Context()), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, cat)
}

func (h *categoryHandlers) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	var req dto.SubcategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	sub, err := h.CategorySvc.CreateSubcategory(r.Context(), middleware.UID(r.Context()), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, sub)
}
