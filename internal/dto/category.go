package dto

import "github.com/GregMSThompson/cost-tracker/internal/models"

type CategoryRequest struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	CategoryName    string `json:"categoryName,omitempty"`
	SubcategoryName string `json:"subcategoryName,omitempty"`
}

type SubcategoryRequest struct {
	CategoryName    string `json:"categoryName"`
	SubcategoryName string `json:"subcategoryName"`
	Type            string `json:"type"`
}

type PredefinedCategory struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

type CategoriesResult struct {
	Type                string                     `json:"type"`
	Predefined          []PredefinedCategory       `json:"predefined"`
	CustomCategories    []string                   `json:"customCategories"`
	CustomSubcategories []models.CustomSubcategory `json:"customSubcategories"`
}
