package services

import (
	"github.com/GregMSThompson/cost-tracker/internal/dto"
	"github.com/GregMSThompson/cost-tracker/internal/models"
)

var predefinedCategories = map[string][]dto.PredefinedCategory{
	models.TypeIncome: {
		{Name: "Fizetés", Subcategories: []string{}},
		{Name: "Egyéb bevétel", Subcategories: []string{}},
	},
	models.TypeExpense: {
		{Name: "Vásárlások", Subcategories: []string{}},
		{Name: "Számlák", Subcategories: []string{"bérleti díj", "telefon", "közlekedés", "háztartási számlák"}},
		{Name: "Hiteltörlesztések", Subcategories: []string{"Lakás", "autó", "tanulmány"}},
		{Name: "Szórakozás", Subcategories: []string{"Éttermek", "bulik", "jegyek", "impulzus vásárlások"}},
	},
}

// defaultCategory is the first predefined category of the type.
func defaultCategory(typ string) string {
	return predefinedCategories[typ][0].Name
}

func isPredefinedCategory(typ, name string) bool {
	for _, c := range predefinedCategories[typ] {
		if c.Name == name {
			return true
		}
	}
	return false
}

func isPredefinedSubcategory(typ, category, name string) bool {
	for _, c := range predefinedCategories[typ] {
		if c.Name != category {
			continue
		}
		for _, s := range c.Subcategories {
			if s == name {
				return true
			}
		}
	}
	return false
}
