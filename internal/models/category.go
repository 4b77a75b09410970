package models

import "time"

type CustomCategory struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

type CustomSubcategory struct {
	ID              string    `json:"id"`
	UserID          string    `json:"-"`
	CategoryName    string    `json:"categoryName"`
	SubcategoryName string    `json:"subcategoryName"`
	Type            string    `json:"type"`
	CreatedAt       time.Time `json:"createdAt"`
}
