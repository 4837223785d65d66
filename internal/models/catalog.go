package models

import "time"

type Category struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	SubCategories []SubCategory `json:"sub_categories,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

type SubCategory struct {
	ID         int       `json:"id"`
	CategoryID int       `json:"category_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

type Product struct {
	ID              int              `json:"id"`
	SubCategoryID   int              `json:"sub_category_id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Price           float64          `json:"price"`
	Active          bool             `json:"active"`
	MaterialOptions []MaterialOption `json:"material_options,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// MaterialOption is a per-product finishing/material choice with an
// additional charge applied per unit.
type MaterialOption struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Surcharge float64 `json:"surcharge"`
}
