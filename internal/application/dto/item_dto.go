package dto

import "github.com/shopspring/decimal"

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Description  string  `json:"description"`
	CategoryID   string  `json:"category_id"`
	DepartmentID *string `json:"department_id"`
	UnitValue    float64 `json:"value"`
	Status       string  `json:"status"`
	Quantity     int     `json:"quantity"`
	MinStock     int     `json:"min_stock"`
}

// UpdateItemRequest body para PUT /api/items/{id}. Punteros: solo se
// actualizan los campos presentes. La cantidad no se edita por aquí.
type UpdateItemRequest struct {
	Name         *string  `json:"name"`
	Brand        *string  `json:"brand"`
	Description  *string  `json:"description"`
	CategoryID   *string  `json:"category_id"`
	DepartmentID *string  `json:"department_id"`
	UnitValue    *float64 `json:"value"`
	Status       *string  `json:"status"`
	MinStock     *int     `json:"min_stock"`
}

// ItemResponse representación de un ítem en respuestas.
type ItemResponse struct {
	ID           string             `json:"id"`
	Code         string             `json:"code"`
	Name         string             `json:"name"`
	Brand        string             `json:"brand,omitempty"`
	Description  string             `json:"description,omitempty"`
	Category     string             `json:"category,omitempty"`
	CategoryID   string             `json:"category_id"`
	Location     string             `json:"location"`
	DepartmentID *string            `json:"department_id"`
	UnitValue    decimal.Decimal    `json:"value"`
	TotalValue   decimal.Decimal    `json:"value_total"`
	Status       string             `json:"status"`
	StatusKey    string             `json:"status_key"`
	Quantity     int                `json:"quantity"`
	MinStock     int                `json:"min_stock"`
	CreatedAt    string             `json:"date"`
	Movements    []MovementResponse `json:"movements,omitempty"`
}

// CatalogItemResponse ítem del catálogo solicitable (stock disponible).
type CatalogItemResponse struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Brand      string `json:"brand,omitempty"`
	Category   string `json:"category,omitempty"`
	CategoryID string `json:"category_id"`
	Quantity   int    `json:"quantity"`
	UnitValue  decimal.Decimal `json:"value"`
}
