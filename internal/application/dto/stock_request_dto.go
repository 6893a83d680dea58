package dto

// CreateStockRequestRequest body para POST /api/stock-requests.
type CreateStockRequestRequest struct {
	Items []StockRequestItemInput `json:"items"`
	Notes string                  `json:"notes"`
}

// StockRequestItemInput línea del carrito: ítem + cantidad (> 0).
type StockRequestItemInput struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// UpdateStockRequestRequest body para PUT /api/stock-requests/{id}.
type UpdateStockRequestRequest struct {
	Status string `json:"status"`
}

// StockRequestItemResponse línea de la solicitud con el ítem resuelto.
type StockRequestItemResponse struct {
	ID       string `json:"id"`
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name,omitempty"`
	ItemCode string `json:"item_code,omitempty"`
	Quantity int    `json:"quantity"`
}

// StockRequestResponse representación de una solicitud.
type StockRequestResponse struct {
	ID             string                     `json:"id"`
	RequesterID    string                     `json:"user_id"`
	RequesterName  string                     `json:"user_name,omitempty"`
	UserDepartment string                     `json:"user_department,omitempty"`
	Status         string                     `json:"status"`
	StatusLabel    string                     `json:"status_label,omitempty"`
	Notes          string                     `json:"notes,omitempty"`
	CreatedAt      string                     `json:"created_at"`
	Items          []StockRequestItemResponse `json:"items"`
}

// FulfillResponse respuesta de POST /api/stock-requests/{id}/fulfill.
type FulfillResponse struct {
	Message string               `json:"message"`
	Request StockRequestResponse `json:"request"`
}
