package dto

// EntryRequest body para POST /api/items/{id}/entry.
type EntryRequest struct {
	Quantity     int    `json:"quantity"`
	Notes        string `json:"notes"`
	MovementDate string `json:"movement_date"` // YYYY-MM-DD, opcional
}

// WithdrawRequest body para POST /api/items/{id}/withdraw.
type WithdrawRequest struct {
	UserID       string `json:"user_id"`
	DepartmentID string `json:"department_id"`
	Quantity     int    `json:"quantity"` // por defecto 1
	Notes        string `json:"notes"`
	MovementDate string `json:"movement_date"` // YYYY-MM-DD, opcional
}

// MovementResponse representación de un asiento del libro.
type MovementResponse struct {
	ID             string `json:"id"`
	ItemID         string `json:"item_id,omitempty"`
	ItemName       string `json:"item_name,omitempty"`
	ItemCode       string `json:"item_code,omitempty"`
	UserName       string `json:"user_name,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	Type           string `json:"type"`
	TypeLabel      string `json:"type_label,omitempty"`
	Quantity       int    `json:"quantity"`
	MovementDate   string `json:"movement_date"`
	Notes          string `json:"notes,omitempty"`
}

// MovementCreatedResponse respuesta de entry/withdraw.
type MovementCreatedResponse struct {
	Message  string           `json:"message"`
	Movement MovementResponse `json:"movement"`
}
