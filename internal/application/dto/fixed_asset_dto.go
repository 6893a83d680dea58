package dto

import "github.com/shopspring/decimal"

// FixedAssetRequest body para crear/actualizar patrimonio.
type FixedAssetRequest struct {
	PatrimonyCode    string           `json:"patrimony_code"`
	SerialNumber     string           `json:"serial_number"`
	Name             string           `json:"name"`
	Brand            string           `json:"brand"`
	Description      string           `json:"description"`
	CategoryID       string           `json:"category_id"`
	DepartmentID     string           `json:"department_id"`
	Status           string           `json:"status"`
	AcquisitionDate  string           `json:"acquisition_date"` // YYYY-MM-DD
	AcquisitionValue *decimal.Decimal `json:"acquisition_value"`
	InvoiceNumber    string           `json:"invoice_number"`
}

// FixedAssetResponse representación de un bien patrimonial.
type FixedAssetResponse struct {
	ID               string           `json:"id"`
	PatrimonyCode    string           `json:"patrimony_code"`
	SerialNumber     string           `json:"serial_number,omitempty"`
	Name             string           `json:"name"`
	Brand            string           `json:"brand,omitempty"`
	Description      string           `json:"description,omitempty"`
	CategoryID       string           `json:"category_id"`
	Category         string           `json:"category,omitempty"`
	DepartmentID     string           `json:"department_id"`
	Department       string           `json:"department,omitempty"`
	DepartmentCode   string           `json:"department_code,omitempty"`
	Status           string           `json:"status"`
	AcquisitionDate  string           `json:"acquisition_date,omitempty"`
	AcquisitionValue *decimal.Decimal `json:"acquisition_value"`
	InvoiceNumber    string           `json:"invoice_number,omitempty"`
	CreatedAt        string           `json:"created_at"`
	UpdatedAt        string           `json:"updated_at"`
}

// ImportResultResponse resumen de una importación de patrimonio.
type ImportResultResponse struct {
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
