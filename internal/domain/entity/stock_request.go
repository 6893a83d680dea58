package entity

import "time"

// RequestStatus estado de una solicitud de productos.
type RequestStatus string

// Estados del workflow de solicitudes. pending es inicial; separation es un
// intermedio opcional; fulfilled y cancelled son terminales.
const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusSeparation RequestStatus = "separation"
	RequestStatusFulfilled  RequestStatus = "fulfilled"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

// Valid indica si el estado es conocido.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusSeparation, RequestStatusFulfilled, RequestStatusCancelled:
		return true
	}
	return false
}

// Terminal indica si el estado no admite más transiciones.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusFulfilled || s == RequestStatusCancelled
}

// requestTransitions tabla explícita de transiciones permitidas.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:    {RequestStatusSeparation, RequestStatusFulfilled, RequestStatusCancelled},
	RequestStatusSeparation: {RequestStatusPending, RequestStatusFulfilled, RequestStatusCancelled},
}

// CanTransition indica si la transición s -> to está permitida por la tabla.
func (s RequestStatus) CanTransition(to RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// requestStatusLabels etiquetas legibles por estado.
var requestStatusLabels = map[RequestStatus]string{
	RequestStatusPending:    "Pendiente",
	RequestStatusSeparation: "En Separación",
	RequestStatusFulfilled:  "Atendida",
	RequestStatusCancelled:  "Cancelada",
}

// Label etiqueta legible del estado.
func (s RequestStatus) Label() string {
	if l, ok := requestStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// StockRequest carrito de ítems de un solicitante a la espera de atención del
// almacén. Los ítems son inmutables una vez creada la solicitud.
type StockRequest struct {
	ID          string
	RequesterID string
	Status      RequestStatus
	Notes       string
	Items       []StockRequestItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockRequestItem línea de una solicitud: ítem + cantidad pedida (> 0).
type StockRequestItem struct {
	ID        string
	RequestID string
	ItemID    string
	Quantity  int
}
