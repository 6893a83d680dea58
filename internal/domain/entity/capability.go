package entity

// Capability es una capacidad nombrada que habilita una clase de operación.
// El conjunto es cerrado: cada endpoint mutador o de listado verifica una de
// estas capacidades antes de ejecutar.
type Capability string

const (
	CapViewDashboard     Capability = "view_dashboard"
	CapCreate            Capability = "create"
	CapRead              Capability = "read"
	CapUpdate            Capability = "update"
	CapDelete            Capability = "delete"
	CapManageUsers       Capability = "manage_users"
	CapManageRoles       Capability = "manage_roles"
	CapViewLogs          Capability = "view_logs"
	CapExportData        Capability = "export_data"
	CapViewStockRequests Capability = "view_stock_requests"
	CapRequestProducts   Capability = "request_products"
)

// AllCapabilities enumera todas las capacidades en orden estable.
func AllCapabilities() []Capability {
	return []Capability{
		CapViewDashboard,
		CapCreate,
		CapRead,
		CapUpdate,
		CapDelete,
		CapManageUsers,
		CapManageRoles,
		CapViewLogs,
		CapExportData,
		CapViewStockRequests,
		CapRequestProducts,
	}
}

// capabilityLabels etiquetas legibles para pantallas de administración.
var capabilityLabels = map[Capability]string{
	CapViewDashboard:     "Acceder al Dashboard",
	CapCreate:            "Crear",
	CapRead:              "Visualizar",
	CapUpdate:            "Editar",
	CapDelete:            "Eliminar",
	CapManageUsers:       "Gestionar Usuarios",
	CapManageRoles:       "Gestionar Permisos",
	CapViewLogs:          "Ver Logs",
	CapExportData:        "Exportar Datos",
	CapViewStockRequests: "Ver Solicitudes de Productos",
	CapRequestProducts:   "Solicitar Productos",
}

// Label devuelve la etiqueta legible de la capacidad.
func (c Capability) Label() string {
	if l, ok := capabilityLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid indica si la cadena corresponde a una capacidad conocida.
func (c Capability) Valid() bool {
	_, ok := capabilityLabels[c]
	return ok
}
