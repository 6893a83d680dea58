package dto

// CategoryRequest body para crear/actualizar categorías.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse representación de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DepartmentRequest body para crear/actualizar departamentos.
type DepartmentRequest struct {
	Name string `json:"name"`
}

// DepartmentResponse representación de un departamento.
type DepartmentResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// NotificationResponse notificación in-app del usuario.
type NotificationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Link      string `json:"link,omitempty"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

// NotificationListResponse respuesta de GET /api/notifications.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// ActivityLogResponse fila del log de actividad.
type ActivityLogResponse struct {
	ID           string `json:"id"`
	User         string `json:"user"`
	Action       string `json:"action"`
	Resource     string `json:"resource"`
	ResourceName string `json:"resource_name"`
	Timestamp    string `json:"timestamp"`
	IP           string `json:"ip,omitempty"`
	Type         string `json:"type"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
