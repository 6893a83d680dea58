package http

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Resolver resuelve nombres de referencias para las respuestas. Los fallos de
// resolución dejan el campo vacío; nunca tumban la respuesta.
type Resolver struct {
	catRepo  repository.CategoryRepository
	deptRepo repository.DepartmentRepository
	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
}

// NewResolver construye el resolvedor de nombres.
func NewResolver(
	catRepo repository.CategoryRepository,
	deptRepo repository.DepartmentRepository,
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
) *Resolver {
	return &Resolver{catRepo: catRepo, deptRepo: deptRepo, userRepo: userRepo, itemRepo: itemRepo}
}

func (r *Resolver) categoryName(ctx context.Context, id string) string {
	if id == "" {
		return ""
	}
	cat, err := r.catRepo.GetByID(ctx, id)
	if err != nil || cat == nil {
		return ""
	}
	return cat.Name
}

// departmentName "Almacén" cuando el ítem no está asignado a ningún sector.
func (r *Resolver) departmentName(ctx context.Context, id *string) string {
	if id == nil || *id == "" {
		return "Almacén"
	}
	dept, err := r.deptRepo.GetByID(ctx, *id)
	if err != nil || dept == nil {
		return ""
	}
	return dept.Name
}

func (r *Resolver) userName(ctx context.Context, id string) string {
	if id == "" {
		return ""
	}
	user, err := r.userRepo.GetByID(ctx, id)
	if err != nil || user == nil {
		return ""
	}
	return user.Name
}

func (r *Resolver) user(ctx context.Context, id string) *entity.User {
	if id == "" {
		return nil
	}
	user, err := r.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return user
}

func (r *Resolver) item(ctx context.Context, id string) *entity.InventoryItem {
	item, err := r.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return item
}

// ── mapeos a DTOs ─────────────────────────────────────────────────────────────

func (r *Resolver) itemResponse(ctx context.Context, item *entity.InventoryItem, movements []*entity.Movement) dto.ItemResponse {
	resp := dto.ItemResponse{
		ID:           item.ID,
		Code:         item.Code,
		Name:         item.Name,
		Brand:        item.Brand,
		Description:  item.Description,
		Category:     r.categoryName(ctx, item.CategoryID),
		CategoryID:   item.CategoryID,
		Location:     r.departmentName(ctx, item.DepartmentID),
		DepartmentID: item.DepartmentID,
		UnitValue:    item.UnitValue,
		TotalValue:   item.TotalValue(),
		Status:       item.Status.Label(),
		StatusKey:    string(item.Status),
		Quantity:     item.Quantity,
		MinStock:     item.MinStock,
		CreatedAt:    item.CreatedAt.Format("2006-01-02"),
	}
	for _, m := range movements {
		resp.Movements = append(resp.Movements, r.movementResponse(ctx, m))
	}
	return resp
}

func (r *Resolver) catalogItemResponse(ctx context.Context, item *entity.InventoryItem) dto.CatalogItemResponse {
	return dto.CatalogItemResponse{
		ID:         item.ID,
		Code:       item.Code,
		Name:       item.Name,
		Brand:      item.Brand,
		Category:   r.categoryName(ctx, item.CategoryID),
		CategoryID: item.CategoryID,
		Quantity:   item.Quantity,
		UnitValue:  item.UnitValue,
	}
}

func (r *Resolver) movementResponse(ctx context.Context, m *entity.Movement) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:           m.ID,
		ItemID:       m.ItemID,
		UserName:     r.userName(ctx, m.UserID),
		Type:         string(m.Type),
		TypeLabel:    m.Type.Label(),
		Quantity:     m.Quantity,
		MovementDate: m.MovementDate.Format("2006-01-02"),
		Notes:        m.Notes,
	}
	if item := r.item(ctx, m.ItemID); item != nil {
		resp.ItemName = item.Name
		resp.ItemCode = item.Code
	}
	if m.DepartmentID != nil {
		resp.DepartmentName = r.departmentName(ctx, m.DepartmentID)
	}
	return resp
}

func (r *Resolver) stockRequestResponse(ctx context.Context, req *entity.StockRequest) dto.StockRequestResponse {
	resp := dto.StockRequestResponse{
		ID:          req.ID,
		RequesterID: req.RequesterID,
		Status:      string(req.Status),
		StatusLabel: req.Status.Label(),
		Notes:       req.Notes,
		CreatedAt:   req.CreatedAt.Format("2006-01-02 15:04:05"),
		Items:       make([]dto.StockRequestItemResponse, 0, len(req.Items)),
	}
	if requester := r.user(ctx, req.RequesterID); requester != nil {
		resp.RequesterName = requester.Name
		resp.UserDepartment = r.departmentName(ctx, requester.DepartmentID)
	}
	for _, line := range req.Items {
		itemResp := dto.StockRequestItemResponse{
			ID:       line.ID,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		}
		if item := r.item(ctx, line.ItemID); item != nil {
			itemResp.ItemName = item.Name
			itemResp.ItemCode = item.Code
		}
		resp.Items = append(resp.Items, itemResp)
	}
	return resp
}

func (r *Resolver) userResponse(ctx context.Context, user *entity.User, role *entity.Role) dto.UserResponse {
	resp := dto.UserResponse{
		ID:           user.ID,
		Code:         user.Code,
		Name:         user.Name,
		Email:        user.Email,
		DepartmentID: user.DepartmentID,
		Status:       userStatusLabel(user.Status),
		StatusKey:    user.Status,
		JoinDate:     user.JoinDate.Format("2006-01-02"),
	}
	if user.DepartmentID != nil {
		resp.Department = r.departmentName(ctx, user.DepartmentID)
	}
	if role != nil {
		resp.Role = role.Name
		caps := role.Capabilities
		if role.IsSuper {
			caps = entity.AllCapabilities()
		}
		for _, c := range caps {
			resp.Permissions = append(resp.Permissions, string(c))
		}
	}
	return resp
}

func userStatusLabel(status string) string {
	if status == entity.UserStatusActive {
		return "Activo"
	}
	return "Inactivo"
}

func roleResponse(role *entity.Role, userCount int) dto.RoleResponse {
	resp := dto.RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		IsSuper:     role.IsSuper,
		Permissions: make([]string, 0, len(role.Capabilities)),
		UserCount:   userCount,
	}
	for _, c := range role.Capabilities {
		resp.Permissions = append(resp.Permissions, string(c))
	}
	return resp
}

func (r *Resolver) fixedAssetResponse(ctx context.Context, asset *entity.FixedAsset) dto.FixedAssetResponse {
	resp := dto.FixedAssetResponse{
		ID:               asset.ID,
		PatrimonyCode:    asset.PatrimonyCode,
		SerialNumber:     asset.SerialNumber,
		Name:             asset.Name,
		Brand:            asset.Brand,
		Description:      asset.Description,
		CategoryID:       asset.CategoryID,
		Category:         r.categoryName(ctx, asset.CategoryID),
		DepartmentID:     asset.DepartmentID,
		Status:           string(asset.Status),
		AcquisitionValue: asset.AcquisitionValue,
		InvoiceNumber:    asset.InvoiceNumber,
		CreatedAt:        asset.CreatedAt.Format("2006-01-02"),
		UpdatedAt:        asset.UpdatedAt.Format("2006-01-02"),
	}
	if asset.DepartmentID != "" {
		if dept, err := r.deptRepo.GetByID(ctx, asset.DepartmentID); err == nil && dept != nil {
			resp.Department = dept.Name
			resp.DepartmentCode = dept.Code
		}
	}
	if asset.AcquisitionDate != nil {
		resp.AcquisitionDate = asset.AcquisitionDate.Format("2006-01-02")
	}
	return resp
}

func notificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		Type:      n.Type,
		Read:      n.Read(),
		CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func (r *Resolver) activityLogResponse(ctx context.Context, l *entity.ActivityLog) dto.ActivityLogResponse {
	resp := dto.ActivityLogResponse{
		ID:           l.ID,
		Action:       l.Action,
		Resource:     l.Resource,
		ResourceName: l.ResourceName,
		Timestamp:    l.CreatedAt.Format("2006-01-02 15:04:05"),
		IP:           l.IP,
		Type:         l.Action,
	}
	if l.UserID != nil {
		resp.User = r.userName(ctx, *l.UserID)
	}
	if resp.User == "" {
		resp.User = "Sistema"
	}
	return resp
}
