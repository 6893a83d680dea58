// Package notify reparte notificaciones in-app. Los fallos se registran en el
// log pero nunca abortan la operación que las origina.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// Service crea notificaciones para los usuarios interesados en cada evento.
type Service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	log       *logger.Logger
}

// NewService construye el servicio de notificaciones.
func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, log *logger.Logger) *Service {
	return &Service{notifRepo: notifRepo, userRepo: userRepo, log: log.Component("notificaciones")}
}

// NotifyRequestCreated notifica a todos los usuarios con acceso al workflow de
// solicitudes, excepto al propio solicitante.
func (s *Service) NotifyRequestCreated(ctx context.Context, req *entity.StockRequest, requesterName string) {
	recipients, err := s.userRepo.ListIDsWithCapability(ctx, entity.CapViewStockRequests)
	if err != nil {
		s.log.Warn().Err(err).Str("request_id", req.ID).Msg("No se pudieron resolver los destinatarios de la notificación")
		return
	}
	now := time.Now()
	var batch []*entity.Notification
	for _, userID := range recipients {
		if userID == req.RequesterID {
			continue
		}
		batch = append(batch, &entity.Notification{
			ID:        uuid.New().String(),
			UserID:    userID,
			Title:     "Nueva solicitud de stock",
			Message:   fmt.Sprintf("%s creó una solicitud con %d ítem(s).", requesterName, len(req.Items)),
			Link:      "/stock-requests/" + req.ID,
			Type:      entity.NotificationTypeStockRequestCreated,
			CreatedAt: now,
		})
	}
	if len(batch) == 0 {
		return
	}
	if err := s.notifRepo.CreateBatch(ctx, batch); err != nil {
		s.log.Warn().Err(err).Str("request_id", req.ID).Int("recipients", len(batch)).
			Msg("No se pudieron crear las notificaciones de la solicitud")
	}
}
