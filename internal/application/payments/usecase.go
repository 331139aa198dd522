package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/marketplace-api/internal/application/dto"
	"github.com/tu-usuario/marketplace-api/internal/application/ports"
	"github.com/tu-usuario/marketplace-api/internal/domain"
	"github.com/tu-usuario/marketplace-api/internal/domain/authz"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
	"github.com/tu-usuario/marketplace-api/internal/domain/lifecycle"
	"github.com/tu-usuario/marketplace-api/internal/domain/repository"
	"github.com/tu-usuario/marketplace-api/pkg/logger"
)

// dedupTTL es la ventana en la que un event_id repetido se considera duplicado.
const dedupTTL = 48 * time.Hour

// PaymentUseCase ingesta de callbacks del proveedor y reembolsos explícitos.
type PaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	dedup       ports.DedupStore
	events      ports.EventPublisher
	log         *logger.Logger
}

// NewPaymentUseCase construye el caso de uso. dedup y events pueden ser nil.
func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	dedup ports.DedupStore,
	events ports.EventPublisher,
	log *logger.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		dedup:       dedup,
		events:      events,
		log:         log,
	}
}

// HandleWebhook aplica el resultado reportado por el proveedor de pagos.
// Idempotente por dos capas: event_id repetido se descarta en el dedup store,
// y repetir el mismo resultado terminal sobre el pago es no-op en la máquina.
func (uc *PaymentUseCase) HandleWebhook(ctx context.Context, orderID string, in dto.PaymentWebhookRequest) (*dto.PaymentResponse, error) {
	if in.EventID == "" || in.TransactionID == "" || in.Status == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.dedup != nil {
		fresh, err := uc.dedup.MarkIfNew(ctx, in.EventID, dedupTTL)
		if err != nil {
			uc.log.Warn().Err(err).Str("event_id", in.EventID).Msg("dedup no disponible, se continúa")
		} else if !fresh {
			payment, err := uc.paymentRepo.GetByOrderID(orderID)
			if err != nil {
				return nil, err
			}
			if payment == nil {
				return nil, domain.ErrNotFound
			}
			return toPaymentResponse(payment), nil // evento ya procesado
		}
	}
	payment, err := uc.paymentRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if payment.TransactionID != "" && payment.TransactionID != in.TransactionID {
		return nil, domain.ErrConflict // callback de otra transacción
	}
	applied, err := lifecycle.ApplyProviderResult(payment, in.Status, in.FailureReason)
	if err != nil {
		return nil, err
	}
	if !applied {
		return toPaymentResponse(payment), nil // terminal repetido: no-op
	}
	payment.TransactionID = in.TransactionID
	payment.UpdatedAt = time.Now()
	if err := uc.paymentRepo.Update(payment); err != nil {
		return nil, err
	}
	uc.syncOrderPaymentStatus(payment)
	uc.publish(ctx, "payment.status_changed", payment.ID, map[string]string{
		"status":         payment.Status,
		"transaction_id": payment.TransactionID,
	})
	return toPaymentResponse(payment), nil
}

// Refund aplica un reembolso parcial o total. Solo admin con payment:refund.
// El acumulado decide entre partially_refunded y refunded; exceder el restante falla.
func (uc *PaymentUseCase) Refund(ctx context.Context, caller authz.Caller, paymentID string, in dto.RefundRequest) (*dto.PaymentResponse, error) {
	if err := authz.Check(caller, authz.Requirement{
		Roles:       []authz.Role{authz.RoleSuperAdmin, authz.RoleAdmin},
		Permissions: []authz.Permission{authz.PermPaymentRefund},
	}); err != nil {
		return nil, err
	}
	payment, err := uc.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if err := lifecycle.ApplyRefund(payment, in.Amount); err != nil {
		return nil, err
	}
	payment.UpdatedAt = time.Now()
	if err := uc.paymentRepo.Update(payment); err != nil {
		return nil, err
	}
	uc.syncOrderPaymentStatus(payment)
	uc.publish(ctx, "payment.refunded", payment.ID, map[string]string{
		"status":   payment.Status,
		"amount":   in.Amount.String(),
		"refunded": payment.RefundedAmount.String(),
		"reason":   in.Reason,
	})
	return toPaymentResponse(payment), nil
}

// GetByOrder devuelve el pago de una orden: dueño o payment:view.
func (uc *PaymentUseCase) GetByOrder(caller authz.Caller, orderID string) (*dto.PaymentResponse, error) {
	payment, err := uc.paymentRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermPaymentView},
		OwnerID:     payment.UserID,
	}); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// syncOrderPaymentStatus refleja el estado del pago en la orden.
// El estado logístico no se toca aquí: refunded de la orden es una decisión
// explícita del flujo de órdenes.
func (uc *PaymentUseCase) syncOrderPaymentStatus(p *entity.Payment) {
	var orderStatus string
	switch p.Status {
	case entity.PaymentPaid:
		orderStatus = entity.OrderPaymentPaid
	case entity.PaymentFailed:
		orderStatus = entity.OrderPaymentFailed
	case entity.PaymentRefunded:
		orderStatus = entity.OrderPaymentRefunded
	default:
		return
	}
	if err := uc.orderRepo.UpdatePaymentStatus(p.OrderID, orderStatus); err != nil {
		uc.log.Error().Err(err).Str("order_id", p.OrderID).Msg("sincronizar estado de pago en la orden")
	}
}

func (uc *PaymentUseCase) publish(ctx context.Context, eventType, entityID string, payload map[string]string) {
	if uc.events == nil {
		return
	}
	uc.events.Publish(ctx, ports.Event{
		EventID:    uuid.New().String(),
		EventType:  eventType,
		OccurredAt: time.Now(),
		EntityID:   entityID,
		Payload:    payload,
	})
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	if p == nil {
		return nil
	}
	return &dto.PaymentResponse{
		ID:             p.ID,
		OrderID:        p.OrderID,
		UserID:         p.UserID,
		Amount:         p.Amount,
		Method:         p.Method,
		Provider:       p.Provider,
		Status:         p.Status,
		TransactionID:  p.TransactionID,
		RefundedAmount: p.RefundedAmount,
		FailureReason:  p.FailureReason,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
