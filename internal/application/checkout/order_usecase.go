package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/marketplace-api/internal/application/dto"
	"github.com/tu-usuario/marketplace-api/internal/application/ports"
	"github.com/tu-usuario/marketplace-api/internal/domain"
	"github.com/tu-usuario/marketplace-api/internal/domain/authz"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
	"github.com/tu-usuario/marketplace-api/internal/domain/lifecycle"
	"github.com/tu-usuario/marketplace-api/internal/domain/pricing"
	"github.com/tu-usuario/marketplace-api/internal/domain/repository"
	"github.com/tu-usuario/marketplace-api/pkg/logger"
)

// OrderUseCase conversión carrito -> orden y avance del estado logístico.
type OrderUseCase struct {
	txRunner    CheckoutTxRunner
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	receipts    ReceiptGenerator
	events      ports.EventPublisher
	log         *logger.Logger
}

// NewOrderUseCase construye el caso de uso. receipts y events pueden ser nil.
func NewOrderUseCase(
	txRunner CheckoutTxRunner,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	receipts ReceiptGenerator,
	events ports.EventPublisher,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:    txRunner,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		receipts:    receipts,
		events:      events,
		log:         log,
	}
}

// CreateFromCart convierte el carrito activo del caller en una orden dentro
// de una sola transacción: descuenta stock, congela las líneas, marca el
// carrito converted_to_order (una sola vía) y crea el pago en pending.
func (uc *OrderUseCase) CreateFromCart(ctx context.Context, caller authz.Caller, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := authz.Check(caller, authz.Requirement{
		Roles:       []authz.Role{authz.RoleCustomer},
		Permissions: []authz.Permission{authz.PermOrderCreate},
	}); err != nil {
		return nil, err
	}
	if in.ShippingAddress == "" || in.PaymentMethod == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ShippingFee.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	cart, err := uc.cartRepo.GetActiveByUser(caller.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, domain.ErrCartEmpty
	}

	now := time.Now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		UserID:          caller.UserID,
		CartID:          cart.ID,
		OrderNumber:     newOrderNumber(now),
		Status:          entity.OrderPending,
		PaymentStatus:   entity.OrderPaymentPending,
		ShippingAddress: in.ShippingAddress,
		ShippingFee:     in.ShippingFee,
		TaxAmount:       decimal.Zero,
		DiscountAmount:  cart.DiscountAmount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, it := range cart.Items {
		t, err := pricing.CalculateItemTotals(it.Price, it.Quantity, it.Discount)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Discount:  it.Discount,
			Subtotal:  t.Subtotal,
			Total:     t.Total,
		})
	}
	order.Subtotal, order.TotalAmount = pricing.OrderTotals(order.Items, order.ShippingFee, order.TaxAmount, order.DiscountAmount)

	payment := &entity.Payment{
		ID:             uuid.New().String(),
		OrderID:        order.ID,
		UserID:         caller.UserID,
		Amount:         order.TotalAmount,
		Method:         in.PaymentMethod,
		Provider:       in.Provider,
		Status:         entity.PaymentPending,
		RefundedAmount: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.RunCheckout(ctx, func(
		cartRepo repository.CartRepository,
		orderRepo repository.OrderRepository,
		paymentRepo repository.PaymentRepository,
		productRepo repository.ProductRepository,
	) error {
		// Descuento de stock por línea; sin stock -> rollback completo.
		for _, it := range order.Items {
			if err := productRepo.AdjustStock(it.ProductID, -it.Quantity); err != nil {
				return err
			}
			product, err := productRepo.GetByID(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			// El nombre se congela dentro de la tx para leer la fila ya bloqueada.
			for i := range order.Items {
				if order.Items[i].ProductID == it.ProductID {
					order.Items[i].ProductName = product.Name
				}
			}
		}
		// converted_to_order es de una sola vía: CAS desde active.
		ok, err := cartRepo.UpdateStatus(cart.ID, entity.CartActive, entity.CartConverted)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict // el carrito ya fue convertido o expiró
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		return paymentRepo.Create(payment)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, "order.created", order.ID, map[string]string{
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"total":        order.TotalAmount.String(),
	})
	return toOrderResponse(order), nil
}

// GetByID devuelve la orden: dueño o quien tenga order:view (admin/supplier).
func (uc *OrderUseCase) GetByID(caller authz.Caller, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermOrderView},
		OwnerID:     order.UserID,
	}); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ListMine lista las órdenes del caller.
func (uc *OrderUseCase) ListMine(caller authz.Caller, limit, offset int) (*dto.OrderListResponse, error) {
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermOrderView},
	}); err != nil {
		return nil, err
	}
	list, err := uc.orderRepo.ListByUser(caller.UserID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateStatus avanza el estado logístico vía la máquina de transiciones.
// cancelled lo puede pedir el dueño (order:cancel); el resto de avances son
// de admin/proveedor (order:update). refunded exige pago ya reembolsado.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, caller authz.Caller, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if in.Status == entity.OrderCancelled {
		err = authz.Check(caller, authz.Requirement{
			Permissions: []authz.Permission{authz.PermOrderCancel},
			OwnerID:     order.UserID,
		})
	} else {
		err = authz.Check(caller, authz.Requirement{
			Roles:       []authz.Role{authz.RoleSuperAdmin, authz.RoleAdmin, authz.RoleSupplier},
			Permissions: []authz.Permission{authz.PermOrderUpdate},
		})
	}
	if err != nil {
		return nil, err
	}

	paymentStatus := ""
	if in.Status == entity.OrderRefunded {
		payment, err := uc.paymentRepo.GetByOrderID(order.ID)
		if err != nil {
			return nil, err
		}
		if payment != nil {
			paymentStatus = payment.Status
		}
	}
	next, err := lifecycle.TransitionOrder(order.Status, in.Status, paymentStatus)
	if err != nil {
		return nil, err
	}
	ok, err := uc.orderRepo.UpdateStatus(order.ID, order.Status, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrConflict // carrera con otra transición
	}
	prev := order.Status
	order.Status = next
	order.UpdatedAt = time.Now()
	if next == entity.OrderRefunded {
		order.PaymentStatus = entity.OrderPaymentRefunded
		if err := uc.orderRepo.UpdatePaymentStatus(order.ID, order.PaymentStatus); err != nil {
			return nil, err
		}
	}

	uc.publish(ctx, "order.status_changed", order.ID, map[string]string{
		"from": prev,
		"to":   next,
	})
	return toOrderResponse(order), nil
}

// Receipt genera el PDF de la orden para el dueño o un admin.
func (uc *OrderUseCase) Receipt(caller authz.Caller, id string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermOrderView},
		OwnerID:     order.UserID,
	}); err != nil {
		return nil, err
	}
	if uc.receipts == nil {
		return nil, domain.ErrCollaborator
	}
	return uc.receipts.Generate(order)
}

func (uc *OrderUseCase) publish(ctx context.Context, eventType, entityID string, payload map[string]string) {
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

// newOrderNumber genera un número único legible: ORD-AAAAMMDD-XXXXXXXX.
func newOrderNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", t.Format("20060102"), suffix)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Discount:    it.Discount,
			Subtotal:    it.Subtotal,
			Total:       it.Total,
		})
	}
	return &dto.OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		CartID:          o.CartID,
		OrderNumber:     o.OrderNumber,
		Items:           items,
		Subtotal:        o.Subtotal,
		ShippingFee:     o.ShippingFee,
		TaxAmount:       o.TaxAmount,
		DiscountAmount:  o.DiscountAmount,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
