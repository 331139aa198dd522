package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/marketplace-api/internal/application/dto"
	"github.com/tu-usuario/marketplace-api/internal/domain"
	"github.com/tu-usuario/marketplace-api/internal/domain/authz"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
	"github.com/tu-usuario/marketplace-api/internal/domain/pricing"
	"github.com/tu-usuario/marketplace-api/internal/domain/repository"
)

// cartTTL es la ventana de vida de un carrito sin actividad antes de poder
// pasar a abandoned.
const cartTTL = 7 * 24 * time.Hour

// CartUseCase casos de uso del carrito. Las líneas solo las muta el dueño:
// todas las operaciones trabajan sobre el carrito activo del caller, así que
// la propiedad queda garantizada por construcción.
type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{cartRepo: cartRepo, productRepo: productRepo}
}

// GetOrCreateActive devuelve el carrito activo del caller, creándolo si no
// existe. Se mantiene el invariante de exactamente un carrito active por usuario.
func (uc *CartUseCase) GetOrCreateActive(caller authz.Caller) (*dto.CartResponse, error) {
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermCartView},
	}); err != nil {
		return nil, err
	}
	cart, err := uc.cartRepo.GetActiveByUser(caller.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		now := time.Now()
		cart = &entity.Cart{
			ID:             uuid.New().String(),
			UserID:         caller.UserID,
			Currency:       "USD",
			Status:         entity.CartActive,
			TotalAmount:    decimal.Zero,
			DiscountAmount: decimal.Zero,
			FinalAmount:    decimal.Zero,
			ExpiresAt:      now.Add(cartTTL),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := uc.cartRepo.Create(cart); err != nil {
			return nil, err
		}
	}
	return toCartResponse(cart)
}

// AddItem añade un producto (o acumula cantidad si ya está) y recalcula totales.
func (uc *CartUseCase) AddItem(caller authz.Caller, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 || in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	cart, err := uc.activeCart(caller)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.Status != entity.ProductActive {
		return nil, domain.ErrConflict
	}
	existingQty := 0
	for _, it := range cart.Items {
		if it.ProductID == in.ProductID {
			existingQty = it.Quantity
			break
		}
	}
	if product.Stock < existingQty+in.Quantity {
		return nil, domain.ErrInsufficientStock
	}
	if existingQty > 0 {
		for i := range cart.Items {
			if cart.Items[i].ProductID == in.ProductID {
				cart.Items[i].Quantity += in.Quantity
				break
			}
		}
	} else {
		cart.Items = append(cart.Items, entity.CartItem{
			ID:        uuid.New().String(),
			CartID:    cart.ID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Price:     product.Price, // precio congelado al añadir
			Discount:  in.Discount,
		})
	}
	return uc.saveWithTotals(cart)
}

// UpdateItem cambia la cantidad de una línea y recalcula totales.
func (uc *CartUseCase) UpdateItem(caller authz.Caller, itemID string, in dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	cart, err := uc.activeCart(caller)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			product, err := uc.productRepo.GetByID(cart.Items[i].ProductID)
			if err != nil {
				return nil, err
			}
			if product != nil && product.Stock < in.Quantity {
				return nil, domain.ErrInsufficientStock
			}
			cart.Items[i].Quantity = in.Quantity
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return uc.saveWithTotals(cart)
}

// RemoveItem elimina una línea y recalcula totales.
func (uc *CartUseCase) RemoveItem(caller authz.Caller, itemID string) (*dto.CartResponse, error) {
	cart, err := uc.activeCart(caller)
	if err != nil {
		return nil, err
	}
	kept := cart.Items[:0]
	found := false
	for _, it := range cart.Items {
		if it.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	cart.Items = kept
	return uc.saveWithTotals(cart)
}

// ApplyDiscount aplica un descuento a nivel carrito. FinalAmount nunca baja de 0.
func (uc *CartUseCase) ApplyDiscount(caller authz.Caller, in dto.ApplyCartDiscountRequest) (*dto.CartResponse, error) {
	if in.DiscountAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	cart, err := uc.activeCart(caller)
	if err != nil {
		return nil, err
	}
	cart.DiscountAmount = in.DiscountAmount
	return uc.saveWithTotals(cart)
}

// ExpireStale marca abandoned los carritos vencidos. Requiere cart:admin-cleanup.
func (uc *CartUseCase) ExpireStale(caller authz.Caller) (int64, error) {
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermCartAdminCleanup},
	}); err != nil {
		return 0, err
	}
	return uc.cartRepo.ExpireStale()
}

func (uc *CartUseCase) activeCart(caller authz.Caller) (*entity.Cart, error) {
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermCartUpdate},
	}); err != nil {
		return nil, err
	}
	cart, err := uc.cartRepo.GetActiveByUser(caller.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.ErrNotFound
	}
	return cart, nil
}

// saveWithTotals recalcula los agregados y persiste líneas + totales.
func (uc *CartUseCase) saveWithTotals(cart *entity.Cart) (*dto.CartResponse, error) {
	totals, err := pricing.RecomputeCartTotals(cart.Items, cart.DiscountAmount)
	if err != nil {
		return nil, err
	}
	cart.TotalAmount = totals.TotalAmount
	cart.FinalAmount = totals.FinalAmount
	cart.ExpiresAt = time.Now().Add(cartTTL)
	cart.UpdatedAt = time.Now()
	if err := uc.cartRepo.SaveItems(cart); err != nil {
		return nil, err
	}
	return toCartResponse(cart)
}

func toCartResponse(c *entity.Cart) (*dto.CartResponse, error) {
	items := make([]dto.CartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		t, err := pricing.CalculateItemTotals(it.Price, it.Quantity, it.Discount)
		if err != nil {
			return nil, err
		}
		items = append(items, dto.CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Discount:  it.Discount,
			Subtotal:  t.Subtotal,
			Total:     t.Total,
		})
	}
	return &dto.CartResponse{
		ID:             c.ID,
		UserID:         c.UserID,
		Items:          items,
		TotalAmount:    c.TotalAmount,
		DiscountAmount: c.DiscountAmount,
		FinalAmount:    c.FinalAmount,
		Currency:       c.Currency,
		Status:         c.Status,
		ExpiresAt:      c.ExpiresAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}, nil
}
