package checkout_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/marketplace-api/internal/application/checkout"
	"github.com/tu-usuario/marketplace-api/internal/application/dto"
	"github.com/tu-usuario/marketplace-api/internal/domain"
	"github.com/tu-usuario/marketplace-api/internal/domain/authz"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
	"github.com/tu-usuario/marketplace-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCartRepo struct {
	carts map[string]*entity.Cart // por ID
	saves int
}

func newFakeCartRepo(cs ...*entity.Cart) *fakeCartRepo {
	r := &fakeCartRepo{carts: map[string]*entity.Cart{}}
	for _, c := range cs {
		cp := *c
		r.carts[c.ID] = &cp
	}
	return r
}

func (r *fakeCartRepo) Create(c *entity.Cart) error {
	cp := *c
	r.carts[c.ID] = &cp
	return nil
}

func (r *fakeCartRepo) GetByID(id string) (*entity.Cart, error) {
	if c, ok := r.carts[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCartRepo) GetActiveByUser(userID string) (*entity.Cart, error) {
	for _, c := range r.carts {
		if c.UserID == userID && c.Status == entity.CartActive {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) SaveItems(c *entity.Cart) error {
	r.saves++
	cp := *c
	r.carts[c.ID] = &cp
	return nil
}

func (r *fakeCartRepo) UpdateStatus(id, expected, next string) (bool, error) {
	c, ok := r.carts[id]
	if !ok || c.Status != expected {
		return false, nil
	}
	c.Status = next
	return true, nil
}

func (r *fakeCartRepo) ExpireStale() (int64, error) { return 3, nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(ps ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range ps {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error { return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(*entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(string) error          { return nil }
func (r *fakeProductRepo) ListBySupplier(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) ListPublic(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) AdjustStock(string, int) error                  { return nil }

var _ repository.CartRepository = (*fakeCartRepo)(nil)
var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func customer(userID string) authz.Caller {
	return authz.NewCaller(userID, []authz.Role{authz.RoleCustomer})
}

func activeProduct(id string, price float64, stock int) *entity.Product {
	return &entity.Product{
		ID:     id,
		Name:   "Producto " + id,
		Price:  decimal.NewFromFloat(price),
		Stock:  stock,
		Status: entity.ProductActive,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Carrito activo por usuario
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrCreateActive_CreaUnaSolaVez(t *testing.T) {
	carts := newFakeCartRepo()
	uc := checkout.NewCartUseCase(carts, newFakeProductRepo())

	first, err := uc.GetOrCreateActive(customer("user-1"))
	require.NoError(t, err)
	assert.Equal(t, entity.CartActive, first.Status)
	assert.True(t, first.FinalAmount.IsZero())

	// Segunda llamada: el mismo carrito, no uno nuevo.
	second, err := uc.GetOrCreateActive(customer("user-1"))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "exactamente un carrito active por usuario")
	assert.Len(t, carts.carts, 1)
}

func TestGetOrCreateActive_GuestDenegado(t *testing.T) {
	uc := checkout.NewCartUseCase(newFakeCartRepo(), newFakeProductRepo())

	guest := authz.NewCaller("anon", []authz.Role{authz.RoleGuest})
	_, err := uc.GetOrCreateActive(guest)

	var denied *authz.DeniedError
	require.ErrorAs(t, err, &denied, "guest no tiene cart:view")
}

// ──────────────────────────────────────────────────────────────────────────────
// Añadir líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestAddItem_CongelaPrecioYRecalcula(t *testing.T) {
	carts := newFakeCartRepo()
	products := newFakeProductRepo(activeProduct("prod-1", 25, 10))
	uc := checkout.NewCartUseCase(carts, products)

	_, err := uc.GetOrCreateActive(customer("user-1"))
	require.NoError(t, err)

	out, err := uc.AddItem(customer("user-1"), dto.AddCartItemRequest{
		ProductID: "prod-1", Quantity: 2,
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].Price.Equal(decimal.NewFromFloat(25)), "precio congelado al añadir")
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromFloat(50)))
	assert.True(t, out.FinalAmount.Equal(decimal.NewFromFloat(50)))

	// Subir el precio del producto no cambia la línea ya añadida.
	products.products["prod-1"].Price = decimal.NewFromFloat(99)
	out, err = uc.GetOrCreateActive(customer("user-1"))
	require.NoError(t, err)
	assert.True(t, out.Items[0].Price.Equal(decimal.NewFromFloat(25)))
}

func TestAddItem_ProductoRepetido_AcumulaCantidad(t *testing.T) {
	carts := newFakeCartRepo()
	uc := checkout.NewCartUseCase(carts, newFakeProductRepo(activeProduct("prod-1", 10, 10)))

	_, err := uc.GetOrCreateActive(customer("user-1"))
	require.NoError(t, err)

	_, err = uc.AddItem(customer("user-1"), dto.AddCartItemRequest{ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)
	out, err := uc.AddItem(customer("user-1"), dto.AddCartItemRequest{ProductID: "prod-1", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, out.Items, 1, "misma línea, no una nueva")
	assert.Equal(t, 5, out.Items[0].Quantity)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromFloat(50)))
}

func TestAddItem_StockInsuficiente_CuentaLoYaAnadido(t *testing.T) {
	uc := checkout.NewCartUseCase(newFakeCartRepo(), newFakeProductRepo(activeProduct("prod-1", 10, 5)))

	_, err := uc.GetOrCreateActive(customer("user-1"))
	require.NoError(t, err)

	_, err = uc.AddItem(customer("user-1"), dto.AddCartItemRequest{ProductID: "prod-1", Quantity: 4})
	require.NoError(t, err)

	// 4 en el carrito + 2 nuevos > 5 de stock.
	_, err = uc.AddItem(customer("user-1"), dto.AddCartItemRequest{ProductID: "prod-1", Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestAddItem_ProductoNoActivo(t *testing.T) {
	draft := activeProduct("prod-1", 10, 5)
	draft.Status = entity.ProductDraft
	uc := checkout.NewCartUseCase(newFakeCartRepo(), newFakeProductRepo(draft))

	_, err := uc.GetOrCreateActive(customer("user-1"))
	require.NoError(t, err)

	_, err = uc.AddItem(customer("user-1"), dto.AddCartItemRequest{ProductID: "prod-1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrConflict, "solo productos active entran al carrito")
}

func TestAddItem_ProductoInexistente(t *testing.T) {
	uc := checkout.NewCartUseCase(newFakeCartRepo(), newFakeProductRepo())

	_, err := uc.GetOrCreateActive(customer("user-1"))
	require.NoError(t, err)

	_, err = uc.AddItem(customer("user-1"), dto.AddCartItemRequest{ProductID: "prod-x", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItem_EntradaInvalida(t *testing.T) {
	uc := checkout.NewCartUseCase(newFakeCartRepo(), newFakeProductRepo())

	_, err := uc.AddItem(customer("user-1"), dto.AddCartItemRequest{ProductID: "p", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddItem(customer("user-1"), dto.AddCartItemRequest{
		ProductID: "p", Quantity: 1, Discount: decimal.NewFromFloat(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutación y eliminación de líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateItem_CambiaCantidadYTotales(t *testing.T) {
	uc := checkout.NewCartUseCase(newFakeCartRepo(), newFakeProductRepo(activeProduct("prod-1", 20, 10)))

	_, err := uc.GetOrCreateActive(customer("user-1"))
	require.NoError(t, err)
	added, err := uc.AddItem(customer("user-1"), dto.AddCartItemRequest{ProductID: "prod-1", Quantity: 1})
	require.NoError(t, err)

	out, err := uc.UpdateItem(customer("user-1"), added.Items[0].ID, dto.UpdateCartItemRequest{Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Items[0].Quantity)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromFloat(80)))
}

func TestUpdateItem_LineaInexistente(t *testing.T) {
	uc := checkout.NewCartUseCase(newFakeCartRepo(), newFakeProductRepo())

	_, err := uc.GetOrCreateActive(customer("user-1"))
	require.NoError(t, err)

	_, err = uc.UpdateItem(customer("user-1"), "item-fantasma", dto.UpdateCartItemRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveItem_EliminaYRecalcula(t *testing.T) {
	uc := checkout.NewCartUseCase(newFakeCartRepo(), newFakeProductRepo(
		activeProduct("prod-1", 10, 10),
		activeProduct("prod-2", 30, 10),
	))

	_, err := uc.GetOrCreateActive(customer("user-1"))
	require.NoError(t, err)
	_, err = uc.AddItem(customer("user-1"), dto.AddCartItemRequest{ProductID: "prod-1", Quantity: 1})
	require.NoError(t, err)
	added, err := uc.AddItem(customer("user-1"), dto.AddCartItemRequest{ProductID: "prod-2", Quantity: 1})
	require.NoError(t, err)

	var prod1Item string
	for _, it := range added.Items {
		if it.ProductID == "prod-1" {
			prod1Item = it.ID
		}
	}
	out, err := uc.RemoveItem(customer("user-1"), prod1Item)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "prod-2", out.Items[0].ProductID)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromFloat(30)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Descuento de carrito y limpieza administrativa
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDiscount_FinalNuncaNegativo(t *testing.T) {
	uc := checkout.NewCartUseCase(newFakeCartRepo(), newFakeProductRepo(activeProduct("prod-1", 10, 10)))

	_, err := uc.GetOrCreateActive(customer("user-1"))
	require.NoError(t, err)
	_, err = uc.AddItem(customer("user-1"), dto.AddCartItemRequest{ProductID: "prod-1", Quantity: 1})
	require.NoError(t, err)

	out, err := uc.ApplyDiscount(customer("user-1"), dto.ApplyCartDiscountRequest{
		DiscountAmount: decimal.NewFromFloat(999),
	})
	require.NoError(t, err)
	assert.True(t, out.FinalAmount.IsZero())
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromFloat(10)))
}

func TestExpireStale_RequierePermisoAdministrativo(t *testing.T) {
	uc := checkout.NewCartUseCase(newFakeCartRepo(), newFakeProductRepo())

	_, err := uc.ExpireStale(customer("user-1"))
	var denied *authz.DeniedError
	require.ErrorAs(t, err, &denied, "customer no tiene cart:admin-cleanup")

	admin := authz.NewCaller("admin-1", []authz.Role{authz.RoleAdmin})
	n, err := uc.ExpireStale(admin)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
