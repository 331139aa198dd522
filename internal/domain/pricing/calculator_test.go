package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/marketplace-api/internal/domain"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
	"github.com/tu-usuario/marketplace-api/internal/domain/pricing"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// ──────────────────────────────────────────────────────────────────────────────
// Totales por línea
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateItemTotals_SinDescuento(t *testing.T) {
	got, err := pricing.CalculateItemTotals(dec(19.99), 3, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, got.Subtotal.Equal(dec(59.97)), "subtotal = precio * cantidad")
	assert.True(t, got.Total.Equal(dec(59.97)))
}

func TestCalculateItemTotals_ConDescuento(t *testing.T) {
	got, err := pricing.CalculateItemTotals(dec(50), 2, dec(15))
	require.NoError(t, err)
	assert.True(t, got.Subtotal.Equal(dec(100)))
	assert.True(t, got.Total.Equal(dec(85)))
}

func TestCalculateItemTotals_EntradasInvalidas(t *testing.T) {
	_, err := pricing.CalculateItemTotals(dec(10), 0, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = pricing.CalculateItemTotals(dec(10), -1, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")

	_, err = pricing.CalculateItemTotals(dec(-10), 1, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")

	_, err = pricing.CalculateItemTotals(dec(10), 1, dec(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "descuento negativo")
}

func TestCalculateItemTotals_DescuentoMayorQueSubtotal(t *testing.T) {
	// El descuento de línea no puede superar el subtotal: se rechaza en vez de
	// producir un total negativo.
	_, err := pricing.CalculateItemTotals(dec(10), 2, dec(25))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregados del carrito
// ──────────────────────────────────────────────────────────────────────────────

func TestRecomputeCartTotals_SumaLineas(t *testing.T) {
	items := []entity.CartItem{
		{Quantity: 2, Price: dec(10)},            // 20
		{Quantity: 1, Price: dec(5.50)},          // 5.50
		{Quantity: 3, Price: dec(7), Discount: dec(2)}, // 21 brutos
	}

	got, err := pricing.RecomputeCartTotals(items, dec(6.50))
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(dec(46.50)), "el total suma subtotales brutos")
	assert.True(t, got.DiscountAmount.Equal(dec(6.50)))
	assert.True(t, got.FinalAmount.Equal(dec(40)))
}

func TestRecomputeCartTotals_CarritoVacio(t *testing.T) {
	got, err := pricing.RecomputeCartTotals(nil, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.IsZero())
	assert.True(t, got.FinalAmount.IsZero())
}

func TestRecomputeCartTotals_DescuentoMayorQueTotal_FinalEnCero(t *testing.T) {
	items := []entity.CartItem{{Quantity: 1, Price: dec(10)}}

	got, err := pricing.RecomputeCartTotals(items, dec(50))
	require.NoError(t, err)
	assert.True(t, got.FinalAmount.IsZero(), "el monto final queda acotado en 0, nunca negativo")
	assert.True(t, got.TotalAmount.Equal(dec(10)), "el total bruto no se toca")
}

func TestRecomputeCartTotals_DescuentoNegativo(t *testing.T) {
	_, err := pricing.RecomputeCartTotals(nil, dec(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecomputeCartTotals_LineaInvalidaPropagaError(t *testing.T) {
	items := []entity.CartItem{{Quantity: 0, Price: dec(10)}}
	_, err := pricing.RecomputeCartTotals(items, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregados de la orden
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderTotals_ConCargos(t *testing.T) {
	items := []entity.OrderItem{
		{Subtotal: dec(100)},
		{Subtotal: dec(40)},
	}

	subtotal, total := pricing.OrderTotals(items, dec(12), dec(26.60), dec(10))
	assert.True(t, subtotal.Equal(dec(140)))
	assert.True(t, total.Equal(dec(168.60)), "total = subtotal + envío + impuestos - descuento")
}

func TestOrderTotals_DescuentoAgresivo_TotalEnCero(t *testing.T) {
	items := []entity.OrderItem{{Subtotal: dec(20)}}

	subtotal, total := pricing.OrderTotals(items, decimal.Zero, decimal.Zero, dec(100))
	assert.True(t, subtotal.Equal(dec(20)))
	assert.True(t, total.IsZero())
}
