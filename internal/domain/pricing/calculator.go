package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/marketplace-api/internal/domain"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
)

// ItemTotals son los derivados de una línea: subtotal bruto y total con descuento.
type ItemTotals struct {
	Subtotal decimal.Decimal // price * quantity
	Total    decimal.Decimal // subtotal - discount
}

// CalculateItemTotals deriva los totales de una línea. Función pura.
// Un descuento mayor que el subtotal se rechaza aquí en lugar de producir
// un total negativo (decisión explícita; el origen no lo validaba).
func CalculateItemTotals(price decimal.Decimal, quantity int, discount decimal.Decimal) (ItemTotals, error) {
	if quantity <= 0 || price.IsNegative() || discount.IsNegative() {
		return ItemTotals{}, domain.ErrInvalidInput
	}
	subtotal := price.Mul(decimal.NewFromInt(int64(quantity)))
	if discount.GreaterThan(subtotal) {
		return ItemTotals{}, domain.ErrInvalidInput
	}
	return ItemTotals{
		Subtotal: subtotal,
		Total:    subtotal.Sub(discount),
	}, nil
}

// CartTotals son los agregados del carrito.
type CartTotals struct {
	TotalAmount    decimal.Decimal // Σ subtotal por línea
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal // max(0, total - discount)
}

// RecomputeCartTotals recalcula los agregados del carrito sobre sus líneas.
// FinalAmount queda acotado inferiormente en 0: un descuento de carrito mayor
// que el total no produce monto negativo.
func RecomputeCartTotals(items []entity.CartItem, cartDiscount decimal.Decimal) (CartTotals, error) {
	if cartDiscount.IsNegative() {
		return CartTotals{}, domain.ErrInvalidInput
	}
	total := decimal.Zero
	for _, it := range items {
		t, err := CalculateItemTotals(it.Price, it.Quantity, it.Discount)
		if err != nil {
			return CartTotals{}, err
		}
		total = total.Add(t.Subtotal)
	}
	final := total.Sub(cartDiscount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	return CartTotals{
		TotalAmount:    total,
		DiscountAmount: cartDiscount,
		FinalAmount:    final,
	}, nil
}

// OrderTotals calcula los agregados de una orden a partir de las líneas ya
// congeladas más cargos de envío e impuestos.
func OrderTotals(items []entity.OrderItem, shipping, tax, discount decimal.Decimal) (subtotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Subtotal)
	}
	total = subtotal.Add(shipping).Add(tax).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return subtotal, total
}
