package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/marketplace-api/internal/domain"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
	"github.com/tu-usuario/marketplace-api/internal/domain/lifecycle"
)

// ──────────────────────────────────────────────────────────────────────────────
// Avance logístico hacia delante
// ──────────────────────────────────────────────────────────────────────────────

func TestTransitionOrder_CaminoFeliz(t *testing.T) {
	path := []string{
		entity.OrderPending, entity.OrderProcessing,
		entity.OrderShipped, entity.OrderDelivered,
	}
	for i := 0; i < len(path)-1; i++ {
		got, err := lifecycle.TransitionOrder(path[i], path[i+1], entity.PaymentPaid)
		require.NoErrorf(t, err, "%s -> %s debe ser legal", path[i], path[i+1])
		assert.Equal(t, path[i+1], got)
	}
}

func TestTransitionOrder_SinSaltos(t *testing.T) {
	_, err := lifecycle.TransitionOrder(entity.OrderPending, entity.OrderShipped, entity.PaymentPaid)
	assert.True(t, domain.IsInvalidTransition(err), "pending no salta a shipped")

	_, err = lifecycle.TransitionOrder(entity.OrderProcessing, entity.OrderDelivered, entity.PaymentPaid)
	assert.True(t, domain.IsInvalidTransition(err), "processing no salta a delivered")
}

func TestTransitionOrder_SinRetroceso(t *testing.T) {
	_, err := lifecycle.TransitionOrder(entity.OrderShipped, entity.OrderProcessing, entity.PaymentPaid)
	assert.True(t, domain.IsInvalidTransition(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas terminales: cancelled y refunded
// ──────────────────────────────────────────────────────────────────────────────

func TestTransitionOrder_CancelableAntesDeDelivered(t *testing.T) {
	for _, from := range []string{entity.OrderPending, entity.OrderProcessing, entity.OrderShipped} {
		got, err := lifecycle.TransitionOrder(from, entity.OrderCancelled, entity.PaymentPending)
		require.NoErrorf(t, err, "%s -> cancelled debe ser legal", from)
		assert.Equal(t, entity.OrderCancelled, got)
	}
}

func TestTransitionOrder_DeliveredNoSeCancela(t *testing.T) {
	_, err := lifecycle.TransitionOrder(entity.OrderDelivered, entity.OrderCancelled, entity.PaymentPaid)
	assert.True(t, domain.IsInvalidTransition(err), "una orden entregada ya no se cancela")
}

func TestTransitionOrder_RefundedExigePagoReembolsado(t *testing.T) {
	// Con el pago aún paid, marcar la orden refunded debe fallar con el error
	// específico, no con transición inválida.
	_, err := lifecycle.TransitionOrder(entity.OrderProcessing, entity.OrderRefunded, entity.PaymentPaid)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPaymentNotRefunded)
	assert.False(t, domain.IsInvalidTransition(err))

	// Con el pago reembolsado (total o parcial), procede.
	for _, ps := range []string{entity.PaymentRefunded, entity.PaymentPartiallyRefunded} {
		got, err := lifecycle.TransitionOrder(entity.OrderProcessing, entity.OrderRefunded, ps)
		require.NoErrorf(t, err, "con pago %s la orden puede pasar a refunded", ps)
		assert.Equal(t, entity.OrderRefunded, got)
	}
}

func TestTransitionOrder_TerminalesSinSalida(t *testing.T) {
	for _, terminal := range []string{entity.OrderDelivered, entity.OrderCancelled, entity.OrderRefunded} {
		for _, to := range []string{entity.OrderPending, entity.OrderProcessing, entity.OrderShipped} {
			_, err := lifecycle.TransitionOrder(terminal, to, entity.PaymentRefunded)
			assert.Truef(t, domain.IsInvalidTransition(err), "%s -> %s debe fallar", terminal, to)
		}
	}
}

func TestOrderMutable(t *testing.T) {
	assert.True(t, lifecycle.OrderMutable(entity.OrderPending))
	assert.True(t, lifecycle.OrderMutable(entity.OrderShipped))
	assert.False(t, lifecycle.OrderMutable(entity.OrderDelivered))
	assert.False(t, lifecycle.OrderMutable(entity.OrderCancelled))
	assert.False(t, lifecycle.OrderMutable(entity.OrderRefunded))
	assert.False(t, lifecycle.OrderMutable("estado-raro"))
}
