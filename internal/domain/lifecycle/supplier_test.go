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
// Ciclo de vida del proveedor
// ──────────────────────────────────────────────────────────────────────────────

func TestTransitionSupplier_DesdePending(t *testing.T) {
	for _, to := range []string{entity.SupplierApproved, entity.SupplierRejected, entity.SupplierSuspended} {
		got, err := lifecycle.TransitionSupplier(entity.SupplierPending, to)
		require.NoErrorf(t, err, "pending -> %s debe ser legal", to)
		assert.Equal(t, to, got)
	}
}

func TestTransitionSupplier_SuspensionReversible(t *testing.T) {
	got, err := lifecycle.TransitionSupplier(entity.SupplierApproved, entity.SupplierSuspended)
	require.NoError(t, err)
	assert.Equal(t, entity.SupplierSuspended, got)

	got, err = lifecycle.TransitionSupplier(entity.SupplierSuspended, entity.SupplierApproved)
	require.NoError(t, err, "un proveedor suspendido puede reactivarse")
	assert.Equal(t, entity.SupplierApproved, got)
}

func TestTransitionSupplier_RejectedEsTerminal(t *testing.T) {
	for _, to := range []string{
		entity.SupplierPending, entity.SupplierApproved,
		entity.SupplierSuspended, entity.SupplierRejected,
	} {
		_, err := lifecycle.TransitionSupplier(entity.SupplierRejected, to)
		require.Errorf(t, err, "rejected -> %s debe fallar: rechazado implica solicitud nueva", to)
		assert.True(t, domain.IsInvalidTransition(err))
	}
}

func TestTransitionSupplier_AprobadoNoVuelveAPending(t *testing.T) {
	_, err := lifecycle.TransitionSupplier(entity.SupplierApproved, entity.SupplierPending)
	require.Error(t, err)

	var invalid *domain.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "supplier", invalid.Entity)
	assert.Equal(t, entity.SupplierApproved, invalid.From)
	assert.Equal(t, entity.SupplierPending, invalid.To)
}

func TestCanTransitionSupplier_EstadoDesconocido(t *testing.T) {
	assert.False(t, lifecycle.CanTransitionSupplier("estado-raro", entity.SupplierApproved))
	assert.False(t, lifecycle.CanTransitionSupplier(entity.SupplierPending, "estado-raro"))
}
