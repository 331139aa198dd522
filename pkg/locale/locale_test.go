package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/marketplace-api/pkg/locale"
)

func newResolver() *locale.Resolver {
	return locale.NewResolver([]string{"en", "es"}, "en")
}

func TestResolve_CoincidenciaExacta(t *testing.T) {
	r := newResolver()
	assert.Equal(t, "es", r.Resolve("es"))
	assert.Equal(t, "en", r.Resolve("en"))
}

func TestResolve_VarianteRegional(t *testing.T) {
	// es-CO y es-MX caen en el "es" soportado.
	r := newResolver()
	assert.Equal(t, "es", r.Resolve("es-CO"))
	assert.Equal(t, "es", r.Resolve("es-MX"))
	assert.Equal(t, "en", r.Resolve("en-GB"))
}

func TestResolve_ConPesosQ(t *testing.T) {
	r := newResolver()
	assert.Equal(t, "es", r.Resolve("es-CO;q=0.9, en;q=0.5"))
	assert.Equal(t, "en", r.Resolve("en;q=1.0, es;q=0.2"))
}

func TestResolve_SinCoincidencia_CaeAlDefecto(t *testing.T) {
	r := newResolver()
	assert.Equal(t, "en", r.Resolve("fr"))
	assert.Equal(t, "en", r.Resolve("de-DE, ja;q=0.8"))
}

func TestResolve_EntradaVaciaOInvalida(t *testing.T) {
	r := newResolver()
	assert.Equal(t, "en", r.Resolve(""))
	assert.Equal(t, "en", r.Resolve("   "))
	assert.Equal(t, "en", r.Resolve(";;;no-es-un-header"))
}

func TestNewResolver_ListaVacia_UsaDefecto(t *testing.T) {
	r := locale.NewResolver(nil, "es")
	assert.Equal(t, "es", r.Resolve(""))
	assert.Equal(t, "es", r.Resolve("es"))
	assert.Equal(t, "es", r.Resolve("fr"))
}
