package catalog_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/marketplace-api/internal/application/catalog"
	"github.com/tu-usuario/marketplace-api/internal/domain"
)

func file(name, contentType string, size int) catalog.UploadFile {
	return catalog.UploadFile{
		Name:        name,
		ContentType: contentType,
		Data:        bytes.Repeat([]byte{0xFF}, size),
	}
}

func TestValidateImageBatch_LoteValido(t *testing.T) {
	files := []catalog.UploadFile{
		file("a.jpg", "image/jpeg", 1024),
		file("b.png", "image/png", 2048),
		file("c.webp", "image/webp", 512),
	}
	assert.NoError(t, catalog.ValidateImageBatch(files))
}

func TestValidateImageBatch_PDFRechazado(t *testing.T) {
	// PDF es válido como documento de proveedor, no como imagen de producto.
	err := catalog.ValidateImageBatch([]catalog.UploadFile{
		file("factura.pdf", "application/pdf", 1024),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateImageBatch_ArchivoDemasiadoGrande(t *testing.T) {
	err := catalog.ValidateImageBatch([]catalog.UploadFile{
		file("grande.jpg", "image/jpeg", catalog.MaxFileSize+1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateImageBatch_LoteVacioOExcesivo(t *testing.T) {
	assert.ErrorIs(t, catalog.ValidateImageBatch(nil), domain.ErrInvalidInput)

	many := make([]catalog.UploadFile, catalog.MaxFilesPerBatch+1)
	for i := range many {
		many[i] = file("x.jpg", "image/jpeg", 10)
	}
	assert.ErrorIs(t, catalog.ValidateImageBatch(many), domain.ErrInvalidInput)
}

func TestValidateImageBatch_UnInvalidoTumbaElLote(t *testing.T) {
	// Fail-fast: si un archivo del lote es inválido no se sube ninguno.
	err := catalog.ValidateImageBatch([]catalog.UploadFile{
		file("ok.jpg", "image/jpeg", 1024),
		file("malo.gif", "image/gif", 1024),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateDocumentBatch_AdmitePDF(t *testing.T) {
	assert.NoError(t, catalog.ValidateDocumentBatch([]catalog.UploadFile{
		file("rut.pdf", "application/pdf", 4096),
		file("camara.jpg", "image/jpeg", 1024),
	}))
}

func TestValidateDocumentBatch_ArchivoVacio(t *testing.T) {
	err := catalog.ValidateDocumentBatch([]catalog.UploadFile{
		{Name: "vacio.pdf", ContentType: "application/pdf"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
