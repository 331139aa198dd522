package catalog

import (
	"github.com/tu-usuario/marketplace-api/internal/domain"
)

// Límites de subida. Se validan antes de tocar el almacenamiento: una
// violación falla rápido sin llamada de red.
const (
	MaxFileSize     = 5 * 1024 * 1024 // 5MB por archivo
	MaxFilesPerBatch = 10
)

// UploadFile es un archivo recibido en el request, ya leído en memoria.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

var imageMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var documentMIMEs = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// ValidateImageBatch valida un lote de imágenes de producto.
func ValidateImageBatch(files []UploadFile) error {
	return validateBatch(files, imageMIMEs)
}

// ValidateDocumentBatch valida un lote de documentos de proveedor.
func ValidateDocumentBatch(files []UploadFile) error {
	return validateBatch(files, documentMIMEs)
}

func validateBatch(files []UploadFile, allowed map[string]bool) error {
	if len(files) == 0 || len(files) > MaxFilesPerBatch {
		return domain.ErrInvalidInput
	}
	for _, f := range files {
		if !allowed[f.ContentType] {
			return domain.ErrInvalidInput
		}
		if len(f.Data) == 0 || len(f.Data) > MaxFileSize {
			return domain.ErrInvalidInput
		}
	}
	return nil
}
