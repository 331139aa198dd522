package http

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/marketplace-api/internal/application/catalog"
	"github.com/tu-usuario/marketplace-api/internal/application/dto"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
)

// SupplierHandler maneja el perfil de proveedor y su moderación.
type SupplierHandler struct {
	uc *catalog.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *catalog.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// ListPublic godoc
// @Summary      Listar proveedores aprobados (público)
// @Tags         suppliers
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.SupplierListResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) ListPublic(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.ListPublic(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMine godoc
// @Summary      Perfil de proveedor del usuario autenticado
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/me [get]
func (h *SupplierHandler) GetMine(c *fiber.Ctx) error {
	out, err := h.uc.GetMine(GetCaller(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proveedor por ID (dueño o admin)
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCaller(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar perfil de proveedor (nunca el estado)
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.UpdateSupplierRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.SupplierResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateProfile(GetCaller(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UploadDocuments godoc
// @Summary      Subir documentos del proveedor (multipart, campo "documents")
// @Tags         suppliers
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id}/documents [post]
func (h *SupplierHandler) UploadDocuments(c *fiber.Ctx) error {
	files, err := readMultipartFiles(c, "documents")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "multipart inválido"})
	}
	out, err := h.uc.UploadDocuments(c.Context(), GetCaller(c), c.Params("id"), files)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del proveedor (solo admin)
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.UpdateSupplierStatusRequest  true  "approved | rejected | suspended + reason"
// @Success      200   {object}  dto.SupplierResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id}/status [patch]
func (h *SupplierHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateSupplierStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(c.Context(), GetCaller(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByStatus godoc
// @Summary      Listar proveedores por estado (vista admin)
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | approved | rejected | suspended"  default(pending)
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.SupplierListResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/admin/suppliers [get]
func (h *SupplierHandler) ListByStatus(c *fiber.Ctx) error {
	status := c.Query("status", entity.SupplierPending)
	limit, offset := parsePage(c)
	out, err := h.uc.ListByStatus(GetCaller(c), status, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// readMultipartFiles lee los archivos del campo dado a memoria. Los límites de
// tamaño y tipo se validan en la capa de aplicación.
func readMultipartFiles(c *fiber.Ctx, field string) ([]catalog.UploadFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	headers := form.File[field]
	files := make([]catalog.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, catalog.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}
