package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/marketplace-api/internal/application/dto"
	"github.com/tu-usuario/marketplace-api/internal/application/ports"
	"github.com/tu-usuario/marketplace-api/internal/domain"
	"github.com/tu-usuario/marketplace-api/internal/domain/authz"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
	"github.com/tu-usuario/marketplace-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD de productos con la política de propiedad
// centralizada en el guard: toda mutación exige dueño o admin.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	storage      ports.FileStorage
}

// NewProductUseCase construye el caso de uso. storage puede ser nil.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	storage ports.FileStorage,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, supplierRepo: supplierRepo, storage: storage}
}

// Create crea un producto del proveedor del caller. Exige perfil approved.
func (uc *ProductUseCase) Create(caller authz.Caller, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := authz.Check(caller, authz.Requirement{
		Roles:       []authz.Role{authz.RoleSupplier},
		Permissions: []authz.Permission{authz.PermProductCreate},
	}); err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByUserID(caller.UserID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if supplier.Status != entity.SupplierApproved {
		return nil, domain.ErrForbidden // solo proveedores aprobados publican
	}
	if in.Name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.ProductDraft
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SupplierID:  supplier.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// ListPublic lista productos active de proveedores approved, paginado.
func (uc *ProductUseCase) ListPublic(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.ListPublic(limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductList(list, limit, offset), nil
}

// ListMine lista los productos del proveedor del caller.
func (uc *ProductUseCase) ListMine(caller authz.Caller, limit, offset int) (*dto.ProductListResponse, error) {
	supplier, err := uc.supplierRepo.GetByUserID(caller.UserID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.productRepo.ListBySupplier(supplier.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductList(list, limit, offset), nil
}

// Update edita los datos del producto. Dueño o admin.
func (uc *ProductUseCase) Update(caller authz.Caller, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, ownerID, err := uc.loadWithOwner(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermProductUpdate},
		OwnerID:     ownerID,
	}); err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateStatus alterna el estado del producto. Dueño o admin.
func (uc *ProductUseCase) UpdateStatus(caller authz.Caller, id string, in dto.UpdateProductStatusRequest) (*dto.ProductResponse, error) {
	product, ownerID, err := uc.loadWithOwner(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermProductStatus},
		OwnerID:     ownerID,
	}); err != nil {
		return nil, err
	}
	switch in.Status {
	case entity.ProductDraft, entity.ProductActive, entity.ProductInactive, entity.ProductArchived:
	default:
		return nil, domain.ErrInvalidInput
	}
	product.Status = in.Status
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. El borrado físico es solo de admin; el dueño
// sin rol admin obtiene un archivado (soft delete).
func (uc *ProductUseCase) Delete(caller authz.Caller, id string) error {
	product, ownerID, err := uc.loadWithOwner(id)
	if err != nil {
		return err
	}
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermProductDelete},
		OwnerID:     ownerID,
	}); err != nil {
		return err
	}
	if caller.IsAdmin() {
		return uc.productRepo.Delete(id)
	}
	product.Status = entity.ProductArchived
	product.UpdatedAt = time.Now()
	return uc.productRepo.Update(product)
}

// AddImages valida el lote, sube las imágenes y las añade al producto.
func (uc *ProductUseCase) AddImages(ctx context.Context, caller authz.Caller, id string, files []UploadFile) (*dto.ProductResponse, error) {
	if err := ValidateImageBatch(files); err != nil {
		return nil, err
	}
	product, ownerID, err := uc.loadWithOwner(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermProductUpdate},
		OwnerID:     ownerID,
	}); err != nil {
		return nil, err
	}
	if uc.storage == nil {
		return nil, domain.ErrCollaborator
	}
	for _, f := range files {
		stored, err := uc.storage.Upload(ctx, f.Name, f.ContentType, f.Data, "products/"+product.ID)
		if err != nil {
			return nil, err
		}
		product.Images = append(product.Images, stored.URL)
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// RemoveImage borra una imagen por URL (del producto y del almacenamiento).
func (uc *ProductUseCase) RemoveImage(ctx context.Context, caller authz.Caller, id, imageURL string) (*dto.ProductResponse, error) {
	product, ownerID, err := uc.loadWithOwner(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermProductUpdate},
		OwnerID:     ownerID,
	}); err != nil {
		return nil, err
	}
	found := false
	kept := product.Images[:0]
	for _, img := range product.Images {
		if img == imageURL {
			found = true
			continue
		}
		kept = append(kept, img)
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	product.Images = kept
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	if uc.storage != nil {
		if err := uc.storage.DeleteByURL(ctx, imageURL); err != nil {
			// El blob huérfano no invalida la operación; queda para limpieza.
			return toProductResponse(product), nil
		}
	}
	return toProductResponse(product), nil
}

// Restock suma stock. Dueño o admin.
func (uc *ProductUseCase) Restock(caller authz.Caller, id string, in dto.RestockRequest) (*dto.ProductResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, ownerID, err := uc.loadWithOwner(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermProductUpdate},
		OwnerID:     ownerID,
	}); err != nil {
		return nil, err
	}
	if err := uc.productRepo.AdjustStock(id, in.Quantity); err != nil {
		return nil, err
	}
	product.Stock += in.Quantity
	product.UpdatedAt = time.Now()
	return toProductResponse(product), nil
}

// CheckOwnership responde el cuádruple de propiedad del caller sobre el producto.
func (uc *ProductUseCase) CheckOwnership(caller authz.Caller, id string) (*dto.OwnershipResponse, error) {
	_, ownerID, err := uc.loadWithOwner(id)
	if err != nil {
		return nil, err
	}
	own := authz.CheckOwnership(caller, ownerID)
	return &dto.OwnershipResponse{
		IsOwner:    own.IsOwner,
		IsSupplier: own.IsSupplier,
		IsAdmin:    own.IsAdmin,
		CanEdit:    own.CanEdit,
		CanDelete:  own.CanDelete,
	}, nil
}

// loadWithOwner resuelve el producto y el user id dueño (vía su proveedor).
func (uc *ProductUseCase) loadWithOwner(id string) (*entity.Product, string, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	if product == nil {
		return nil, "", domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(product.SupplierID)
	if err != nil {
		return nil, "", err
	}
	if supplier == nil {
		return nil, "", domain.ErrNotFound
	}
	return product, supplier.UserID, nil
}

func toProductList(list []*entity.Product, limit, offset int) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SupplierID:  p.SupplierID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Images:      p.Images,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
