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
	"github.com/tu-usuario/marketplace-api/internal/domain/lifecycle"
	"github.com/tu-usuario/marketplace-api/internal/domain/repository"
	"github.com/tu-usuario/marketplace-api/pkg/logger"
)

// SupplierUseCase casos de uso del perfil de proveedor: edición del dueño,
// documentos y transiciones de estado por admin.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
	userRepo     repository.UserRepository
	storage      ports.FileStorage
	mailer       ports.Mailer
	events       ports.EventPublisher
	log          *logger.Logger
}

// NewSupplierUseCase construye el caso de uso. storage, mailer y events pueden ser nil.
func NewSupplierUseCase(
	supplierRepo repository.SupplierRepository,
	userRepo repository.UserRepository,
	storage ports.FileStorage,
	mailer ports.Mailer,
	events ports.EventPublisher,
	log *logger.Logger,
) *SupplierUseCase {
	return &SupplierUseCase{
		supplierRepo: supplierRepo,
		userRepo:     userRepo,
		storage:      storage,
		mailer:       mailer,
		events:       events,
		log:          log,
	}
}

// GetMine devuelve el perfil del proveedor del caller.
func (uc *SupplierUseCase) GetMine(caller authz.Caller) (*dto.SupplierResponse, error) {
	s, err := uc.supplierRepo.GetByUserID(caller.UserID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

// GetByID devuelve un proveedor: el dueño o un admin pueden verlo completo.
func (uc *SupplierUseCase) GetByID(caller authz.Caller, id string) (*dto.SupplierResponse, error) {
	s, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermSupplierView},
		OwnerID:     s.UserID,
	}); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// UpdateProfile edita los datos comerciales (nunca el estado). Solo el dueño
// o un admin.
func (uc *SupplierUseCase) UpdateProfile(caller authz.Caller, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if err := authz.Check(caller, authz.Requirement{
		Permissions: []authz.Permission{authz.PermSupplierUpdate},
		OwnerID:     s.UserID,
	}); err != nil {
		return nil, err
	}
	if in.CompanyName != nil {
		s.CompanyName = *in.CompanyName
	}
	if in.RegistrationNumber != nil {
		s.RegistrationNumber = *in.RegistrationNumber
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	s.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// UploadDocuments valida el lote y sube los documentos del proveedor. Solo el dueño.
func (uc *SupplierUseCase) UploadDocuments(ctx context.Context, caller authz.Caller, id string, files []UploadFile) (*dto.SupplierResponse, error) {
	if err := ValidateDocumentBatch(files); err != nil {
		return nil, err
	}
	s, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if err := authz.Check(caller, authz.Requirement{
		Roles:   []authz.Role{authz.RoleSupplier},
		OwnerID: s.UserID,
	}); err != nil {
		return nil, err
	}
	if uc.storage == nil {
		return nil, domain.ErrCollaborator
	}
	for _, f := range files {
		stored, err := uc.storage.Upload(ctx, f.Name, f.ContentType, f.Data, "suppliers/"+s.ID)
		if err != nil {
			return nil, err
		}
		s.Documents = append(s.Documents, stored.URL)
	}
	s.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// UpdateStatus mueve el estado del proveedor vía la máquina de transiciones.
// Solo admin con supplier:approve. La transición no cascada a productos: un
// proveedor suspendido conserva sus productos como estén.
func (uc *SupplierUseCase) UpdateStatus(ctx context.Context, caller authz.Caller, id string, in dto.UpdateSupplierStatusRequest) (*dto.SupplierResponse, error) {
	if err := authz.Check(caller, authz.Requirement{
		Roles:       []authz.Role{authz.RoleSuperAdmin, authz.RoleAdmin},
		Permissions: []authz.Permission{authz.PermSupplierApprove},
	}); err != nil {
		return nil, err
	}
	s, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	next, err := lifecycle.TransitionSupplier(s.Status, in.Status)
	if err != nil {
		return nil, err
	}
	ok, err := uc.supplierRepo.UpdateStatus(s.ID, s.Status, next, in.Reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrConflict // otro request cambió el estado primero
	}
	prev := s.Status
	s.Status = next
	s.StatusReason = in.Reason
	s.UpdatedAt = time.Now()

	if uc.events != nil {
		uc.events.Publish(ctx, ports.Event{
			EventID:    uuid.New().String(),
			EventType:  "supplier.status_changed",
			OccurredAt: time.Now(),
			EntityID:   s.ID,
			Payload:    map[string]string{"from": prev, "to": next, "reason": in.Reason},
		})
	}
	uc.notifyStatusChange(ctx, s, next, in.Reason)
	return toSupplierResponse(s), nil
}

// ListByStatus lista proveedores por estado (vista admin).
func (uc *SupplierUseCase) ListByStatus(caller authz.Caller, status string, limit, offset int) (*dto.SupplierListResponse, error) {
	if err := authz.Check(caller, authz.Requirement{
		Roles: []authz.Role{authz.RoleSuperAdmin, authz.RoleAdmin, authz.RoleModerator},
	}); err != nil {
		return nil, err
	}
	return uc.list(status, limit, offset)
}

// ListPublic lista solo proveedores approved: es la única vista sin autenticación.
func (uc *SupplierUseCase) ListPublic(limit, offset int) (*dto.SupplierListResponse, error) {
	return uc.list(entity.SupplierApproved, limit, offset)
}

func (uc *SupplierUseCase) list(status string, limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.supplierRepo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// notifyStatusChange avisa por correo al dueño. Best-effort.
func (uc *SupplierUseCase) notifyStatusChange(ctx context.Context, s *entity.Supplier, status, reason string) {
	if uc.mailer == nil {
		return
	}
	user, err := uc.userRepo.GetByID(s.UserID)
	if err != nil || user == nil {
		return
	}
	body := "<p>El estado de tu cuenta de proveedor cambió a <b>" + status + "</b>.</p>"
	if reason != "" {
		body += "<p>Motivo: " + reason + "</p>"
	}
	if err := uc.mailer.Send(ctx, user.Email, "Estado de proveedor actualizado", body); err != nil {
		uc.log.Warn().Err(err).Str("supplier_id", s.ID).Msg("correo de cambio de estado")
	}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:                 s.ID,
		UserID:             s.UserID,
		CompanyName:        s.CompanyName,
		RegistrationNumber: s.RegistrationNumber,
		Address:            s.Address,
		Documents:          s.Documents,
		Status:             s.Status,
		StatusReason:       s.StatusReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
