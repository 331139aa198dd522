package auth

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
	"github.com/tu-usuario/marketplace-api/pkg/jwt"
	"github.com/tu-usuario/marketplace-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, OAuth y
// verificación de email.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	supplierRepo repository.SupplierRepository
	mailer       ports.Mailer
	idp          ports.IdentityProvider
	jwtCfg       JWTConfig
	log          *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. mailer e idp pueden ser nil
// (correo y OAuth desactivados).
func NewAuthUseCase(
	userRepo repository.UserRepository,
	supplierRepo repository.SupplierRepository,
	mailer ports.Mailer,
	idp ports.IdentityProvider,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		supplierRepo: supplierRepo,
		mailer:       mailer,
		idp:          idp,
		jwtCfg:       jwtCfg,
		log:          log,
	}
}

// Register crea una cuenta con password bcrypt.
// role=customer queda completa de inmediato (roles=[customer]); role=supplier
// queda sin roles hasta CompleteSupplier: un caller sin roles falla todo eje
// de rol y de propiedad por construcción.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = string(authz.RoleCustomer)
	}
	if role != string(authz.RoleCustomer) && role != string(authz.RoleSupplier) {
		return nil, domain.ErrInvalidInput // roles administrativos nunca por registro
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == string(authz.RoleCustomer) {
		user.Roles = []string{role}
		user.RegComplete = true
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	uc.sendVerificationMail(ctx, user)
	return toUserResponse(user), nil
}

// Login verifica email/password y genera el JWT de sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized // cuenta OAuth sin password local
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueToken(user)
}

// OAuthLogin autentica vía Google: acepta code (se intercambia) o id_token
// directo. Crea la cuenta como customer si no existe.
func (uc *AuthUseCase) OAuthLogin(ctx context.Context, in dto.OAuthLoginRequest) (*dto.LoginResponse, error) {
	if uc.idp == nil {
		return nil, domain.ErrCollaborator
	}
	idToken := in.IDToken
	if idToken == "" {
		if in.Code == "" {
			return nil, domain.ErrInvalidInput
		}
		var err error
		idToken, err = uc.idp.ExchangeCode(ctx, in.Code)
		if err != nil {
			return nil, domain.ErrCollaborator
		}
	}
	ext, err := uc.idp.VerifyIDToken(ctx, idToken)
	if err != nil {
		// El core no interpreta códigos del proveedor: fallo genérico.
		return nil, domain.ErrCollaborator
	}
	user, err := uc.userRepo.GetByGoogleID(ext.ExternalID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = uc.userRepo.GetByEmail(ext.Email)
		if err != nil {
			return nil, err
		}
	}
	now := time.Now()
	if user == nil {
		user = &entity.User{
			ID:            uuid.New().String(),
			Email:         ext.Email,
			Name:          ext.Name,
			Roles:         []string{string(authz.RoleCustomer)},
			RegComplete:   true,
			EmailVerified: ext.EmailVerified,
			GoogleID:      ext.ExternalID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := uc.userRepo.Create(user); err != nil {
			return nil, err
		}
	} else if user.GoogleID == "" {
		user.GoogleID = ext.ExternalID
		if ext.EmailVerified {
			user.EmailVerified = true
		}
		user.UpdatedAt = now
		if err := uc.userRepo.Update(user); err != nil {
			return nil, err
		}
	}
	return uc.issueToken(user)
}

// CompleteSupplier completa el registro de proveedor: asigna el rol supplier
// y crea el perfil Supplier en pending. Falla con ErrDuplicate si el usuario
// ya tiene perfil.
func (uc *AuthUseCase) CompleteSupplier(ctx context.Context, userID string, in dto.CompleteSupplierRequest) (*dto.SupplierResponse, error) {
	if in.CompanyName == "" || in.RegistrationNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	existing, err := uc.supplierRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status != entity.SupplierRejected {
		return nil, domain.ErrDuplicate
	}
	// Un perfil rejected es terminal; se admite una solicitud nueva en pending.
	now := time.Now()
	supplier := &entity.Supplier{
		ID:                 uuid.New().String(),
		UserID:             userID,
		CompanyName:        in.CompanyName,
		RegistrationNumber: in.RegistrationNumber,
		Address:            in.Address,
		Status:             entity.SupplierPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	if !hasRole(user.Roles, string(authz.RoleSupplier)) {
		user.Roles = append(user.Roles, string(authz.RoleSupplier))
	}
	user.RegComplete = true
	user.UpdatedAt = now
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	// Notificación best-effort: un fallo del correo no bloquea el registro.
	if uc.mailer != nil {
		if err := uc.mailer.Send(ctx, user.Email, "Solicitud de proveedor recibida",
			"<p>Tu solicitud de proveedor fue recibida y está en revisión.</p>"); err != nil {
			uc.log.Warn().Err(err).Str("user_id", userID).Msg("correo de solicitud de proveedor")
		}
	}
	return toSupplierResponse(supplier), nil
}

// VerifyEmail marca el email como verificado a partir del token enviado por correo.
func (uc *AuthUseCase) VerifyEmail(ctx context.Context, token string) error {
	id, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(id.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.EmailVerified {
		return nil // verificar dos veces es no-op
	}
	user.EmailVerified = true
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

func (uc *AuthUseCase) issueToken(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:        user.ID,
		Email:         user.Email,
		Roles:         user.Roles,
		RegComplete:   user.RegComplete,
		EmailVerified: user.EmailVerified,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// sendVerificationMail envía el enlace de verificación. Best-effort: el fallo
// se registra y el registro continúa.
func (uc *AuthUseCase) sendVerificationMail(ctx context.Context, user *entity.User) {
	if uc.mailer == nil {
		return
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{UserID: user.ID, Email: user.Email}, uc.jwtCfg.Issuer, 24*60)
	if err != nil {
		uc.log.Warn().Err(err).Msg("token de verificación")
		return
	}
	body := "<p>Confirma tu correo con el token:</p><pre>" + token + "</pre>"
	if err := uc.mailer.Send(ctx, user.Email, "Verifica tu correo", body); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("correo de verificación")
	}
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Roles:         u.Roles,
		RegComplete:   u.RegComplete,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
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
