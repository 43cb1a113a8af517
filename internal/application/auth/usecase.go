package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/idcodec"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y selección de tienda.
// Las credenciales emitidas llevan los IDs de tenant/tienda cifrados con el codec
// (claims opacos): el cliente nunca ve identificadores crudos.
type AuthUseCase struct {
	userRepo       repository.UserRepository
	tenantRepo     repository.TenantRepository
	storeRepo      repository.StoreRepository
	assignmentRepo repository.AssignmentRepository
	codec          *idcodec.Codec
	jwtCfg         JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	tenantRepo repository.TenantRepository,
	storeRepo repository.StoreRepository,
	assignmentRepo repository.AssignmentRepository,
	codec *idcodec.Codec,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:       userRepo,
		tenantRepo:     tenantRepo,
		storeRepo:      storeRepo,
		assignmentRepo: assignmentRepo,
		codec:          codec,
		jwtCfg:         jwtCfg,
	}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe en ese tenant.
// Si StoreID viene, deja al usuario asignado a esa tienda como tienda por defecto.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmailAndTenant(in.Email, in.TenantID)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	tenant, err := uc.tenantRepo.GetByID(in.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound // tenant no existe
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
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     in.TenantID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	if in.StoreID != "" {
		store, err := uc.storeRepo.GetByID(in.StoreID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, domain.ErrNotFound
		}
		if store.TenantID != in.TenantID {
			return nil, domain.ErrCrossTenantAssignment
		}
		if err := uc.assignmentRepo.Upsert(&entity.StoreAssignment{
			ActorID:   user.ID,
			StoreID:   in.StoreID,
			CreatedAt: now,
		}); err != nil {
			return nil, err
		}
	}
	return toUserResponse(user), nil
}

// Login verifica email/password y emite la credencial firmada.
// El claim de tienda va solo si el actor tiene tienda por defecto y no es de
// alcance de tenant completo (esos seleccionan tienda después, o ninguna).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}

	tenantToken, err := uc.codec.Encode(user.TenantID)
	if err != nil {
		return nil, err
	}
	storeToken := ""
	if !entity.IsTenantWideRole(user.Role) {
		store, err := uc.assignmentRepo.ResolveDefault(user.ID, user.TenantID)
		if err != nil {
			return nil, err
		}
		if store != nil {
			storeToken, err = uc.codec.Encode(store.ID)
			if err != nil {
				return nil, err
			}
		}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, tenantToken, storeToken, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// SelectStore valida que el actor pueda operar la tienda pedida (asignación directa
// o rol de tenant completo) y emite una credencial nueva con el claim de esa tienda.
func (uc *AuthUseCase) SelectStore(ctx context.Context, rctx entity.RequestContext, storeID string) (*dto.TokenResponse, error) {
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if store.TenantID != rctx.TenantID {
		return nil, domain.ErrCrossTenantAccess
	}
	if !rctx.TenantWide() {
		assigned, err := uc.assignmentRepo.ResolveDefault(rctx.ActorID, rctx.TenantID)
		if err != nil {
			return nil, err
		}
		if assigned == nil || assigned.ID != storeID {
			return nil, domain.ErrPermissionDenied
		}
	}

	tenantToken, err := uc.codec.Encode(rctx.TenantID)
	if err != nil {
		return nil, err
	}
	storeToken, err := uc.codec.Encode(storeID)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, rctx.ActorID, tenantToken, storeToken, rctx.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
