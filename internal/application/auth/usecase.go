package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/sokha/pos-api/internal/application/dto"
	"github.com/sokha/pos-api/internal/domain"
	"github.com/sokha/pos-api/internal/domain/entity"
	"github.com/sokha/pos-api/internal/domain/repository"
	"github.com/sokha/pos-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación y gestión de personal.
type AuthUseCase struct {
	staffRepo repository.StaffRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(staffRepo repository.StaffRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{staffRepo: staffRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Cuentas desactivadas no pueden iniciar sesión.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	staff, err := uc.staffRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		// Mismo error que password incorrecto: no revelar si el email existe.
		return nil, domain.ErrUnauthorized
	}
	if !staff.IsActive {
		return nil, domain.ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, staff.ID, staff.Email, staff.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toStaffResponse(staff),
	}, nil
}

// CreateStaff crea un miembro del personal: hashea el password con bcrypt y
// persiste. Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) CreateStaff(in dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	existing, err := uc.staffRepo.GetByEmail(in.Email)
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
	staff := &entity.Staff{
		ID:           uuid.New().String(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.staffRepo.Create(staff); err != nil {
		return nil, err
	}
	return toStaffResponse(staff), nil
}

// UpdateStaff aplica una actualización parcial: solo los campos presentes del
// request mutan la entidad. Un password nuevo se re-hashea.
func (uc *AuthUseCase) UpdateStaff(id string, in dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	staff, err := uc.staffRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, domain.ErrStaffNotFound
	}
	if in.FullName != nil {
		staff.FullName = *in.FullName
	}
	if in.Email != nil {
		staff.Email = *in.Email
	}
	if in.Role != nil {
		staff.Role = *in.Role
	}
	if in.IsActive != nil {
		staff.IsActive = *in.IsActive
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		staff.PasswordHash = string(hash)
	}
	staff.UpdatedAt = time.Now()
	if err := uc.staffRepo.Update(staff); err != nil {
		return nil, err
	}
	return toStaffResponse(staff), nil
}

// ListStaff lista todo el personal sin hashes de contraseña.
func (uc *AuthUseCase) ListStaff() ([]dto.StaffResponse, error) {
	list, err := uc.staffRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.StaffResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toStaffResponse(s))
	}
	return out, nil
}

// DeactivateStaff desactiva (borrado lógico) a un miembro del personal.
// Nadie puede desactivar su propia cuenta: ErrSelfDeactivation sin mutación.
func (uc *AuthUseCase) DeactivateStaff(callerID, targetID string) error {
	if callerID == targetID {
		return domain.ErrSelfDeactivation
	}
	staff, err := uc.staffRepo.GetByID(targetID)
	if err != nil {
		return err
	}
	if staff == nil {
		return domain.ErrStaffNotFound
	}
	return uc.staffRepo.Deactivate(targetID)
}

func toStaffResponse(s *entity.Staff) *dto.StaffResponse {
	if s == nil {
		return nil
	}
	return &dto.StaffResponse{
		ID:        s.ID,
		FullName:  s.FullName,
		Email:     s.Email,
		Role:      s.Role,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
