package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sokha/pos-api/internal/application/auth"
	"github.com/sokha/pos-api/internal/application/dto"
	"github.com/sokha/pos-api/internal/domain"
	"github.com/sokha/pos-api/internal/domain/entity"
)

// fakeStaffRepo repositorio de personal en memoria.
type fakeStaffRepo struct {
	staff map[string]*entity.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: map[string]*entity.Staff{}}
}

func (r *fakeStaffRepo) Create(s *entity.Staff) error {
	for _, existing := range r.staff {
		if existing.Email == s.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *s
	r.staff[s.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) GetByID(id string) (*entity.Staff, error) {
	return r.staff[id], nil
}

func (r *fakeStaffRepo) GetByEmail(email string) (*entity.Staff, error) {
	for _, s := range r.staff {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeStaffRepo) Update(s *entity.Staff) error {
	cp := *s
	r.staff[s.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) List() ([]*entity.Staff, error) {
	var out []*entity.Staff
	for _, s := range r.staff {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeStaffRepo) Deactivate(id string) error {
	if s, ok := r.staff[id]; ok {
		s.IsActive = false
	}
	return nil
}

func testJWT() auth.JWTConfig {
	return auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "pos-api-test"}
}

func seedStaff(t *testing.T, repo *fakeStaffRepo, id, email, password, role string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.staff[id] = &entity.Staff{
		ID:           id,
		FullName:     "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
}

func TestLogin_CredencialesValidas(t *testing.T) {
	repo := newFakeStaffRepo()
	seedStaff(t, repo, "s1", "admin@shop.kh", "secret123", entity.RoleAdmin, true)
	uc := auth.NewAuthUseCase(repo, testJWT())

	out, err := uc.Login(dto.LoginRequest{Email: "admin@shop.kh", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "admin@shop.kh", out.User.Email)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newFakeStaffRepo()
	seedStaff(t, repo, "s1", "admin@shop.kh", "secret123", entity.RoleAdmin, true)
	uc := auth.NewAuthUseCase(repo, testJWT())

	_, err := uc.Login(dto.LoginRequest{Email: "admin@shop.kh", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailDesconocido_MismoError(t *testing.T) {
	repo := newFakeStaffRepo()
	uc := auth.NewAuthUseCase(repo, testJWT())

	_, err := uc.Login(dto.LoginRequest{Email: "nobody@shop.kh", Password: "whatever"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"email inexistente y password incorrecto deben ser indistinguibles")
}

func TestLogin_CuentaDesactivada(t *testing.T) {
	repo := newFakeStaffRepo()
	seedStaff(t, repo, "s1", "old@shop.kh", "secret123", entity.RoleStaff, false)
	uc := auth.NewAuthUseCase(repo, testJWT())

	_, err := uc.Login(dto.LoginRequest{Email: "old@shop.kh", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateStaff_HasheaPassword(t *testing.T) {
	repo := newFakeStaffRepo()
	uc := auth.NewAuthUseCase(repo, testJWT())

	out, err := uc.CreateStaff(dto.CreateStaffRequest{
		FullName: "New Seller",
		Email:    "seller@shop.kh",
		Password: "secret123",
		Role:     entity.RoleStaff,
	})
	require.NoError(t, err)
	assert.True(t, out.IsActive)

	stored, _ := repo.GetByEmail("seller@shop.kh")
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestCreateStaff_EmailDuplicado(t *testing.T) {
	repo := newFakeStaffRepo()
	seedStaff(t, repo, "s1", "seller@shop.kh", "secret123", entity.RoleStaff, true)
	uc := auth.NewAuthUseCase(repo, testJWT())

	_, err := uc.CreateStaff(dto.CreateStaffRequest{
		FullName: "Other",
		Email:    "seller@shop.kh",
		Password: "secret456",
		Role:     entity.RoleStaff,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUpdateStaff_ParcialYRehash(t *testing.T) {
	repo := newFakeStaffRepo()
	seedStaff(t, repo, "s1", "seller@shop.kh", "secret123", entity.RoleStaff, true)
	uc := auth.NewAuthUseCase(repo, testJWT())

	newName := "Renamed"
	newPassword := "newsecret"
	out, err := uc.UpdateStaff("s1", dto.UpdateStaffRequest{
		FullName: &newName,
		Password: &newPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", out.FullName)
	assert.Equal(t, "seller@shop.kh", out.Email, "los campos ausentes no cambian")

	stored, _ := repo.GetByID("s1")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newsecret")))
}

func TestUpdateStaff_NoExiste(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeStaffRepo(), testJWT())
	_, err := uc.UpdateStaff("nope", dto.UpdateStaffRequest{})
	assert.ErrorIs(t, err, domain.ErrStaffNotFound)
}

func TestDeactivateStaff_PropiaCuenta(t *testing.T) {
	repo := newFakeStaffRepo()
	seedStaff(t, repo, "s1", "admin@shop.kh", "secret123", entity.RoleAdmin, true)
	uc := auth.NewAuthUseCase(repo, testJWT())

	err := uc.DeactivateStaff("s1", "s1")
	assert.ErrorIs(t, err, domain.ErrSelfDeactivation)

	stored, _ := repo.GetByID("s1")
	assert.True(t, stored.IsActive, "la cuenta propia no debe mutarse")
}

func TestDeactivateStaff_OtraCuenta(t *testing.T) {
	repo := newFakeStaffRepo()
	seedStaff(t, repo, "s1", "admin@shop.kh", "secret123", entity.RoleAdmin, true)
	seedStaff(t, repo, "s2", "seller@shop.kh", "secret123", entity.RoleStaff, true)
	uc := auth.NewAuthUseCase(repo, testJWT())

	require.NoError(t, uc.DeactivateStaff("s1", "s2"))

	stored, _ := repo.GetByID("s2")
	assert.False(t, stored.IsActive)
}
