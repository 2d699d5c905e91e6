package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Almacen-api/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

var testJWTCfg = auth.JWTConfig{
	Secret:     "test-secret-key-for-unit-tests",
	ExpMinutes: 60,
	Issuer:     "almacen-api-test",
}

func TestRegisterUser_HasheaPasswordYActiva(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@almacen.local",
		Password: "secreto123",
		Name:     "Ana",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@almacen.local", user.Email)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "active", user.Status)

	stored, _ := repo.FindByEmail("ana@almacen.local")
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto123", stored.PasswordHash, "la password nunca se guarda en claro")
}

func TestRegisterUser_NombreVacio_UsaEmail(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWTCfg)

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@almacen.local",
		Password: "secreto123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@almacen.local", user.Name)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWTCfg)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@almacen.local", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@almacen.local", Password: "otraclave99"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenLlevaIdentidadDelActor(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWTCfg)

	registered, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@almacen.local",
		Password: "secreto123",
		Name:     "Ana",
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@almacen.local", Password: "secreto123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, registered.ID, out.User.ID)

	userID, name, err := pkgjwt.Parse(testJWTCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, "Ana", name)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWTCfg)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@almacen.local", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@almacen.local", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWTCfg)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@almacen.local", Password: "loquesea1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@almacen.local", Password: "secreto123"})
	require.NoError(t, err)
	repo.byEmail["ana@almacen.local"].Status = "disabled"

	_, err = uc.Login(dto.LoginRequest{Email: "ana@almacen.local", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
