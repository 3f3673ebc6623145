package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oltiademi/hatom-invoice-task/internal/application/auth"
	"github.com/oltiademi/hatom-invoice-task/internal/application/dto"
	"github.com/oltiademi/hatom-invoice-task/internal/domain"
	"github.com/oltiademi/hatom-invoice-task/internal/domain/entity"
	pkgjwt "github.com/oltiademi/hatom-invoice-task/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) FindByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthUC(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "hatom-invoice-test",
	})
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username: "olti",
		Email:    "olti@hatom.example",
		Password: "contraseña-segura",
		Role:     "admin",
	}
}

func TestRegister_HasheaPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	resp, err := uc.Register(registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "admin", resp.Role)
	stored := repo.byEmail["olti@hatom.example"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "contraseña-segura", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("contraseña-segura")))
}

func TestRegister_RolPorDefectoEsManager(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())
	in := registerRequest()
	in.Role = ""

	resp, err := uc.Register(in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, resp.Role)
}

func TestRegister_RolDesconocidoInvalido(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())
	in := registerRequest()
	in.Role = "root"

	_, err := uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	_, err = uc.Register(registerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_PasswordCorto(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())
	in := registerRequest()
	in.Password = "corto"

	_, err := uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_DevuelveTokenConClaims(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)
	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{
		Email:    "olti@hatom.example",
		Password: "contraseña-segura",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "olti@hatom.example", out.User.Email)

	userID, role, err := pkgjwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "admin", role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)
	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{
		Email:    "olti@hatom.example",
		Password: "otra-cosa",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())

	_, err := uc.Login(dto.LoginRequest{
		Email:    "nadie@hatom.example",
		Password: "lo-que-sea",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
