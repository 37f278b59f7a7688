package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkpatel33/pos-api/internal/application/auth"
	"github.com/rkpatel33/pos-api/internal/application/dto"
	"github.com/rkpatel33/pos-api/internal/domain"
	"github.com/rkpatel33/pos-api/internal/domain/entity"
	pkgjwt "github.com/rkpatel33/pos-api/pkg/jwt"
)

type memUsers struct {
	byEmail map[string]*entity.User
}

func (m *memUsers) Create(u *entity.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetByID(id string) (*entity.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(email string) (*entity.User, error) {
	return m.byEmail[email], nil
}

func newUseCase() (*auth.UseCase, *memUsers) {
	users := &memUsers{byEmail: make(map[string]*entity.User)}
	uc := auth.NewUseCase(users, auth.JWTConfig{
		Secret:     "unit-test-secret",
		ExpMinutes: 60,
		Issuer:     "pos-api-test",
	})
	return uc, users
}

func TestRegister_DefaultsToCashier(t *testing.T) {
	uc, users := newUseCase()

	resp, err := uc.Register(dto.RegisterRequest{
		Email:    "meena@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleCashier, resp.Role)
	assert.Equal(t, "meena@example.com", resp.Name, "name falls back to email")

	stored := users.byEmail["meena@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret-password", stored.PasswordHash, "password must be hashed")
	assert.Equal(t, "active", stored.Status)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(dto.RegisterRequest{Email: "a@example.com", Password: "password-1"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "a@example.com", Password: "password-2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_IssuesTokenWithActorClaims(t *testing.T) {
	uc, _ := newUseCase()

	reg, err := uc.Register(dto.RegisterRequest{
		Email:    "admin@example.com",
		Password: "super-secret",
		Name:     "Store Admin",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "admin@example.com", Password: "super-secret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, reg.ID, resp.User.ID)

	actorID, displayName, role, err := pkgjwt.Parse("unit-test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, actorID)
	assert.Equal(t, "Store Admin", displayName)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(dto.RegisterRequest{Email: "b@example.com", Password: "right-password"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "b@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownOrDisabledAccount(t *testing.T) {
	uc, users := newUseCase()

	_, err := uc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Register(dto.RegisterRequest{Email: "c@example.com", Password: "some-password"})
	require.NoError(t, err)
	users.byEmail["c@example.com"].Status = "disabled"

	_, err = uc.Login(dto.LoginRequest{Email: "c@example.com", Password: "some-password"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "disabled accounts cannot log in")
}
