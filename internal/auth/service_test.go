package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mars_shop/internal/apperr"
	"mars_shop/internal/cache"
	"mars_shop/internal/models"
	"mars_shop/internal/repository"
)

var sami = RegisterInput{
	Name:     "Sami",
	Email:    " Sami@Example.com ",
	Password: "secret1",
	Phone:    "+216 20 000 000",
	Address:  "Ben Gardane",
}

func newAuth(t *testing.T) (*Service, repository.UserRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	users := repository.NewMemory().Users
	svc := NewService(users, NewTokens("test-secret", time.Hour), cache.NewRedisRevoker(client), cache.New(client))
	return svc, users, mr
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuth(t)

	reg, err := svc.Register(ctx, sami)
	require.NoError(t, err)
	assert.Equal(t, "sami@example.com", reg.User.Email)
	assert.False(t, reg.User.IsAdmin)
	assert.NotEqual(t, sami.Password, reg.User.PasswordHash)
	assert.NotEmpty(t, reg.Token)

	login, err := svc.Login(ctx, "SAMI@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	_, err = svc.Login(ctx, "sami@example.com", "wrong")
	assert.True(t, apperr.Is(err, apperr.KindAuth))
	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.True(t, apperr.Is(err, apperr.KindAuth))
}

func TestRegisterDuplicateEmailCreatesNothing(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newAuth(t)
	_, err := svc.Register(ctx, sami)
	require.NoError(t, err)

	dup := sami
	dup.Name = "Other"
	_, err = svc.Register(ctx, dup)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	n, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuth(t)

	short := sami
	short.Password = "12345"
	_, err := svc.Register(context.Background(), short)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Register(context.Background(), RegisterInput{Email: "not-an-email", Password: "secret1"})
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"name", "email", "phone", "address"}, e.Fields)
}

func TestAuthenticateAndLogout(t *testing.T) {
	ctx := context.Background()
	svc, _, mr := newAuth(t)
	reg, err := svc.Register(ctx, sami)
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, got.User.ID)
	assert.True(t, mr.Exists(cache.SessionKey(reg.User.ID)))

	require.NoError(t, svc.Logout(ctx, got.Claims))
	_, err = svc.Authenticate(ctx, reg.Token)
	assert.True(t, apperr.Is(err, apperr.KindAuth))

	_, err = svc.Authenticate(ctx, "not.a.token")
	assert.True(t, apperr.Is(err, apperr.KindAuth))
}

func TestCorruptSessionSnapshotFallsBack(t *testing.T) {
	ctx := context.Background()
	svc, _, mr := newAuth(t)
	reg, err := svc.Register(ctx, sami)
	require.NoError(t, err)

	require.NoError(t, mr.Set(cache.SessionKey(reg.User.ID), `{"version":99}`))
	got, err := svc.Authenticate(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, "Sami", got.User.Name)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuth(t)
	reg, err := svc.Register(ctx, sami)
	require.NoError(t, err)
	other := sami
	other.Email = "taken@example.com"
	_, err = svc.Register(ctx, other)
	require.NoError(t, err)

	// Remplit le cache avant la modification.
	_, err = svc.Authenticate(ctx, reg.Token)
	require.NoError(t, err)

	phone := "+216 99 999 999"
	updated, err := svc.UpdateProfile(ctx, reg.User.ID, models.ProfilePatch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Sami", updated.Name)

	current, err := svc.CurrentUser(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, phone, current.Phone)

	taken := "taken@example.com"
	_, err = svc.UpdateProfile(ctx, reg.User.ID, models.ProfilePatch{Email: &taken})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	blank := " "
	_, err = svc.UpdateProfile(ctx, reg.User.ID, models.ProfilePatch{Name: &blank})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestSeedDemoUsers(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newAuth(t)
	require.NoError(t, SeedDemoUsers(ctx, users))
	require.NoError(t, SeedDemoUsers(ctx, users))

	admin, err := svc.Login(ctx, "admin@marsshop.com", "admin")
	require.NoError(t, err)
	assert.True(t, admin.User.IsAdmin)

	john, err := svc.Login(ctx, "john@example.com", "password")
	require.NoError(t, err)
	assert.False(t, john.User.IsAdmin)
}

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRevoker()
	now := time.Now()
	r.now = func() time.Time { return now }

	require.NoError(t, r.Revoke(ctx, "a", time.Minute))
	revoked, _ := r.IsRevoked(ctx, "a")
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = r.IsRevoked(ctx, "a")
	assert.False(t, revoked)
}

func TestValidEmail(t *testing.T) {
	for _, email := range []string{"john@example.com", "a.b+shop@marsshop.tn"} {
		assert.True(t, validEmail(email), email)
	}
	for _, email := range []string{"", "not-an-email", "john@", "John <john@example.com>", "john doe@example.com"} {
		assert.False(t, validEmail(email), email)
	}
}
