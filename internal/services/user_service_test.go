package services_test

import (
	"context"
	"testing"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_SelfOrAdmin(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	svc := services.NewUserService(users, new(MockSessionRepository), bcrypt.MinCost)

	alice := &models.User{ID: "u1", Login: "alice", Username: "Alice"}
	mallory := &models.User{ID: "u2", Login: "mallory"}
	admin := &models.User{ID: "u3", Login: "root", IsAdmin: true}

	users.On("GetByID", mock.Anything, "u1").Return(alice, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.UpdateUsername(ctx, mallory, "u1", "Evil")
	assert.ErrorIs(t, err, services.ErrForbidden)

	updated, err := svc.UpdateUsername(ctx, alice, "u1", "Alice B")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Username)
	assert.Equal(t, "alice", updated.Login)

	updated, err = svc.UpdateUsername(ctx, admin, "u1", "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Username)

	_, err = svc.GetUser(ctx, mallory, "u1")
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestUserService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	svc := services.NewUserService(users, new(MockSessionRepository), bcrypt.MinCost)
	bob := userWithPassword(t, "u1", "bob", "secret1")

	users.On("GetByID", mock.Anything, "u1").Return(bob, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.UpdatePassword(ctx, bob, "u1", "wrong", "secret2")
	assert.ErrorIs(t, err, services.ErrIncorrectPassword)

	updated, err := svc.UpdatePassword(ctx, bob, "u1", "secret1", "secret2")
	require.NoError(t, err)
	assert.True(t, services.VerifyPassword("secret2", updated.PasswordHash))
	assert.False(t, services.VerifyPassword("secret1", updated.PasswordHash))
}

func TestUserService_AdminOperations(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	sessions := new(MockSessionRepository)
	svc := services.NewUserService(users, sessions, bcrypt.MinCost)

	admin := &models.User{ID: "a1", Login: "root", IsAdmin: true}
	plain := &models.User{ID: "u1", Login: "bob"}

	_, err := svc.ListUsers(ctx, plain, 0, 100)
	assert.ErrorIs(t, err, services.ErrForbidden)
	_, err = svc.SetAdmin(ctx, plain, "u1", true)
	assert.ErrorIs(t, err, services.ErrForbidden)
	_, err = svc.SetAdmin(ctx, admin, "a1", false)
	assert.ErrorIs(t, err, services.ErrForbidden, "admins cannot change their own flag")
	assert.ErrorIs(t, svc.DeleteUser(ctx, plain, "a1"), services.ErrForbidden)

	users.On("List", mock.Anything, 0, 100).Return([]models.User{*admin, *plain}, nil).Once()
	list, err := svc.ListUsers(ctx, admin, 0, 100)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	users.On("GetByID", mock.Anything, "u1").Return(plain, nil).Once()
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool { return u.ID == "u1" && u.IsAdmin })).
		Return(nil).Once()
	promoted, err := svc.SetAdmin(ctx, admin, "u1", true)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	sessions.On("DeleteAllForUser", mock.Anything, "u1").Return(nil).Once()
	users.On("Delete", mock.Anything, "u1").Return(nil).Once()
	require.NoError(t, svc.DeleteUser(ctx, admin, "u1"))

	users.AssertExpectations(t)
	sessions.AssertExpectations(t)
}
