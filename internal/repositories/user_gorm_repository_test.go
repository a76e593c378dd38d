package repositories_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMUserRepository_UniqueFields(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMUserRepository(newTestDB(t))

	bob := &models.User{Login: "bob", Username: "Bob", Email: "b@x.com", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, bob))
	assert.NotEmpty(t, bob.ID)

	err := repo.Create(ctx, &models.User{Login: "bob", Username: "Other", Email: "o@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
	err = repo.Create(ctx, &models.User{Login: "other", Username: "Other", Email: "b@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	got, err := repo.GetByLogin(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)
	got, err = repo.GetByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)

	_, err = repo.GetByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMUserRepository(newTestDB(t))

	bob := &models.User{Login: "bob", Username: "Bob", Email: "b@x.com", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, bob))

	bob.Username = "Robert"
	bob.IsAdmin = true
	bob.Login = "ignored"
	require.NoError(t, repo.Update(ctx, bob))

	got, err := repo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Robert", got.Username)
	assert.True(t, got.IsAdmin)
	assert.Equal(t, "bob", got.Login, "login is immutable")

	users, err := repo.List(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestGORMUserRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMUserRepository(db)
	sessions := repositories.NewGORMSessionRepository(db)
	orders := repositories.NewGORMOrderRepository(db)
	carts := repositories.NewGORMCartRepository(db)

	bob := seedUser(t, db, "bob")
	alice := seedUser(t, db, "alice")
	product := seedProduct(t, db, "laptop")

	_, err := sessions.Create(ctx, bob.ID, "bob-token", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = carts.Add(ctx, bob.ID, product.ID, 1)
	require.NoError(t, err)
	require.NoError(t, orders.Create(ctx, newOrder(bob.ID, "BOB00001", models.OrderStatusPending, 10)))
	require.NoError(t, orders.Create(ctx, newOrder(alice.ID, "ALI00001", models.OrderStatusPending, 10)))

	require.NoError(t, repo.Delete(ctx, bob.ID))

	_, err = repo.GetByID(ctx, bob.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = sessions.Find(ctx, "bob-token")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Equal(t, int64(0), count(t, db, &models.CartItem{}))
	assert.Equal(t, int64(1), count(t, db, &models.Order{}))
	assert.Equal(t, int64(1), count(t, db, &models.OrderItem{}))

	assert.ErrorIs(t, repo.Delete(ctx, bob.ID), repositories.ErrNotFound)
}

func TestGORMSessionRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMSessionRepository(db)
	bob := seedUser(t, db, "bob")

	expired, err := repo.Create(ctx, bob.ID, "old", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = repo.Create(ctx, bob.ID, "new", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = repo.Create(ctx, bob.ID, "new", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, repositories.ErrDuplicate, "tokens are unique")

	found, err := repo.Find(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, expired.ID, found.ID)
	assert.True(t, found.IsExpired(time.Now()), "expired rows stay until revoked")

	require.NoError(t, repo.Delete(ctx, "old"))
	require.NoError(t, repo.Delete(ctx, "old"), "delete is idempotent")
	_, err = repo.Find(ctx, "old")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, repo.DeleteAllForUser(ctx, bob.ID))
	assert.Equal(t, int64(0), count(t, db, &models.RefreshToken{}))
}
