package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"building/internal/database"
	"building/internal/models"
	"building/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB opens a private in-memory SQLite database for one test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newUser(name, email string) *models.User {
	return &models.User{
		Name:       name,
		Email:      email,
		Phone:      "555",
		Password:   "hash",
		Building:   1,
		Appartment: 2,
		Roles:      models.DefaultRoles(),
		Active:     true,
	}
}

func TestGORMUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	user := newUser("Ana", "ana@x.com")
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	fetched, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", fetched.Name)
	assert.Equal(t, []string{"Tenant"}, fetched.Roles)
	assert.Equal(t, "hash", fetched.Password)

	byEmail, err := repo.GetByEmail(ctx, "ANA@X.COM")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].Password)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	require.NoError(t, repo.Create(ctx, newUser("José", "josé@x.com")))
	err := repo.Create(ctx, newUser("Jose", "JOSE@x.com"))
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGORMUserRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	user := newUser("Ana", "ana@x.com")
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "Ana Maria"
	user.Active = false
	user.Debt = 0
	require.NoError(t, repo.Update(ctx, user))

	fetched, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", fetched.Name)
	assert.False(t, fetched.Active)

	ghost := newUser("Ghost", "ghost@x.com")
	ghost.ID = uuid.NewString()
	assert.ErrorIs(t, repo.Update(ctx, ghost), repositories.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, user.ID))
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), repositories.ErrNotFound)
}

func TestGORMReportRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMReportRepository(openTestDB(t))

	report := &models.Report{User: uuid.NewString(), Title: "Leak", Text: "Kitchen leak"}
	require.NoError(t, repo.Create(ctx, report))

	report.Completed = true
	require.NoError(t, repo.Update(ctx, report))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Completed)

	require.NoError(t, repo.Delete(ctx, report.ID))
	_, err = repo.GetByID(ctx, report.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
