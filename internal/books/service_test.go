package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	booksdb "github.com/readtrack/readtrack/internal/database/books"
	"github.com/readtrack/readtrack/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *entities.User, *entities.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Book{}))

	alice := &entities.User{Username: "alice", PasswordHash: "x"}
	bob := &entities.User{Username: "bob", PasswordHash: "x"}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)

	return NewService(booksdb.NewRepository(db)), alice, bob
}

func TestService_Create(t *testing.T) {
	svc, alice, _ := setupTestService(t)

	book, err := svc.Create(alice, "Dune", 400, 50)

	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.Equal(t, alice.ID, book.UserID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, 400, book.TotalPages)
	assert.Equal(t, 50, book.PagesRead)
}

func TestService_List_ScopedToOwner(t *testing.T) {
	svc, alice, bob := setupTestService(t)

	_, err := svc.Create(alice, "Dune", 400, 50)
	require.NoError(t, err)
	_, err = svc.Create(bob, "Hamlet", 160, 20)
	require.NoError(t, err)

	aliceBooks, err := svc.List(alice)
	require.NoError(t, err)
	require.Len(t, aliceBooks, 1)
	assert.Equal(t, "Dune", aliceBooks[0].Title)

	bobBooks, err := svc.List(bob)
	require.NoError(t, err)
	require.Len(t, bobBooks, 1)
	assert.Equal(t, "Hamlet", bobBooks[0].Title)
}

func TestService_List_Empty(t *testing.T) {
	svc, alice, _ := setupTestService(t)

	books, err := svc.List(alice)

	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestService_List_Idempotent(t *testing.T) {
	svc, alice, _ := setupTestService(t)

	_, err := svc.Create(alice, "Dune", 400, 50)
	require.NoError(t, err)

	first, err := svc.List(alice)
	require.NoError(t, err)
	second, err := svc.List(alice)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestService_Get_NotFound(t *testing.T) {
	svc, alice, _ := setupTestService(t)

	_, err := svc.Get(alice, 999)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Get_NotOwner(t *testing.T) {
	svc, alice, bob := setupTestService(t)

	book, err := svc.Create(alice, "Dune", 400, 50)
	require.NoError(t, err)

	_, err = svc.Get(bob, book.ID)

	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestService_Edit(t *testing.T) {
	svc, alice, _ := setupTestService(t)

	book, err := svc.Create(alice, "Dune", 400, 50)
	require.NoError(t, err)

	updated, err := svc.Edit(alice, book.ID, "Dune Messiah", 350, 100)

	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.Equal(t, 350, updated.TotalPages)
	assert.Equal(t, 100, updated.PagesRead)

	stored, err := svc.Get(alice, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", stored.Title)
}

func TestService_Edit_NotOwnerLeavesBookUnchanged(t *testing.T) {
	svc, alice, bob := setupTestService(t)

	book, err := svc.Create(alice, "Dune", 400, 50)
	require.NoError(t, err)

	_, err = svc.Edit(bob, book.ID, "Stolen", 1, 1)
	assert.ErrorIs(t, err, ErrNotOwner)

	stored, err := svc.Get(alice, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", stored.Title)
	assert.Equal(t, 400, stored.TotalPages)
	assert.Equal(t, 50, stored.PagesRead)
}

func TestService_Edit_NotFound(t *testing.T) {
	svc, alice, _ := setupTestService(t)

	_, err := svc.Edit(alice, 999, "Ghost", 100, 10)

	assert.ErrorIs(t, err, ErrNotFound)
}
