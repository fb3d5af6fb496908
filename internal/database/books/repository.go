// Package books provides database operations for book progress records.
package books

import (
	"gorm.io/gorm"

	"github.com/readtrack/readtrack/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new book. The caller is responsible for setting UserID.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

// GetByID retrieves a book by its ID regardless of owner. Ownership
// checks happen in the service layer.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAllForUser retrieves all books owned by the given user, in storage order.
func (r *Repository) GetAllForUser(userID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("user_id = ?", userID).Find(&books).Error
	return books, err
}

// Update persists all mutable fields of an existing book.
func (r *Repository) Update(book *entities.Book) error {
	return r.db.Save(book).Error
}
