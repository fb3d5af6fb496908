// Package books implements the book-progress operations: listing, creating,
// and editing records, always scoped to the owning user.
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/readtrack/readtrack/internal/entities"
)

var (
	ErrNotFound = errors.New("book not found")
	ErrNotOwner = errors.New("book belongs to another user")
)

// BookStore defines the persistence operations the service needs.
// Implemented by database/books.Repository.
type BookStore interface {
	Create(book *entities.Book) error
	GetByID(id uint) (*entities.Book, error)
	GetAllForUser(userID uint) ([]entities.Book, error)
	Update(book *entities.Book) error
}

// Service enforces per-user ownership over book records.
type Service struct {
	store BookStore
}

// NewService creates a new book management service.
func NewService(store BookStore) *Service {
	return &Service{store: store}
}

// List returns all books owned by the user. An empty result is valid.
func (s *Service) List(user *entities.User) ([]entities.Book, error) {
	return s.store.GetAllForUser(user.ID)
}

// Create stores a new book owned by the user and returns it.
func (s *Service) Create(user *entities.User, title string, totalPages, pagesRead int) (*entities.Book, error) {
	book := &entities.Book{
		UserID:     user.ID,
		Title:      title,
		TotalPages: totalPages,
		PagesRead:  pagesRead,
	}

	if err := s.store.Create(book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return book, nil
}

// Get loads a book by id with the ownership check applied.
// Returns ErrNotFound for unknown ids and ErrNotOwner when the book
// belongs to a different user.
func (s *Service) Get(user *entities.User, id uint) (*entities.Book, error) {
	book, err := s.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if book.UserID != user.ID {
		return nil, ErrNotOwner
	}

	return book, nil
}

// Edit overwrites title, total pages, and pages read together. There are
// no partial-field edits. A failed ownership check leaves the record
// untouched.
func (s *Service) Edit(user *entities.User, id uint, title string, totalPages, pagesRead int) (*entities.Book, error) {
	book, err := s.Get(user, id)
	if err != nil {
		return nil, err
	}

	book.Title = title
	book.TotalPages = totalPages
	book.PagesRead = pagesRead

	if err := s.store.Update(book); err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	return book, nil
}
