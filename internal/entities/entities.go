package entities

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string         `gorm:"size:200" json:"-"` // bcrypt hash, never the plaintext
	Books        []Book         `gorm:"foreignKey:UserID" json:"books,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type Book struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	TotalPages int       `gorm:"not null" json:"total_pages"`
	PagesRead  int       `gorm:"default:0" json:"pages_read"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProgressPercent returns reading progress as a 0-100 integer for display.
func (b Book) ProgressPercent() int {
	if b.TotalPages <= 0 {
		return 0
	}
	p := b.PagesRead * 100 / b.TotalPages
	if p > 100 {
		p = 100
	}
	return p
}
