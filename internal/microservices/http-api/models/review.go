package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review has no unique (book_id, user_id) index: one review per user per book is
// checked by the service before insert.
type Review struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	BookID    string    `gorm:"type:uuid;not null;index" json:"bookId"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations; migrations skip FK constraints, integrity is kept by the services
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Review) TableName() string {
	return "reviews"
}
