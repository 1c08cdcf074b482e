package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Book keeps its reviews as an ordered list of review ids, appended on every new review.
type Book struct {
	ID            string                      `gorm:"primaryKey;type:uuid" json:"id"`
	Title         string                      `gorm:"not null" json:"title"`
	Author        string                      `gorm:"not null" json:"author"`
	Description   string                      `gorm:"type:text" json:"description"`
	Category      datatypes.JSONSlice[string] `json:"category"`
	PublishedYear int                         `json:"publishedYear"`
	ImageURL      string                      `json:"imageUrl"`
	ImagePublicID string                      `json:"imagePublicId"`
	PDFURL        string                      `gorm:"column:pdf_url;not null" json:"pdfUrl"`
	PDFPublicID   string                      `gorm:"column:pdf_public_id;not null" json:"pdfPublicId"`
	ReviewIDs     datatypes.JSONSlice[string] `gorm:"column:review_ids" json:"reviews"`
	CreatedAt     time.Time                   `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Category == nil {
		b.Category = datatypes.JSONSlice[string]{}
	}
	if b.ReviewIDs == nil {
		b.ReviewIDs = datatypes.JSONSlice[string]{}
	}
	return
}

func (Book) TableName() string {
	return "books"
}
