package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const ContentTypeBanner = "banner"

// Content is an admin-editable block of marketing copy. At most one
// record per type is active at a time.
type Content struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Type string    `gorm:"type:varchar(30);index;not null" json:"type"`

	Title  string `gorm:"not null" json:"title"`
	Body   string `gorm:"type:text;not null" json:"body"`
	Active bool   `gorm:"default:true" json:"active"`

	LastUpdatedByID uuid.UUID `gorm:"type:uuid" json:"lastUpdatedById"`

	gorm.Model
}

func (ct *Content) BeforeCreate(tx *gorm.DB) (err error) {
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	return
}
