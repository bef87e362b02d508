package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeSlot struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date time.Time `gorm:"index;not null" json:"date"`

	StartTime string `gorm:"type:varchar(5);not null" json:"startTime"` // HH:MM
	EndTime   string `gorm:"type:varchar(5);not null" json:"endTime"`   // HH:MM

	IsAvailable bool       `gorm:"default:true" json:"isAvailable"`
	FittingID   *uuid.UUID `gorm:"type:uuid" json:"fittingId,omitempty"`

	gorm.Model
}

func (t *TimeSlot) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
