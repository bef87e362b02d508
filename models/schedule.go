package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Schedule is a confirmed booking linking a customer to a time slot.
type Schedule struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	TimeSlotID uuid.UUID `gorm:"type:uuid;index;not null" json:"timeSlotId"`

	Date        time.Time `gorm:"not null" json:"date"`
	ServiceType string    `gorm:"type:varchar(20);not null" json:"serviceType"`
	Status      string    `gorm:"type:varchar(20);default:'Booked'" json:"status"`

	TimeSlot TimeSlot `gorm:"foreignKey:TimeSlotID" json:"timeSlot"`

	gorm.Model
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
