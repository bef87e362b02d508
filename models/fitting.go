package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fitting types
const (
	TypeSwingAnalysis = "swing-analysis"
	TypeClubFitting   = "club-fitting"
)

// Fitting statuses
const (
	StatusRequestSubmitted = "Fitting Request Submitted"
	StatusBeingPrepped     = "Fitting Being Prepped"
	StatusScheduled        = "Fitting Scheduled"
	StatusCanceled         = "Fitting Canceled"
	StatusCompleted        = "Fitting Completed"
)

var FittingStatuses = []string{
	StatusRequestSubmitted,
	StatusBeingPrepped,
	StatusScheduled,
	StatusCanceled,
	StatusCompleted,
}

type Fitting struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	Type          string    `gorm:"type:varchar(20);not null" json:"type"`
	Status        string    `gorm:"type:varchar(40);not null;default:'Fitting Request Submitted'" json:"status"`
	ScheduledDate time.Time `gorm:"index;not null" json:"scheduledDate"`
	Time          string    `gorm:"type:varchar(5)" json:"time"` // HH:MM, required for club fittings
	Comments      string    `json:"comments"`

	// Club fitting measurement
	ClubType string `gorm:"type:varchar(40)" json:"clubType,omitempty"`

	// Swing analysis measurements
	SwingSpeed          float64    `json:"swingSpeed,omitempty"`
	LaunchAngle         float64    `json:"launchAngle,omitempty"`
	SpinRate            float64    `json:"spinRate,omitempty"`
	ClubRecommendations StringList `gorm:"type:text" json:"clubRecommendations,omitempty"`

	Customer      User                 `gorm:"foreignKey:CustomerID" json:"-"`
	StatusHistory []FittingStatusEntry `gorm:"foreignKey:FittingID" json:"statusHistory"`

	gorm.Model
}

// FittingStatusEntry is one row of a fitting's append-only status log.
// Entries are only ever inserted, never updated or deleted.
type FittingStatusEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FittingID   uuid.UUID `gorm:"type:uuid;index;not null" json:"fittingId"`
	Status      string    `gorm:"type:varchar(40);not null" json:"status"`
	UpdatedByID uuid.UUID `gorm:"type:uuid;not null" json:"updatedById"`
	CreatedAt   time.Time `json:"timestamp"`
}

func (f *Fitting) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}

func (e *FittingStatusEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

func ValidFittingType(t string) bool {
	return t == TypeSwingAnalysis || t == TypeClubFitting
}

func ValidFittingStatus(s string) bool {
	for _, v := range FittingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// TerminalStatus reports whether a status ends the fitting lifecycle.
func TerminalStatus(s string) bool {
	return s == StatusCanceled || s == StatusCompleted
}
