package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"golffit-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleConsumer = "consumer"
	RoleAdmin    = "admin"
)

// Valid golf club size preferences
var ClubSizes = []string{"Standard", "One Inch Short", "One Inch Long", "Custom"}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	Role string `gorm:"type:varchar(20);not null;default:'consumer'" json:"role"` // 'consumer' or 'admin'

	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Phone     string `json:"phone"`

	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`

	GolfClubSize string `gorm:"type:varchar(20);default:'Standard'" json:"golfClubSize"`

	LastLogin *time.Time `json:"lastLogin"`

	Fittings []Fitting `gorm:"foreignKey:CustomerID" json:"-"`

	gorm.Model
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Initialize UUID and hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

func ValidClubSize(size string) bool {
	for _, s := range ClubSizes {
		if s == size {
			return true
		}
	}
	return false
}

// StringList stores a slice of strings as a JSON column. Scans from both
// []byte (postgres) and string (sqlite in tests).
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("type assertion for StringList failed")
	}
}
