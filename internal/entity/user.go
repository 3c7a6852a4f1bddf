package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser         = "user"
	RoleProfessional = "professional"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Surname      string    `gorm:"size:100" json:"surname"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        *string   `gorm:"size:20;uniqueIndex" json:"phone,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:user" json:"role"`
	DateOfBirth  *string   `gorm:"size:10" json:"date_of_birth,omitempty"`
	Gender       *string   `gorm:"size:20" json:"gender,omitempty"`
	Location     *string   `gorm:"size:100" json:"location,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
