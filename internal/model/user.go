package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member types. GENERAL is legacy: it can no longer be chosen at
// registration and only exists on seeded accounts.
const (
	MemberTypeGeneral   = "GENERAL"
	MemberTypeStudent   = "STUDENT"
	MemberTypeAssociate = "ASSOCIATE"
)

type User struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	Email        string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Name         *string `gorm:"size:100" json:"name"`
	MemberType   string  `gorm:"size:20;not null" json:"memberType"`
	Verified     bool    `gorm:"not null;default:false" json:"verified"`

	VerificationToken        *string    `gorm:"size:64;index" json:"-"`
	VerificationTokenExpires *time.Time `json:"-"`

	Avatar         *string `gorm:"type:text" json:"avatar"`
	Bio            *string `gorm:"size:500" json:"bio"`
	University     *string `gorm:"size:200" json:"university"`
	EnrollmentYear *int    `json:"enrollmentYear"`
	StudentID      *string `gorm:"size:50" json:"studentId"`

	JoinDate  time.Time `gorm:"not null" json:"joinDate"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.JoinDate.IsZero() {
		u.JoinDate = time.Now()
	}
	return nil
}
