package model

import "time"

type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Username      string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash  string     `gorm:"size:100;not null" json:"-"`
	RecoveryEmail string     `gorm:"size:255;uniqueIndex;not null" json:"recovery_email"`
	Role          Role       `gorm:"size:32;not null" json:"role"`
	Active        bool       `gorm:"not null" json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

// Profile aggregates what the "my profile" view shows.
type Profile struct {
	Username      string    `json:"username"`
	RecoveryEmail string    `json:"recovery_email"`
	Role          Role      `json:"role"`
	MemberSince   time.Time `json:"member_since"`
	Points        int64     `json:"points"`
	CheckIns      int64     `json:"check_ins"`
	Purchases     int64     `json:"purchases"`
	Tickets       int64     `json:"tickets"`
	TotalSpent    string    `json:"total_spent"`
}
