package model

import "time"

type Rating struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_rating_owner,priority:1" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Kind        ItemKind  `gorm:"size:16;not null;uniqueIndex:idx_rating_owner,priority:2" json:"kind"`
	ReferenceID uint      `gorm:"not null;uniqueIndex:idx_rating_owner,priority:3" json:"reference_id"`
	Score       int       `gorm:"not null" json:"score"`
	Comment     string    `json:"comment"`
	RatedAt     time.Time `gorm:"not null" json:"rated_at"`
}

type RatingSummary struct {
	Kind        ItemKind `json:"kind"`
	ReferenceID uint     `json:"reference_id"`
	Average     float64  `json:"average"`
	Count       int64    `json:"count"`
}

// CheckIn is unique per user, attraction and calendar day.
type CheckIn struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	UserID       uint        `gorm:"not null;uniqueIndex:idx_checkin_day,priority:1" json:"user_id"`
	User         *User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AttractionID uint        `gorm:"not null;uniqueIndex:idx_checkin_day,priority:2" json:"attraction_id"`
	Attraction   *Attraction `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CheckInDate  string      `gorm:"size:10;not null;uniqueIndex:idx_checkin_day,priority:3" json:"check_in_date"`
	CheckedInAt  time.Time   `gorm:"not null" json:"checked_in_at"`
	Points       int         `gorm:"not null" json:"points"`
}
