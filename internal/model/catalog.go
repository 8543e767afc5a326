package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Attraction struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	Name              string           `gorm:"size:120;uniqueIndex;not null" json:"name"`
	ShortDescription  string           `json:"short_description"`
	Description       string           `json:"description"`
	CapacityPerCycle  int              `gorm:"not null" json:"capacity_per_cycle"`
	CycleMinutes      *int             `json:"cycle_minutes,omitempty"`
	MinHeightCM       *int             `json:"min_height_cm,omitempty"`
	MaxHeightCM       *int             `json:"max_height_cm,omitempty"`
	MinAge            *int             `json:"min_age,omitempty"`
	CompanionUntilAge *int             `json:"companion_until_age,omitempty"`
	Kind              string           `gorm:"size:32" json:"kind"`
	MapLocation       string           `json:"map_location"`
	ImagePath         string           `json:"image_path"`
	Status            AttractionStatus `gorm:"size:32;index;not null" json:"status"`
	LastMaintenance   string           `gorm:"size:10" json:"last_maintenance,omitempty"`
	NextMaintenance   string           `gorm:"size:10" json:"next_maintenance,omitempty"`
	ThrillLevel       string           `gorm:"size:32" json:"thrill_level"`
	Accessibility     string           `json:"accessibility"`
}

type Show struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Description     string `json:"description"`
	Kind            string `gorm:"size:32" json:"kind"`
	Location        string `json:"location"`
	Schedule        string `json:"schedule"` // free text, e.g. "14:00, 17:00"
	DurationMinutes int    `json:"duration_minutes"`
	ImageURL        string `json:"image_url"`
	Active          bool   `gorm:"not null" json:"active"`
}

type FoodCourt struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Description  string     `json:"description"`
	Cuisine      string     `gorm:"size:64" json:"cuisine"`
	MapLocation  string     `json:"map_location"`
	OpeningHours string     `json:"opening_hours"`
	LogoURL      string     `json:"logo_url"`
	Active       bool       `gorm:"not null" json:"active"`
	MenuItems    []MenuItem `gorm:"foreignKey:FoodCourtID;constraint:OnDelete:CASCADE" json:"menu_items,omitempty"`
}

type MenuItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	FoodCourtID uint            `gorm:"not null;uniqueIndex:idx_menu_item_name,priority:1" json:"food_court_id"`
	Name        string          `gorm:"size:120;not null;uniqueIndex:idx_menu_item_name,priority:2" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string          `gorm:"size:64" json:"category"`
	Available   bool            `gorm:"not null" json:"available"`
	ImageURL    string          `json:"image_url,omitempty"`
}

type Notice struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:160;uniqueIndex;not null" json:"title"`
	Message     string     `gorm:"not null" json:"message"`
	Kind        NoticeKind `gorm:"size:16;not null" json:"kind"`
	PublishedAt time.Time  `gorm:"not null" json:"published_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Active      bool       `gorm:"not null" json:"active"`
}

type ParkInfo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:64;uniqueIndex;not null" json:"key"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
