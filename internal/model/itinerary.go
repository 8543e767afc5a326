package model

import "time"

type Itinerary struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	VisitDate string    `gorm:"size:10;not null" json:"visit_date"` // YYYY-MM-DD

	Items []ItineraryItem `gorm:"foreignKey:ItineraryID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// ItineraryItem positions are 1..K with no gaps inside one itinerary.
type ItineraryItem struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	ItineraryID uint     `gorm:"not null;uniqueIndex:idx_itinerary_position,priority:1" json:"itinerary_id"`
	Kind        ItemKind `gorm:"size:16;not null" json:"kind"`
	ReferenceID uint     `gorm:"not null" json:"reference_id"`
	PlannedTime string   `gorm:"size:5" json:"planned_time"` // HH:MM
	Position    int      `gorm:"not null;uniqueIndex:idx_itinerary_position,priority:2" json:"position"`
	Note        *string  `json:"note,omitempty"`

	Name string `gorm:"-" json:"name,omitempty"`
}

type ItinerarySummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	VisitDate string    `json:"visit_date"`
	CreatedAt time.Time `json:"created_at"`
	ItemCount int64     `json:"item_count"`
}
