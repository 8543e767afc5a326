package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketType struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	MinAge      int             `gorm:"not null" json:"min_age"`
	MaxAge      int             `gorm:"not null" json:"max_age"`
	Active      bool            `gorm:"not null" json:"active"`
}

type Purchase struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	PurchasedAt      time.Time       `gorm:"not null" json:"purchased_at"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"` // sum of ticket unit prices
	PaymentMethod    PaymentMethod   `gorm:"size:32;not null" json:"payment_method"`
	Status           PaymentStatus   `gorm:"size:16;index;not null" json:"status"`
	TransactionCode  string          `gorm:"size:64;uniqueIndex;not null" json:"transaction_code"`
	GatewayReference *string         `gorm:"size:64" json:"gateway_reference,omitempty"`

	Tickets []TicketItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE" json:"tickets,omitempty"`
}

// TicketItem is one redeemable ticket; Quantity is always 1.
type TicketItem struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// FK → purchases.id
	PurchaseID uint `gorm:"index;not null" json:"purchase_id"`
	// FK → ticket_types.id
	TicketTypeID uint        `gorm:"index;not null" json:"ticket_type_id"`
	TicketType   *TicketType `gorm:"constraint:OnDelete:RESTRICT" json:"ticket_type,omitempty"`

	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	VisitDate string          `gorm:"size:10;not null" json:"visit_date"` // YYYY-MM-DD
	Code      string          `gorm:"size:80;uniqueIndex;not null" json:"code"`
	Status    TicketStatus    `gorm:"size:16;not null" json:"status"`
	BearerID  *uint           `json:"bearer_id,omitempty"`
}

// PurchaseSummary is one row of the "my tickets" list.
type PurchaseSummary struct {
	ID            uint            `json:"id"`
	PurchasedAt   time.Time       `json:"purchased_at"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Status        PaymentStatus   `json:"status"`
	TicketCount   int64           `json:"ticket_count"`
}
