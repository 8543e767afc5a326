package dto

type RegisterRequest struct {
	Username        string `json:"username" validate:"required,max=64"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type PurchaseRequest struct {
	TicketTypeID  uint   `json:"ticket_type_id" validate:"required"`
	Quantity      int    `json:"quantity" validate:"gte=1"`
	VisitDate     string `json:"visit_date" validate:"required,datetime=2006-01-02"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=credit_card debit_card pix boleto"`
	// PaymentNonce is only used when card payments go through Braintree.
	PaymentNonce string `json:"payment_nonce,omitempty"`
}

type PurchaseResponse struct {
	PurchaseID      uint     `json:"purchase_id"`
	TransactionCode string   `json:"transaction_code"`
	Status          string   `json:"status"`
	TotalAmount     string   `json:"total_amount"`
	TicketCodes     []string `json:"ticket_codes"`
}

type VisitDatesResponse struct {
	Dates          []string        `json:"dates"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
}

type PaymentMethod struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type SelectItemRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=attraction show food_court"`
	ReferenceID uint   `json:"reference_id" validate:"required"`
}

type UpdateTimeRequest struct {
	PlannedTime string `json:"planned_time" validate:"required,datetime=15:04"`
}

type SaveItineraryRequest struct {
	Name      string `json:"name"`
	VisitDate string `json:"visit_date" validate:"required,datetime=2006-01-02"`
}

type DraftEntry struct {
	Index       int    `json:"index"`
	Kind        string `json:"kind"`
	ReferenceID uint   `json:"reference_id"`
	Name        string `json:"name"`
	PlannedTime string `json:"planned_time"`
}

type DraftResponse struct {
	State   string       `json:"state"`
	Staged  *DraftEntry  `json:"staged,omitempty"`
	Entries []DraftEntry `json:"entries"`
}

type RatingRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=attraction show food_court"`
	ReferenceID uint   `json:"reference_id" validate:"required"`
	Score       int    `json:"score" validate:"gte=1,lte=5"`
	Comment     string `json:"comment" validate:"max=1000"`
}

type RatingResponse struct {
	Created bool   `json:"created"`
	Message string `json:"message"`
}

type AttractionRequest struct {
	Name              string `json:"name" validate:"required,max=120"`
	ShortDescription  string `json:"short_description"`
	Description       string `json:"description"`
	CapacityPerCycle  int    `json:"capacity_per_cycle" validate:"gte=1"`
	CycleMinutes      *int   `json:"cycle_minutes,omitempty" validate:"omitempty,gte=1"`
	MinHeightCM       *int   `json:"min_height_cm,omitempty" validate:"omitempty,gte=0"`
	MaxHeightCM       *int   `json:"max_height_cm,omitempty" validate:"omitempty,gte=0"`
	MinAge            *int   `json:"min_age,omitempty" validate:"omitempty,gte=0"`
	CompanionUntilAge *int   `json:"companion_until_age,omitempty" validate:"omitempty,gte=0"`
	Kind              string `json:"kind"`
	MapLocation       string `json:"map_location"`
	ImagePath         string `json:"image_path"`
	Status            string `json:"status" validate:"omitempty,oneof=Operational 'Scheduled Maintenance' 'Temporarily Closed'"`
	ThrillLevel       string `json:"thrill_level"`
	Accessibility     string `json:"accessibility"`
}

type ShowRequest struct {
	Name            string `json:"name" validate:"required,max=120"`
	Description     string `json:"description"`
	Kind            string `json:"kind"`
	Location        string `json:"location"`
	Schedule        string `json:"schedule"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0"`
	ImageURL        string `json:"image_url"`
	Active          *bool  `json:"active,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// SelectableItem is one entry of the itinerary item browser.
type SelectableItem struct {
	Kind        string `json:"kind"`
	ReferenceID uint   `json:"reference_id"`
	Name        string `json:"name"`
	Detail      string `json:"detail,omitempty"`
}
