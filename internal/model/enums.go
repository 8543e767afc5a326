package model

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Role string

const (
	RoleCommon        Role = "Common"
	RoleAdministrator Role = "Administrator"
	RoleOperator      Role = "Operator"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCommon, RoleAdministrator, RoleOperator:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPix        PaymentMethod = "pix"
	PaymentBoleto     PaymentMethod = "boleto"
)

var paymentLabels = map[PaymentMethod]string{
	PaymentCreditCard: "Credit Card",
	PaymentDebitCard:  "Debit Card",
	PaymentPix:        "PIX",
	PaymentBoleto:     "Boleto",
}

// PaymentMethods returns the accepted methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentBoleto}
}

func (m PaymentMethod) IsValid() bool {
	_, ok := paymentLabels[m]
	return ok
}

func (m PaymentMethod) IsCard() bool {
	return m == PaymentCreditCard || m == PaymentDebitCard
}

func (m PaymentMethod) Label() string {
	return paymentLabels[m]
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentApproved PaymentStatus = "Approved"
	PaymentDeclined PaymentStatus = "Declined"
)

type TicketStatus string

const (
	TicketUnused    TicketStatus = "Unused"
	TicketUsed      TicketStatus = "Used"
	TicketCancelled TicketStatus = "Cancelled"
)

// ItemKind names the catalog table a rating or itinerary entry refers to.
type ItemKind string

const (
	KindAttraction ItemKind = "attraction"
	KindShow       ItemKind = "show"
	KindFoodCourt  ItemKind = "food_court"
)

func (k ItemKind) IsValid() bool {
	switch k {
	case KindAttraction, KindShow, KindFoodCourt:
		return true
	}
	return false
}

type AttractionStatus string

const (
	AttractionOperational          AttractionStatus = "Operational"
	AttractionScheduledMaintenance AttractionStatus = "Scheduled Maintenance"
	AttractionTemporarilyClosed    AttractionStatus = "Temporarily Closed"
)

func (s AttractionStatus) IsValid() bool {
	switch s {
	case AttractionOperational, AttractionScheduledMaintenance, AttractionTemporarilyClosed:
		return true
	}
	return false
}

// Toggled flips between operational and scheduled maintenance, which is
// what the admin switch does.
func (s AttractionStatus) Toggled() AttractionStatus {
	if s == AttractionOperational {
		return AttractionScheduledMaintenance
	}
	return AttractionOperational
}

type NoticeKind string

const (
	NoticeInformative NoticeKind = "Informative"
	NoticeAlert       NoticeKind = "Alert"
	NoticeUrgent      NoticeKind = "Urgent"
)
