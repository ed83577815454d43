package domain

import "time"

type OrderStatus string

const (
	StatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	StatusSlipUploaded   OrderStatus = "SLIP_UPLOADED"
	StatusPaid           OrderStatus = "PAID"
	StatusRejected       OrderStatus = "REJECTED"
	StatusExpired        OrderStatus = "EXPIRED"
	StatusCanceled       OrderStatus = "CANCELED"
)

const PaymentMethodPromptPay = "PROMPTPAY"

type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	UnitPrice int    `json:"unit_price"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// ShippingAddress is a snapshot of the delivery address taken at order
// creation. Later edits to the user's address book do not touch it.
type ShippingAddress struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	Subdistrict  string `json:"subdistrict"`
	District     string `json:"district"`
	Province     string `json:"province"`
	PostalCode   string `json:"postal_code"`
}

type Order struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;index" json:"user_id"`

	Items []OrderItem `gorm:"column:items;serializer:json" json:"items"`

	// All amounts in satang.
	SubTotal    int `gorm:"column:sub_total" json:"sub_total"`
	ShippingFee int `gorm:"column:shipping_fee" json:"shipping_fee"`
	Total       int `gorm:"column:total" json:"total"`

	PaymentMethod string      `gorm:"column:payment_method" json:"payment_method"`
	Status        OrderStatus `gorm:"column:status;index" json:"status"`

	PromptPayTarget string `gorm:"column:promptpay_target" json:"promptpay_target"`
	PromptPayQRURL  string `gorm:"column:promptpay_qr_url;type:text" json:"promptpay_qr_url"`
	PaymentSlipURL  string `gorm:"column:payment_slip_url" json:"payment_slip_url"`

	StatusNote  string     `gorm:"column:status_note" json:"status_note"`
	TrackingTag string     `gorm:"column:tracking_tag" json:"tracking_tag"`
	VerifiedBy  string     `gorm:"column:verified_by" json:"verified_by"`
	VerifiedAt  *time.Time `gorm:"column:verified_at" json:"verified_at"`

	// Inventory bookkeeping. The state machine already prevents double
	// adjustment, these flags make the debit/credit idempotent anyway.
	StockDeducted bool `gorm:"column:stock_deducted" json:"stock_deducted"`
	StockRestored bool `gorm:"column:stock_restored" json:"stock_restored"`

	ShippingAddress ShippingAddress `gorm:"column:shipping_address;serializer:json" json:"shipping_address"`

	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
	PaidAt    *time.Time `gorm:"column:paid_at" json:"paid_at"`
	ExpiresAt time.Time  `gorm:"column:expires_at;index" json:"expires_at"`
}

func (Order) TableName() string {
	return "orders"
}

// IsTerminal reports whether no further transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusPaid, StatusRejected, StatusExpired, StatusCanceled:
		return true
	}
	return false
}

// OpenStatuses count against the one-open-order-per-user rule.
var OpenStatuses = []OrderStatus{StatusPendingPayment, StatusSlipUploaded}
