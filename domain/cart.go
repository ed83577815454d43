package domain

import "time"

type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	UnitPrice int    `json:"unit_price"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// Cart is consumed as a one-shot source for order creation; the checkout
// flow never mutates it except to clear it after the order is placed or to
// refill it from a closed order.
type Cart struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	Items       []CartItem `gorm:"column:items;serializer:json" json:"items"`
	ShippingFee int        `gorm:"column:shipping_fee" json:"shipping_fee"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Cart) TableName() string {
	return "carts"
}
