package domain

import "time"

// PaymentSettingsID is the fixed key of the singleton settings record.
const PaymentSettingsID = "PAYMENT_PROMPTPAY"

// PaymentSettings is admin-configured and read fresh at order creation, so
// changes apply to the next order, never to in-flight ones.
type PaymentSettings struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Target        string    `gorm:"column:target" json:"target"`
	ExpireMinutes int       `gorm:"column:expire_minutes" json:"expire_minutes"`
	Enabled       bool      `gorm:"column:enabled" json:"enabled"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PaymentSettings) TableName() string {
	return "payment_settings"
}
