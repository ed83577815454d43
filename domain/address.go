package domain

type Address struct {
	ID           string `gorm:"primaryKey" json:"id"`
	UserID       string `gorm:"column:user_id;index" json:"user_id"`
	FullName     string `gorm:"column:full_name" json:"full_name"`
	Phone        string `gorm:"column:phone" json:"phone"`
	AddressLine1 string `gorm:"column:address_line1" json:"address_line1"`
	Subdistrict  string `gorm:"column:subdistrict" json:"subdistrict"`
	District     string `gorm:"column:district" json:"district"`
	Province     string `gorm:"column:province" json:"province"`
	PostalCode   string `gorm:"column:postal_code" json:"postal_code"`
	IsDefault    bool   `gorm:"column:is_default" json:"is_default"`
}

func (Address) TableName() string {
	return "addresses"
}

// Snapshot copies the address into the immutable form stored on an order.
func (a Address) Snapshot() ShippingAddress {
	return ShippingAddress{
		FullName:     a.FullName,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		Subdistrict:  a.Subdistrict,
		District:     a.District,
		Province:     a.Province,
		PostalCode:   a.PostalCode,
	}
}
