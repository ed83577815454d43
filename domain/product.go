package domain

import "time"

// VariantStock is the independent stock count of one (color, size)
// combination of a product.
type VariantStock struct {
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type Product struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"column:name" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
	// Price in satang.
	Price    int    `gorm:"column:price" json:"price"`
	Category string `gorm:"column:category" json:"category"`

	ImageURLs       []string `gorm:"column:image_urls;serializer:json" json:"image_urls"`
	AvailableColors []string `gorm:"column:available_colors;serializer:json" json:"available_colors"`
	AvailableSizes  []string `gorm:"column:available_sizes;serializer:json" json:"available_sizes"`

	// StockQuantity is a derived cache: always the sum of all variant
	// quantities. Recomputed on every variant change.
	StockQuantity int            `gorm:"column:stock_quantity" json:"stock_quantity"`
	VariantStocks []VariantStock `gorm:"column:variant_stocks;serializer:json" json:"variant_stocks"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// TotalVariantStock sums the variant quantities, clamping negatives to zero.
func (p *Product) TotalVariantStock() int {
	total := 0
	for _, v := range p.VariantStocks {
		if v.Quantity > 0 {
			total += v.Quantity
		}
	}
	return total
}
