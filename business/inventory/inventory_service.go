package inventory

import (
	"context"
	"strings"

	"shirtshop/domain"
	"shirtshop/pkg/logger"
)

type Direction int

const (
	Debit Direction = iota
	Credit
)

// ProductRepository contract interface
type ProductRepository interface {
	FindAllByIDForUpdate(ctx context.Context, ids []string) ([]domain.Product, error)
	SaveAll(ctx context.Context, products []*domain.Product) error
	Transaction(ctx context.Context, fn func(ProductRepository) error) error
}

type Service struct {
	productRepo ProductRepository
}

func NewService(productRepo ProductRepository) *Service {
	return &Service{
		productRepo: productRepo,
	}
}

// variantKey identifies a variant by product plus case-folded color and size,
// so "Red", "red " and "RED" address the same stock row.
type variantKey struct {
	productID string
	color     string
	size      string
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DeductOnSlipUploaded debits stock for every line item of the order.
func (s *Service) DeductOnSlipUploaded(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return nil
	}
	return s.Adjust(ctx, order.Items, Debit)
}

// RestoreOnClosed credits stock back when an order is closed without payment.
func (s *Service) RestoreOnClosed(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return nil
	}
	return s.Adjust(ctx, order.Items, Credit)
}

// Adjust applies one batch of stock changes. The whole batch commits or none
// of it does: on debit every product, variant and quantity is checked before
// anything is mutated, and all touched products are saved together inside one
// transaction with their rows locked.
func (s *Service) Adjust(ctx context.Context, items []domain.OrderItem, direction Direction) error {
	qtyByKey := make(map[variantKey]int)
	for _, it := range items {
		// Rows without a product or a positive quantity are noise, not errors.
		if it.ProductID == "" || it.Quantity <= 0 {
			continue
		}
		k := variantKey{productID: it.ProductID, color: fold(it.Color), size: fold(it.Size)}
		qtyByKey[k] += it.Quantity
	}
	if len(qtyByKey) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	ids := make([]string, 0, len(qtyByKey))
	for k := range qtyByKey {
		if !seen[k.productID] {
			seen[k.productID] = true
			ids = append(ids, k.productID)
		}
	}

	return s.productRepo.Transaction(ctx, func(repo ProductRepository) error {
		products, err := repo.FindAllByIDForUpdate(ctx, ids)
		if err != nil {
			return err
		}

		byID := make(map[string]*domain.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		if direction == Debit {
			for k, need := range qtyByKey {
				p, ok := byID[k.productID]
				if !ok {
					return domain.NotFoundf("product not found: %s", k.productID)
				}
				v := findVariant(p, k.color, k.size)
				if v == nil {
					return domain.NotFoundf("variant not found: product=%s color=%s size=%s",
						k.productID, k.color, k.size)
				}
				if v.Quantity < need {
					return domain.Conflictf("insufficient stock: product=%s color=%s size=%s (need %d, have %d)",
						k.productID, k.color, k.size, need, v.Quantity)
				}
			}
		}

		touched := make(map[string]*domain.Product)
		for k, delta := range qtyByKey {
			p, ok := byID[k.productID]
			if !ok {
				// Crediting back stock of a product deleted in the meantime
				// has nowhere to go.
				logger.Warn("skipping stock credit for missing product", "product_id", k.productID)
				continue
			}
			v := findVariant(p, k.color, k.size)
			if v == nil {
				logger.Warn("skipping stock credit for missing variant",
					"product_id", k.productID, "color", k.color, "size", k.size)
				continue
			}

			next := v.Quantity + delta
			if direction == Debit {
				next = v.Quantity - delta
			}
			if next < 0 {
				return domain.Internalf("stock would go negative: product=%s color=%s size=%s",
					k.productID, k.color, k.size)
			}
			v.Quantity = next
			touched[p.ID] = p
		}

		save := make([]*domain.Product, 0, len(touched))
		for _, p := range touched {
			p.StockQuantity = p.TotalVariantStock()
			save = append(save, p)
		}
		if len(save) == 0 {
			return nil
		}

		return repo.SaveAll(ctx, save)
	})
}

func findVariant(p *domain.Product, foldedColor, foldedSize string) *domain.VariantStock {
	for i := range p.VariantStocks {
		v := &p.VariantStocks[i]
		if fold(v.Color) == foldedColor && fold(v.Size) == foldedSize {
			return v
		}
	}
	return nil
}
