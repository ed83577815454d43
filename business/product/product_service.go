package product

import (
	"context"
	"sort"
	"strings"
	"time"

	"shirtshop/domain"
	"shirtshop/pkg/logger"

	"github.com/google/uuid"
)

const defaultLowStockThreshold = 5

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindAll(ctx context.Context, category string, page, size int) ([]domain.Product, int64, error)
	FindBelowStock(ctx context.Context, threshold int) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	productRepo ProductRepository
}

func NewService(productRepo ProductRepository) *Service {
	return &Service{
		productRepo: productRepo,
	}
}

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Items         []domain.Product `json:"items"`
	Page          int              `json:"page"`
	Size          int              `json:"size"`
	TotalElements int64            `json:"total_elements"`
	TotalPages    int              `json:"total_pages"`
}

func (s *Service) ListProducts(ctx context.Context, category string, page, size int) (ProductPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	items, total, err := s.productRepo.FindAll(ctx, category, page, size)
	if err != nil {
		return ProductPage{}, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return ProductPage{
		Items:         items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, domain.Validationf("product id is required")
	}
	return s.productRepo.FindByID(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return domain.Product{}, err
	}

	now := time.Now()
	product.ID = uuid.NewString()
	product.StockQuantity = product.TotalVariantStock()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create product", err)
		return domain.Product{}, err
	}

	logger.Info("product created", "product_id", product.ID, "name", product.Name)
	return *product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) (domain.Product, error) {
	if product.ID == "" {
		return domain.Product{}, domain.Validationf("product id is required")
	}
	if err := validateProduct(product); err != nil {
		return domain.Product{}, err
	}

	existing, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		return domain.Product{}, err
	}

	product.CreatedAt = existing.CreatedAt
	product.StockQuantity = product.TotalVariantStock()
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", err, "product_id", product.ID)
		return domain.Product{}, err
	}

	return *product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return domain.Validationf("product id is required")
	}

	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", err, "product_id", id)
		return err
	}

	logger.Info("product deleted", "product_id", id)
	return nil
}

// LowStockReport lists products whose aggregate stock is at or below the
// threshold, lowest first.
func (s *Service) LowStockReport(ctx context.Context, threshold, page, size int) (ProductPage, error) {
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	products, err := s.productRepo.FindBelowStock(ctx, threshold)
	if err != nil {
		return ProductPage{}, err
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].StockQuantity < products[j].StockQuantity
	})

	total := int64(len(products))
	from := page * size
	if from > len(products) {
		from = len(products)
	}
	to := from + size
	if to > len(products) {
		to = len(products)
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return ProductPage{
		Items:         products[from:to],
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func validateProduct(p *domain.Product) error {
	if p == nil {
		return domain.Validationf("product is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return domain.Validationf("product name is required")
	}
	if p.Price <= 0 {
		return domain.Validationf("price must be greater than 0")
	}
	if strings.TrimSpace(p.Category) == "" {
		return domain.Validationf("product category is required")
	}

	colors := foldedSet(p.AvailableColors)
	sizes := foldedSet(p.AvailableSizes)

	seen := make(map[[2]string]bool, len(p.VariantStocks))
	for _, v := range p.VariantStocks {
		if v.Quantity < 0 {
			return domain.Validationf("variant quantity cannot be negative: color=%s size=%s", v.Color, v.Size)
		}
		c := fold(v.Color)
		sz := fold(v.Size)
		if !colors[c] {
			return domain.Validationf("variant color %q is not in the declared colors", v.Color)
		}
		if !sizes[sz] {
			return domain.Validationf("variant size %q is not in the declared sizes", v.Size)
		}
		key := [2]string{c, sz}
		if seen[key] {
			return domain.Validationf("duplicate variant: color=%s size=%s", v.Color, v.Size)
		}
		seen[key] = true
	}

	return nil
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func foldedSet(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[fold(v)] = true
	}
	return out
}
