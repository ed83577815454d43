package inventory

import (
	"context"
	"errors"
	"testing"

	"shirtshop/domain"
)

type fakeProductRepo struct {
	products map[string]domain.Product
	saves    int
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	m := make(map[string]domain.Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (r *fakeProductRepo) FindAllByIDForUpdate(_ context.Context, ids []string) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			cp := p
			cp.VariantStocks = append([]domain.VariantStock(nil), p.VariantStocks...)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) SaveAll(_ context.Context, products []*domain.Product) error {
	for _, p := range products {
		r.products[p.ID] = *p
	}
	r.saves++
	return nil
}

func (r *fakeProductRepo) Transaction(_ context.Context, fn func(ProductRepository) error) error {
	return fn(r)
}

func (r *fakeProductRepo) variantQty(t *testing.T, productID, color, size string) int {
	t.Helper()
	p, ok := r.products[productID]
	if !ok {
		t.Fatalf("product %s missing", productID)
	}
	for _, v := range p.VariantStocks {
		if v.Color == color && v.Size == size {
			return v.Quantity
		}
	}
	t.Fatalf("variant %s/%s missing on %s", color, size, productID)
	return 0
}

func shirt(id string, variants ...domain.VariantStock) domain.Product {
	p := domain.Product{
		ID:            id,
		Name:          "Shirt " + id,
		Price:         25000,
		VariantStocks: variants,
	}
	p.StockQuantity = p.TotalVariantStock()
	return p
}

func TestAdjustDebit(t *testing.T) {
	repo := newFakeProductRepo(shirt("p1",
		domain.VariantStock{Color: "Red", Size: "M", Quantity: 10},
		domain.VariantStock{Color: "Blue", Size: "L", Quantity: 4},
	))
	svc := NewService(repo)

	err := svc.Adjust(context.Background(), []domain.OrderItem{
		{ProductID: "p1", Color: "Red", Size: "M", Quantity: 3},
	}, Debit)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}

	if got := repo.variantQty(t, "p1", "Red", "M"); got != 7 {
		t.Errorf("Red/M = %d, want 7", got)
	}
	if got := repo.variantQty(t, "p1", "Blue", "L"); got != 4 {
		t.Errorf("Blue/L = %d, want 4 (untouched)", got)
	}
	if got := repo.products["p1"].StockQuantity; got != 11 {
		t.Errorf("aggregate stock = %d, want 11", got)
	}
}

func TestAdjustDebitAllOrNothing(t *testing.T) {
	repo := newFakeProductRepo(
		shirt("p1", domain.VariantStock{Color: "Red", Size: "M", Quantity: 10}),
		shirt("p2", domain.VariantStock{Color: "Black", Size: "S", Quantity: 1}),
	)
	svc := NewService(repo)

	err := svc.Adjust(context.Background(), []domain.OrderItem{
		{ProductID: "p1", Color: "Red", Size: "M", Quantity: 3},
		{ProductID: "p2", Color: "Black", Size: "S", Quantity: 2},
	}, Debit)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("want ErrConflict for insufficient stock, got %v", err)
	}

	if got := repo.variantQty(t, "p1", "Red", "M"); got != 10 {
		t.Errorf("sufficient variant must not be debited on batch failure, got %d", got)
	}
	if got := repo.variantQty(t, "p2", "Black", "S"); got != 1 {
		t.Errorf("insufficient variant must stay untouched, got %d", got)
	}
	if repo.saves != 0 {
		t.Errorf("nothing may be persisted on a failed batch, saves = %d", repo.saves)
	}
}

func TestAdjustDedupesAndNormalizesKeys(t *testing.T) {
	repo := newFakeProductRepo(shirt("p1",
		domain.VariantStock{Color: "Red", Size: "M", Quantity: 10},
	))
	svc := NewService(repo)

	err := svc.Adjust(context.Background(), []domain.OrderItem{
		{ProductID: "p1", Color: "Red", Size: "M", Quantity: 2},
		{ProductID: "p1", Color: "red ", Size: " m", Quantity: 3},
		{ProductID: "p1", Color: "RED", Size: "M", Quantity: 1},
	}, Debit)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}

	if got := repo.variantQty(t, "p1", "Red", "M"); got != 4 {
		t.Errorf("quantities for the same folded key must sum before mutation, got %d", got)
	}
	if repo.saves != 1 {
		t.Errorf("the batch must persist in one save, got %d", repo.saves)
	}
}

func TestAdjustSkipsNoiseItems(t *testing.T) {
	repo := newFakeProductRepo(shirt("p1",
		domain.VariantStock{Color: "Red", Size: "M", Quantity: 10},
	))
	svc := NewService(repo)

	err := svc.Adjust(context.Background(), []domain.OrderItem{
		{ProductID: "", Color: "Red", Size: "M", Quantity: 5},
		{ProductID: "p1", Color: "Red", Size: "M", Quantity: 0},
		{ProductID: "p1", Color: "Red", Size: "M", Quantity: -2},
	}, Debit)
	if err != nil {
		t.Fatalf("noise items must be skipped silently, got %v", err)
	}
	if got := repo.variantQty(t, "p1", "Red", "M"); got != 10 {
		t.Errorf("stock must be untouched, got %d", got)
	}
	if repo.saves != 0 {
		t.Errorf("empty effective batch must not persist anything")
	}
}

func TestAdjustDebitMissingProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)

	err := svc.Adjust(context.Background(), []domain.OrderItem{
		{ProductID: "ghost", Color: "Red", Size: "M", Quantity: 1},
	}, Debit)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing product, got %v", err)
	}
}

func TestAdjustDebitMissingVariant(t *testing.T) {
	repo := newFakeProductRepo(shirt("p1",
		domain.VariantStock{Color: "Red", Size: "M", Quantity: 10},
	))
	svc := NewService(repo)

	err := svc.Adjust(context.Background(), []domain.OrderItem{
		{ProductID: "p1", Color: "Green", Size: "XL", Quantity: 1},
	}, Debit)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing variant, got %v", err)
	}
}

func TestAdjustCredit(t *testing.T) {
	repo := newFakeProductRepo(shirt("p1",
		domain.VariantStock{Color: "Red", Size: "M", Quantity: 7},
	))
	svc := NewService(repo)

	err := svc.Adjust(context.Background(), []domain.OrderItem{
		{ProductID: "p1", Color: "Red", Size: "M", Quantity: 3},
	}, Credit)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}

	if got := repo.variantQty(t, "p1", "Red", "M"); got != 10 {
		t.Errorf("Red/M = %d, want 10", got)
	}
	if got := repo.products["p1"].StockQuantity; got != 10 {
		t.Errorf("aggregate stock = %d, want 10", got)
	}
}

func TestAdjustCreditMissingProductIsSkipped(t *testing.T) {
	repo := newFakeProductRepo(shirt("p1",
		domain.VariantStock{Color: "Red", Size: "M", Quantity: 7},
	))
	svc := NewService(repo)

	err := svc.Adjust(context.Background(), []domain.OrderItem{
		{ProductID: "p1", Color: "Red", Size: "M", Quantity: 1},
		{ProductID: "deleted", Color: "Red", Size: "M", Quantity: 1},
	}, Credit)
	if err != nil {
		t.Fatalf("credit for a deleted product must not fail the batch: %v", err)
	}
	if got := repo.variantQty(t, "p1", "Red", "M"); got != 8 {
		t.Errorf("surviving product must still be credited, got %d", got)
	}
}

func TestDeductAndRestoreConservation(t *testing.T) {
	repo := newFakeProductRepo(shirt("p1",
		domain.VariantStock{Color: "Red", Size: "M", Quantity: 10},
		domain.VariantStock{Color: "Blue", Size: "L", Quantity: 5},
	))
	svc := NewService(repo)

	order := &domain.Order{Items: []domain.OrderItem{
		{ProductID: "p1", Color: "Red", Size: "M", Quantity: 2},
		{ProductID: "p1", Color: "Blue", Size: "L", Quantity: 1},
	}}

	if err := svc.DeductOnSlipUploaded(context.Background(), order); err != nil {
		t.Fatalf("DeductOnSlipUploaded: %v", err)
	}
	if got := repo.products["p1"].StockQuantity; got != 12 {
		t.Fatalf("aggregate after debit = %d, want 12", got)
	}

	if err := svc.RestoreOnClosed(context.Background(), order); err != nil {
		t.Fatalf("RestoreOnClosed: %v", err)
	}
	if got := repo.variantQty(t, "p1", "Red", "M"); got != 10 {
		t.Errorf("Red/M = %d, want 10 after restore", got)
	}
	if got := repo.variantQty(t, "p1", "Blue", "L"); got != 5 {
		t.Errorf("Blue/L = %d, want 5 after restore", got)
	}
	if got := repo.products["p1"].StockQuantity; got != 15 {
		t.Errorf("aggregate after restore = %d, want 15", got)
	}
}
