package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agromercado-api/internal/application/catalog"
	"github.com/jhoicas/Agromercado-api/internal/application/dto"
	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria.
// ──────────────────────────────────────────────────────────────────────────────

type catStore struct {
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	batches    map[string]*entity.Batch
}

type catProducts struct{ s *catStore }

func (r catProducts) Create(p *entity.Product) error             { r.s.products[p.ID] = p; return nil }
func (r catProducts) GetByID(id string) (*entity.Product, error) { return r.s.products[id], nil }
func (r catProducts) Update(p *entity.Product) error             { r.s.products[p.ID] = p; return nil }
func (r catProducts) AddToStockTotal(productID string, delta decimal.Decimal) error { return nil }
func (r catProducts) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		out = append(out, p)
	}
	return out, nil
}
func (r catProducts) Delete(id string) error { delete(r.s.products, id); return nil }

type catWarehouses struct{ s *catStore }

func (r catWarehouses) Create(w *entity.Warehouse) error { r.s.warehouses[w.ID] = w; return nil }
func (r catWarehouses) GetByID(id string) (*entity.Warehouse, error) { return r.s.warehouses[id], nil }
func (r catWarehouses) List(limit, offset int) ([]*entity.Warehouse, error) { return nil, nil }

type catBatches struct{ s *catStore }

func (r catBatches) Create(b *entity.Batch) error             { r.s.batches[b.ID] = b; return nil }
func (r catBatches) GetByID(id string) (*entity.Batch, error) { return r.s.batches[id], nil }

func setup(t *testing.T) (*catalog.CatalogUseCase, *catStore) {
	t.Helper()
	s := &catStore{
		products:   make(map[string]*entity.Product),
		warehouses: make(map[string]*entity.Warehouse),
		batches:    make(map[string]*entity.Batch),
	}
	return catalog.NewCatalogUseCase(catProducts{s}, catWarehouses{s}, catBatches{s}), s
}

func productRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:          "Tomates",
		Category:      "Légumes",
		Unit:          entity.UnitKilogram,
		PurchasePrice: decimal.RequireFromString("1.20"),
		SellingPrice:  decimal.RequireFromString("2.50"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_OK(t *testing.T) {
	uc, s := setup(t)
	product, err := uc.CreateProduct(context.Background(), "farmer-1", productRequest())
	require.NoError(t, err)
	assert.Equal(t, "farmer-1", product.OwnerID)
	assert.True(t, product.QuantityInStock.IsZero(),
		"el stock inicial es cero: sólo los movimientos lo modifican")
	assert.Len(t, s.products, 1)
}

func TestCreateProduct_FueraDeCatalogo_Falla(t *testing.T) {
	uc, s := setup(t)
	in := productRequest()
	in.Name = "Ordinateur"
	_, err := uc.CreateProduct(context.Background(), "farmer-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.products)
}

func TestUpdateProduct_RevalidaCatalogo(t *testing.T) {
	uc, _ := setup(t)
	product, err := uc.CreateProduct(context.Background(), "farmer-1", productRequest())
	require.NoError(t, err)

	in := productRequest()
	in.Unit = "cajas"
	_, err = uc.UpdateProduct(context.Background(), product.ID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProduct_Inexistente(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.UpdateProduct(context.Background(), "fantasma", productRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateWarehouse_NombreObligatorio(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.CreateWarehouse(context.Background(), dto.CreateWarehouseRequest{Location: "Nord"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	w, err := uc.CreateWarehouse(context.Background(), dto.CreateWarehouseRequest{Name: "Bodega Norte"})
	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)
}

func TestCreateBatch_RequiereProductoExistente(t *testing.T) {
	uc, s := setup(t)
	_, err := uc.CreateBatch(context.Background(), "fantasma", "LOT-1", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	product, err := uc.CreateProduct(context.Background(), "farmer-1", productRequest())
	require.NoError(t, err)

	expiry := time.Now().AddDate(0, 1, 0)
	batch, err := uc.CreateBatch(context.Background(), product.ID, "LOT-2026-08", &expiry)
	require.NoError(t, err)
	assert.Equal(t, product.ID, batch.ProductID)
	assert.Len(t, s.batches, 1)
}
