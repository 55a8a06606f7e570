package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Agromercado-api/internal/application/dto"
	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// CatalogUseCase gestiona el catálogo: productos, bodegas y lotes.
// El stock no se toca aquí: sólo vía movimientos.
type CatalogUseCase struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	batchRepo     repository.BatchRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	batchRepo repository.BatchRepository,
) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, warehouseRepo: warehouseRepo, batchRepo: batchRepo}
}

// CreateProduct valida contra el catálogo agrícola y persiste el producto.
// OwnerID es el agricultor dueño (destinatario de alertas de stock).
func (uc *CatalogUseCase) CreateProduct(_ context.Context, ownerID string, in dto.CreateProductRequest) (*entity.Product, error) {
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Category:       in.Category,
		Description:    in.Description,
		Unit:           in.Unit,
		PurchasePrice:  in.PurchasePrice,
		SellingPrice:   in.SellingPrice,
		ExpirationDate: in.ExpirationDate,
		OwnerID:        ownerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := product.Validate(now); err != nil {
		return nil, err
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct devuelve un producto por ID.
func (uc *CatalogUseCase) GetProduct(_ context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListProducts lista productos con paginación.
func (uc *CatalogUseCase) ListProducts(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(limit, offset)
}

// UpdateProduct modifica los campos editables del producto. El precio de
// venta nuevo no afecta líneas de órdenes ya creadas (precio congelado).
func (uc *CatalogUseCase) UpdateProduct(_ context.Context, id string, in dto.CreateProductRequest) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	product.Name = in.Name
	product.Category = in.Category
	product.Description = in.Description
	product.Unit = in.Unit
	product.PurchasePrice = in.PurchasePrice
	product.SellingPrice = in.SellingPrice
	product.ExpirationDate = in.ExpirationDate
	product.UpdatedAt = now
	if err := product.Validate(now); err != nil {
		return nil, err
	}
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// CreateWarehouse registra una bodega.
func (uc *CatalogUseCase) CreateWarehouse(_ context.Context, in dto.CreateWarehouseRequest) (*entity.Warehouse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Location:  in.Location,
		CreatedAt: time.Now(),
	}
	if err := uc.warehouseRepo.Create(warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// ListWarehouses lista bodegas con paginación.
func (uc *CatalogUseCase) ListWarehouses(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	return uc.warehouseRepo.List(limit, offset)
}

// CreateBatch registra un lote de un producto existente.
func (uc *CatalogUseCase) CreateBatch(_ context.Context, productID, lotCode string, expiry *time.Time) (*entity.Batch, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	batch := &entity.Batch{
		ID:         uuid.New().String(),
		ProductID:  productID,
		LotCode:    lotCode,
		ExpiryDate: expiry,
		CreatedAt:  time.Now(),
	}
	if err := uc.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	return batch, nil
}
