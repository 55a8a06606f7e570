package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/event"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// ApplyMovementUseCase aplica movimientos de stock (IN, OUT, ADJUST) de forma
// transaccional: el registro inmutable del movimiento y el incremento atómico
// del nivel por producto+bodega son una sola unidad. Después del commit se
// evalúan las alertas de stock del producto.
type ApplyMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	batchRepo     repository.BatchRepository
	alertRepo     repository.StockAlertRepository
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	batchRepo repository.BatchRepository,
	alertRepo repository.StockAlertRepository,
) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		batchRepo:     batchRepo,
		alertRepo:     alertRepo,
	}
}

// MovementInput entrada para aplicar un movimiento de stock.
// Quantity debe ser no negativa para IN/OUT; para ADJUST es un delta con
// signo (decisión registrada en DESIGN.md).
type MovementInput struct {
	ProductID   string
	WarehouseID string
	BatchID     *string
	Type        string
	Quantity    decimal.Decimal
	ActorID     string
}

// ApplyMovement valida el movimiento, lo aplica en una transacción con
// bloqueo de fila (SELECT FOR UPDATE) e incremento atómico, y devuelve el
// nivel resultante junto con los eventos de alerta disparados.
// El nivel nunca queda negativo: una salida mayor al stock disponible falla
// con ErrInsufficientStock y no persiste nada.
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*entity.StockLevel, []event.Event, error) {
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT:
		if input.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, nil, fmt.Errorf("%w: la cantidad debe ser positiva para %s", domain.ErrInvalidInput, input.Type)
		}
	case entity.MovementTypeADJUST:
		if input.Quantity.IsZero() {
			return nil, nil, fmt.Errorf("%w: un ajuste de cero no tiene efecto", domain.ErrInvalidInput)
		}
	default:
		return nil, nil, fmt.Errorf("%w: tipo de movimiento '%s'", domain.ErrInvalidInput, input.Type)
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, nil, err
	}
	if warehouse == nil {
		return nil, nil, domain.ErrNotFound
	}
	if input.BatchID != nil {
		batch, err := uc.batchRepo.GetByID(*input.BatchID)
		if err != nil {
			return nil, nil, err
		}
		if batch == nil || batch.ProductID != input.ProductID {
			return nil, nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		WarehouseID: input.WarehouseID,
		BatchID:     input.BatchID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		CreatedAt:   now,
		CreatedBy:   input.ActorID,
	}
	delta := mov.Delta()

	var level *entity.StockLevel
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockLevelRepository,
		productRepo repository.ProductRepository,
	) error {
		// Las salidas (y ajustes negativos) verifican suficiencia bajo
		// bloqueo de fila antes del decremento.
		if delta.IsNegative() {
			current, err := stockRepo.GetForUpdate(input.ProductID, input.WarehouseID)
			if err != nil {
				return err
			}
			if current.Quantity.Add(delta).IsNegative() {
				return domain.ErrInsufficientStock
			}
		}
		updated, err := stockRepo.ApplyDelta(input.ProductID, input.WarehouseID, delta)
		if err != nil {
			return err
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		// Total denormalizado del producto, también con incremento atómico.
		if err := productRepo.AddToStockTotal(input.ProductID, delta); err != nil {
			return err
		}
		level = updated
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	events, err := uc.checkAlerts(product, level)
	if err != nil {
		// Las alertas no revierten el movimiento ya confirmado.
		return level, nil, nil
	}
	return level, events, nil
}

// checkAlerts evalúa las alertas activas del producto contra el nivel vivo y
// genera un evento por cada alerta disparada, dirigido al agricultor dueño.
func (uc *ApplyMovementUseCase) checkAlerts(product *entity.Product, level *entity.StockLevel) ([]event.Event, error) {
	alerts, err := uc.alertRepo.ListActiveByProduct(product.ID)
	if err != nil {
		return nil, err
	}
	var events []event.Event
	for _, a := range alerts {
		if a.Triggered(level.Quantity) {
			events = append(events, event.New(
				event.KindStockAlert,
				product.OwnerID,
				fmt.Sprintf("Stock faible pour %s", product.Name),
				map[string]string{
					"product_id":   product.ID,
					"warehouse_id": level.WarehouseID,
					"quantity":     level.Quantity.String(),
					"threshold":    a.Threshold.String(),
				},
			))
		}
	}
	return events, nil
}

// CreateAlert registra una alerta de stock activa para un producto.
func (uc *ApplyMovementUseCase) CreateAlert(_ context.Context, productID string, threshold decimal.Decimal) (*entity.StockAlert, error) {
	if threshold.IsNegative() {
		return nil, fmt.Errorf("%w: el umbral no puede ser negativo", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	alert := &entity.StockAlert{
		ID:        uuid.New().String(),
		ProductID: productID,
		Threshold: threshold,
		Active:    true,
	}
	if err := uc.alertRepo.Create(alert); err != nil {
		return nil, err
	}
	return alert, nil
}
