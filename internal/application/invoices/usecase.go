package invoices

import (
	"context"

	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// LineForPDF línea de la orden enriquecida con el nombre del producto.
type LineForPDF struct {
	ProductName string
	Line        entity.OrderLine
}

// ReceiptGenerator es el puerto hacia el generador de PDF del recibo.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.Order, client *entity.ClientProfile, user *entity.User, lines []LineForPDF) ([]byte, error)
}

// InvoiceUseCase genera el recibo PDF de una orden bajo demanda.
type InvoiceUseCase struct {
	orderRepo   repository.OrderRepository
	clientRepo  repository.ClientRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	generator   ReceiptGenerator
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	generator ReceiptGenerator,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		generator:   generator,
	}
}

// RenderOrderReceipt arma los datos de la orden y delega la generación.
func (uc *InvoiceUseCase) RenderOrderReceipt(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(order.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.userRepo.GetByID(client.UserID)
	if err != nil {
		return nil, err
	}

	lines := make([]LineForPDF, 0, len(order.Lines))
	for _, l := range order.Lines {
		name := l.ProductID
		if product, err := uc.productRepo.GetByID(l.ProductID); err == nil && product != nil {
			name = product.Name
		}
		lines = append(lines, LineForPDF{ProductName: name, Line: l})
	}
	return uc.generator.GenerateOrderReceipt(ctx, order, client, user, lines)
}
