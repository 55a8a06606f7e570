// Package pdf implementa la generación del recibo PDF de una orden.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Plataforma  │  N° Commande + Fecha                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto + localisation                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Qté | Produit | Prix unitaire | Sous-total          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + estado de la orden                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Agromercado-api/internal/application/invoices"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ invoices.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa invoices.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	platformName string
}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator(platformName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{platformName: platformName}
}

// GenerateOrderReceipt genera el recibo de la orden y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateOrderReceipt(
	_ context.Context,
	order *entity.Order,
	client *entity.ClientProfile,
	user *entity.User,
	lines []invoices.LineForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reçu de commande", true).
		WithAuthor(g.platformName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client, user))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, l := range lines {
		m.AddRows(tableLineRow(l))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la plataforma (izq) y N° commande + fecha (der).
func (g *MarotoReceiptGenerator) headerRow(order *entity.Order) core.Row {
	fecha := order.DateOrdered.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.platformName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Produits agricoles en circuit court", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REÇU DE COMMANDE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(order.ID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Date : "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del cliente.
func clientRow(client *entity.ClientProfile, user *entity.User) core.Row {
	name := "—"
	contact := "—"
	if user != nil {
		name = fmt.Sprintf("%s %s", user.FirstName, user.LastName)
		contact = user.Email
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s   |   %s",
				name, contact, nonEmpty(client.Location, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	return row.New(7).Add(
		col.New(1).Add(text.New("Qté", header)),
		col.New(6).Add(text.New("Produit", header)),
		col.New(2).Add(text.New("Prix unitaire", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right,
		})),
		col.New(3).Add(text.New("Sous-total", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right,
		})),
	)
}

func tableLineRow(l invoices.LineForPDF) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	right := props.Text{Size: 8, Top: 1, Align: align.Right}
	return row.New(6).Add(
		col.New(1).Add(text.New(fmt.Sprintf("%d", l.Line.Quantity), cell)),
		col.New(6).Add(text.New(l.ProductName, cell)),
		col.New(2).Add(text.New(l.Line.UnitPrice.StringFixed(2), right)),
		col.New(3).Add(text.New(l.Line.Subtotal().StringFixed(2), right)),
	)
}

func totalRow(order *entity.Order) core.Row {
	return row.New(12).Add(
		col.New(7).Add(
			text.New("Statut : "+order.Status, props.Text{Size: 8, Top: 3, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("TOTAL : "+order.Total.StringFixed(2)+" €", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2, Color: colorPrimary,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
